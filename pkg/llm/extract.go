package llm

import (
	"regexp"
	"strings"
)

// thinkTagPattern matches a <think>...</think> block at the start of a
// model response. Reasoning models emit these before the answer.
var thinkTagPattern = regexp.MustCompile(`(?s)^\s*<think>.*?</think>\s*`)

// ExtractSQL pulls a bare SQL statement out of model output that may be
// wrapped in markdown code fences or preceded by a thinking block. The
// result is trimmed but otherwise unvalidated; safety checking is the
// caller's job.
func ExtractSQL(response string) string {
	s := strings.TrimSpace(thinkTagPattern.ReplaceAllString(response, ""))

	if strings.HasPrefix(s, "```sql") {
		s = s[len("```sql"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}
