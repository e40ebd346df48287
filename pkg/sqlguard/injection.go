package sqlguard

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheck reports a SQL injection fingerprint found in untrusted
// input before it ever reaches the generator.
type InjectionCheck struct {
	IsSQLi      bool
	Fingerprint string
}

// CheckQuestion runs libinjection's SQLi detector over a natural-language
// question. Plain English does not fingerprint; a positive result means
// the question embeds an injection-shaped SQL fragment and should be
// rejected rather than forwarded to the generator.
func CheckQuestion(question string) *InjectionCheck {
	isSQLi, fingerprint := libinjection.IsSQLi(question)
	if !isSQLi {
		return nil
	}
	return &InjectionCheck{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
	}
}
