// Package sqlguard decides whether generated SQL may run, in what mode,
// and with what confirmation. It sits between the untrusted SQL generator
// and the datastore and is the only place free-form text becomes an
// executable statement.
package sqlguard

import "strings"

// QueryType classifies a statement by its leading keyword.
type QueryType string

const (
	QuerySelect  QueryType = "SELECT"
	QueryInsert  QueryType = "INSERT"
	QueryUpdate  QueryType = "UPDATE"
	QueryDelete  QueryType = "DELETE"
	QueryUnknown QueryType = "UNKNOWN"
)

// allowedTypes is the ordered set of statement types the gate recognizes.
var allowedTypes = []QueryType{QuerySelect, QueryInsert, QueryUpdate, QueryDelete}

// Classify returns the statement type by case-insensitive leading-keyword
// inspection. Anything that does not start with SELECT, INSERT, UPDATE or
// DELETE is UNKNOWN. Empty text is rejected by the Validator, not here.
func Classify(sqlText string) QueryType {
	upper := strings.ToUpper(strings.TrimSpace(sqlText))
	for _, qt := range allowedTypes {
		if strings.HasPrefix(upper, string(qt)) {
			return qt
		}
	}
	return QueryUnknown
}

// IsWrite reports whether statements of this type mutate persistent state.
func (qt QueryType) IsWrite() bool {
	switch qt {
	case QueryInsert, QueryUpdate, QueryDelete:
		return true
	}
	return false
}
