package sqlguard

// Decision is the confirmation gate's verdict for a classified statement.
type Decision struct {
	RequiresConfirmation bool
	QueryType            QueryType
}

// Decide applies the two-phase write confirmation rule: a write executes
// only when the caller has explicitly confirmed it; reads never require
// confirmation. The gate holds no state between phases. The phase
// transition is carried entirely by the caller resubmitting the same
// statement with confirmed=true.
func Decide(qt QueryType, confirmed bool) Decision {
	return Decision{
		RequiresConfirmation: qt.IsWrite() && !confirmed,
		QueryType:            qt,
	}
}
