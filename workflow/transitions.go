package workflow

// Static transition tables, one per role tier. Key is (entity kind, current
// status); value is the set of statuses the caller may move the record to.
// A status missing from the table has no outgoing transitions: lookups on
// unknown or terminal statuses fail closed.

type transitionKey struct {
	Kind EntityKind
	From string
}

// privilegedTransitions is the table for top-level agents. It deliberately
// includes reversals out of Completed and Cancelled: agencies correct
// mis-marked applications and reopen cancelled payments, and support relies
// on those paths. Do not prune them.
var privilegedTransitions = map[transitionKey][]string{
	{KindApplication, "Pending"}:            {"Verified", "Rejected"},
	{KindApplication, "Verified"}:           {"Documents Uploaded", "Rejected"},
	{KindApplication, "Rejected"}:           {"Verified", "Pending"},
	{KindApplication, "Documents Uploaded"}: {"Completed", "Verified"},
	{KindApplication, "Completed"}:          {"Documents Uploaded", "Verified"},

	{KindTransaction, "Pending"}:   {"Completed", "Cancelled"},
	{KindTransaction, "Cancelled"}: {"Pending"},

	{KindCommission, "pending"}:   {"completed", "cancelled"},
	{KindCommission, "cancelled"}: {"pending"},
}

// restrictedTransitions is the table for sub-agents: forward progress on the
// one step they own, nothing else.
var restrictedTransitions = map[transitionKey][]string{
	{KindApplication, "Verified"}: {"Documents Uploaded"},
}

// AllowedTransitions returns the statuses the given role tier may move a
// record of this kind to from the given status. The returned slice is shared;
// callers must not modify it.
func AllowedTransitions(kind EntityKind, from string, privileged bool) []string {
	table := restrictedTransitions
	if privileged {
		table = privilegedTransitions
	}
	return table[transitionKey{Kind: kind, From: from}]
}

// IsValidTransition reports whether the requested status change is permitted
// for the caller's role tier. Pure lookup, no side effects.
func IsValidTransition(kind EntityKind, from, to string, privileged bool) bool {
	for _, allowed := range AllowedTransitions(kind, from, privileged) {
		if allowed == to {
			return true
		}
	}
	return false
}
