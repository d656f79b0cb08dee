package accounting

import "github.com/SscSPs/erp_journal_engine/internal/core/domain"

// allowedTransitions is the fixed lifecycle graph. REVERSED is terminal.
var allowedTransitions = map[domain.JournalStatus][]domain.JournalStatus{
	domain.StatusDraft:     {domain.StatusSubmitted},
	domain.StatusSubmitted: {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:  {domain.StatusPosted, domain.StatusRejected},
	domain.StatusRejected:  {domain.StatusDraft},
	domain.StatusPosted:    {domain.StatusReversed},
	domain.StatusReversed:  {},
}

// CanTransition reports whether the lifecycle graph has an edge from -> to.
func CanTransition(from, to domain.JournalStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the states reachable in one step from status.
func NextStatuses(status domain.JournalStatus) []domain.JournalStatus {
	next := allowedTransitions[status]
	out := make([]domain.JournalStatus, len(next))
	copy(out, next)
	return out
}
