package journey

import "github.com/dallmi/SearchAnalytics/internal/domain"

// features is the boolean vector the outcome decision is made over.
type features struct {
	hasDiscoveryClick bool
	hasOtherClick     bool
	hasResult         bool
	allResultsZero    bool
}

// outcomeRules is the priority-ordered decision list; the first matching
// rule wins. The order is load-bearing: the categories overlap, and the
// exhaustiveness of the classification depends on the final catch-all.
//
//  1. Success   — content was discovered, regardless of anything else.
//  2. Engaged   — no discovery, but the user interacted with navigation.
//  3. NoResults — results were displayed and every single one was empty.
//  4. Abandoned — results were displayed, none clicked, not all empty.
//  5. Unknown   — incomplete telemetry (no results, no clicks).
var outcomeRules = []struct {
	outcome domain.Outcome
	matches func(f features) bool
}{
	{domain.OutcomeSuccess, func(f features) bool { return f.hasDiscoveryClick }},
	{domain.OutcomeEngaged, func(f features) bool { return f.hasOtherClick }},
	{domain.OutcomeNoResults, func(f features) bool { return f.hasResult && f.allResultsZero }},
	{domain.OutcomeAbandoned, func(f features) bool { return f.hasResult }},
	{domain.OutcomeUnknown, func(f features) bool { return true }},
}

// classifyOutcome assigns exactly one outcome to the feature vector.
func classifyOutcome(f features) domain.Outcome {
	for _, rule := range outcomeRules {
		if rule.matches(f) {
			return rule.outcome
		}
	}
	// Unreachable: the last rule always matches.
	return domain.OutcomeUnknown
}
