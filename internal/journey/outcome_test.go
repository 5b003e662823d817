package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

func TestClassifyOutcome_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		f    features
		want domain.Outcome
	}{
		{
			name: "discovery click wins over everything",
			f:    features{hasDiscoveryClick: true, hasOtherClick: true, hasResult: true, allResultsZero: true},
			want: domain.OutcomeSuccess,
		},
		{
			name: "discovery click alone",
			f:    features{hasDiscoveryClick: true},
			want: domain.OutcomeSuccess,
		},
		{
			name: "navigation click without discovery",
			f:    features{hasOtherClick: true, hasResult: true},
			want: domain.OutcomeEngaged,
		},
		{
			name: "navigation click even when all results were empty",
			f:    features{hasOtherClick: true, hasResult: true, allResultsZero: true},
			want: domain.OutcomeEngaged,
		},
		{
			name: "all result displays empty, no clicks",
			f:    features{hasResult: true, allResultsZero: true},
			want: domain.OutcomeNoResults,
		},
		{
			name: "results shown, nothing clicked",
			f:    features{hasResult: true},
			want: domain.OutcomeAbandoned,
		},
		{
			name: "no results and no clicks",
			f:    features{},
			want: domain.OutcomeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOutcome(tt.f))
		})
	}
}

// Every feature combination maps to exactly one outcome, and a session with
// a discovery click is always a Success.
func TestClassifyOutcome_ExhaustiveAndExclusive(t *testing.T) {
	for i := 0; i < 16; i++ {
		f := features{
			hasDiscoveryClick: i&1 != 0,
			hasOtherClick:     i&2 != 0,
			hasResult:         i&4 != 0,
			allResultsZero:    i&8 != 0,
		}

		got := classifyOutcome(f)

		matched := 0
		for _, o := range domain.Outcomes {
			if o == got {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "combination %04b produced %q", i, got)

		if f.hasDiscoveryClick {
			assert.Equal(t, domain.OutcomeSuccess, got, "combination %04b", i)
		}
	}
}
