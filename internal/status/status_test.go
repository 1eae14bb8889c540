package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/status"
)

var vocabularies = map[string]status.Vocabulary{
	"simplified": status.VocabularySimplified,
	"legacy":     status.VocabularyLegacy,
}

func TestProgressBounds(t *testing.T) {
	for name, v := range vocabularies {
		t.Run(name, func(t *testing.T) {
			for _, s := range v.Recognized() {
				p := v.Progress(s)
				assert.GreaterOrEqual(t, p, 0, "status %q", s)
				assert.LessOrEqual(t, p, 100, "status %q", s)
			}
		})
	}
}

func TestProgressDeterministic(t *testing.T) {
	for name, v := range vocabularies {
		t.Run(name, func(t *testing.T) {
			for _, s := range v.Recognized() {
				first := v.Map(s)
				for i := 0; i < 3; i++ {
					assert.Equal(t, first, v.Map(s), "status %q", s)
				}
			}
		})
	}
}

func TestRejectedAlwaysZero(t *testing.T) {
	for name, v := range vocabularies {
		t.Run(name, func(t *testing.T) {
			d := v.Map(status.StatusRejected)
			assert.Equal(t, 0, d.Progress)
			assert.Equal(t, status.CategoryFailed, d.Category)
			assert.Equal(t, status.IconAlert, d.Icon)
		})
	}
}

// Every recognized status must belong to exactly one of the four real
// categories; none may fall into CategoryNone.
func TestCategoryPartition(t *testing.T) {
	for name, v := range vocabularies {
		t.Run(name, func(t *testing.T) {
			buckets := map[status.Category][]string{}
			for _, s := range v.Recognized() {
				c := v.Categorize(s)
				require.NotEqual(t, status.CategoryNone, c,
					"recognized status %q must be categorized", s)
				buckets[c] = append(buckets[c], s)
			}

			seen := map[string]int{}
			for _, members := range buckets {
				for _, s := range members {
					seen[s]++
				}
			}
			for _, s := range v.Recognized() {
				assert.Equal(t, 1, seen[s],
					"status %q must appear in exactly one bucket", s)
			}
		})
	}
}

func TestUnknownStatusDegrades(t *testing.T) {
	for name, v := range vocabularies {
		t.Run(name, func(t *testing.T) {
			for _, s := range []string{"", "bogus", "DEPLOYED", "déployé", "submitted "} {
				assert.NotPanics(t, func() { v.Map(s) })
				d := v.Map(s)
				assert.Equal(t, 0, d.Progress)
				assert.Equal(t, status.IconClock, d.Icon)
				assert.Equal(t, status.CategoryNone, d.Category)
				assert.Equal(t, "未知", d.Badge.Label)
				assert.Equal(t, "未知状态", d.Text)
			}
		})
	}
}

func TestDeployedIsComplete(t *testing.T) {
	d := status.VocabularySimplified.Map(status.StatusDeployed)
	assert.Equal(t, 100, d.Progress)
	assert.Equal(t, status.CategoryCompleted, d.Category)
	assert.Equal(t, "部署完成", d.Badge.Label)

	d = status.VocabularyLegacy.Map(status.StatusDeployed)
	assert.Equal(t, 100, d.Progress)
	assert.Equal(t, status.CategoryCompleted, d.Category)
}

func TestLegacyProgressMonotonic(t *testing.T) {
	order := []string{
		status.StatusSubmitted,
		status.StatusCodePulling,
		status.StatusBranchCreated,
		status.StatusAIGenerating,
		status.StatusTestReady,
		status.StatusTesting,
		status.StatusTestCompleted,
		status.StatusCodePushed,
		status.StatusUnderReview,
		status.StatusApproved,
		status.StatusDeployed,
	}

	v := status.VocabularyLegacy
	assert.Equal(t, 0, v.Progress(order[0]))
	assert.Equal(t, 100, v.Progress(order[len(order)-1]))
	for i := 1; i < len(order); i++ {
		assert.Greater(t, v.Progress(order[i]), v.Progress(order[i-1]),
			"%s should be further along than %s", order[i], order[i-1])
	}
}

func TestSimplifiedProgressValues(t *testing.T) {
	v := status.VocabularySimplified
	want := map[string]int{
		status.StatusSubmitted:     20,
		status.StatusAIGenerating:  40,
		status.StatusTestReady:     40,
		status.StatusCodeSubmitted: 60,
		status.StatusUnderReview:   80,
		status.StatusApproved:      90,
		status.StatusDeployed:      100,
		status.StatusRejected:      0,
	}
	for s, p := range want {
		assert.Equal(t, p, v.Progress(s), "status %q", s)
	}
}

func TestTally(t *testing.T) {
	v := status.VocabularySimplified
	counts := v.Tally([]string{
		status.StatusSubmitted,
		status.StatusUnderReview,
		status.StatusDeployed,
		status.StatusRejected,
		"mystery",
	})

	assert.Equal(t, 1, counts[status.CategoryPending])
	assert.Equal(t, 1, counts[status.CategoryInProgress])
	assert.Equal(t, 1, counts[status.CategoryCompleted])
	assert.Equal(t, 1, counts[status.CategoryFailed])
	assert.Equal(t, 1, counts[status.CategoryNone])
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, status.IsTerminal(status.StatusDeployed))
	assert.True(t, status.IsTerminal(status.StatusRejected))
	assert.False(t, status.IsTerminal(status.StatusUnderReview))
	assert.False(t, status.IsTerminal("mystery"))
}

func TestParseVocabulary(t *testing.T) {
	assert.Equal(t, status.VocabularyLegacy, status.ParseVocabulary("legacy"))
	assert.Equal(t, status.VocabularySimplified, status.ParseVocabulary("simplified"))
	assert.Equal(t, status.VocabularySimplified, status.ParseVocabulary(""))
}

func TestVocabularyStringRoundTrips(t *testing.T) {
	// The string form is what gets persisted to config; it must parse
	// back to the same vocabulary.
	for _, v := range []status.Vocabulary{
		status.VocabularySimplified,
		status.VocabularyLegacy,
	} {
		assert.Equal(t, v, status.ParseVocabulary(v.String()))
	}
	assert.Equal(t, "legacy", status.VocabularyLegacy.String())
	assert.Equal(t, "simplified", status.VocabularySimplified.String())
}
