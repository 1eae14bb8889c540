package help_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwang/apiforge/internal/keys"
	"github.com/lwang/apiforge/internal/ui/help"
)

func TestViewListsViewScopedKeys(t *testing.T) {
	m := help.New(keys.DefaultKeyMap(), 100, 48)
	out := m.View()

	assert.Contains(t, out, "Deployment wizard")
	assert.Contains(t, out, "advance pipeline")
	assert.Contains(t, out, "mark all read")
	assert.Contains(t, out, ":vocab legacy")
	assert.NotContains(t, out, "Review (admin)")
}

func TestReviewSectionRequiresAdmin(t *testing.T) {
	m := help.New(keys.DefaultKeyMap(), 100, 48)
	m.SetAdmin(true)
	out := m.View()

	assert.Contains(t, out, "Review (admin)")
	assert.Contains(t, out, "switch console tab")
}
