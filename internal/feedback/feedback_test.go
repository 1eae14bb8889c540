package feedback_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwang/apiforge/internal/feedback"
)

func TestPushAndActive(t *testing.T) {
	c := feedback.NewCenter()

	c.Info("fetching tasks")
	c.Error("网络错误")

	active := c.Active()
	assert.Len(t, active, 2)
	assert.Equal(t, feedback.LevelInfo, active[0].Level)
	assert.Equal(t, feedback.LevelError, active[1].Level)
	assert.NotEqual(t, active[0].ID, active[1].ID)
}

func TestQueueBounded(t *testing.T) {
	c := feedback.NewCenter()

	for i := 0; i < 9; i++ {
		c.Info(fmt.Sprintf("msg %d", i))
	}

	active := c.Active()
	assert.Len(t, active, 5)
	assert.Equal(t, "msg 4", active[0].Message, "oldest entries evicted first")
}

func TestDismiss(t *testing.T) {
	c := feedback.NewCenter()

	keep := c.Success("kept")
	drop := c.Warning("dropped")

	c.Dismiss(drop.ID)

	active := c.Active()
	assert.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)
}
