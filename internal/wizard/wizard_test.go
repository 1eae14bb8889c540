package wizard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/wizard"
	"github.com/lwang/apiforge/tests/testutil"
)

func threeSteps() []model.DeploymentStep {
	return []model.DeploymentStep{
		{ID: "a", StepNumber: 1, Title: "connect"},
		{ID: "b", StepNumber: 2, Title: "copy", Command: "cp {{file_path}} {{project_path}}/", RequiresInput: true},
		{ID: "c", StepNumber: 3, Title: "verify"},
	}
}

func TestCursorMovement(t *testing.T) {
	s := testutil.NewTestStore(t)
	sess, err := wizard.NewSession(context.Background(), s, "t1", threeSteps())
	require.NoError(t, err)

	assert.Equal(t, 0, sess.Index())
	assert.False(t, sess.Prev(), "cannot move before the first step")

	assert.True(t, sess.Next())
	assert.True(t, sess.Next())
	assert.Equal(t, 2, sess.Index())
	assert.False(t, sess.Next(), "cannot move past the last step")

	assert.True(t, sess.Prev())
	assert.Equal(t, 1, sess.Index())

	assert.True(t, sess.Jump(2))
	assert.Equal(t, "c", sess.Current().ID)
	assert.False(t, sess.Jump(3))
	assert.False(t, sess.Jump(-1))
	assert.Equal(t, 2, sess.Index(), "failed jump leaves the cursor alone")
}

func TestAttestationRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	sess, err := wizard.NewSession(ctx, s, "t1", threeSteps())
	require.NoError(t, err)

	require.NoError(t, sess.MarkComplete(ctx))
	sess.Next()
	require.NoError(t, sess.MarkComplete(ctx))

	assert.Equal(t, 2, sess.CompletedCount())
	assert.False(t, sess.AllCompleted())

	// A fresh session over the same task sees identical flags.
	reloaded, err := wizard.NewSession(ctx, s, "t1", threeSteps())
	require.NoError(t, err)
	assert.True(t, reloaded.IsCompleted("a"))
	assert.True(t, reloaded.IsCompleted("b"))
	assert.False(t, reloaded.IsCompleted("c"))

	// A session for a different task sees none of them.
	other, err := wizard.NewSession(ctx, s, "t2", threeSteps())
	require.NoError(t, err)
	assert.Equal(t, 0, other.CompletedCount())
}

func TestUnmark(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	sess, err := wizard.NewSession(ctx, s, "t1", threeSteps())
	require.NoError(t, err)

	require.NoError(t, sess.MarkComplete(ctx))
	assert.True(t, sess.IsCompleted("a"))

	require.NoError(t, sess.Unmark(ctx))
	assert.False(t, sess.IsCompleted("a"))
}

// Attestation is client-local; the cached task snapshot must be
// untouched by wizard actions.
func TestAttestationNeverTouchesTaskStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertTasks(ctx, []model.Task{{
		ID: "t1", Title: "orders-api", Status: "approved",
	}}))

	sess, err := wizard.NewSession(ctx, s, "t1", threeSteps())
	require.NoError(t, err)
	for {
		require.NoError(t, sess.MarkComplete(ctx))
		if !sess.Next() {
			break
		}
	}
	assert.True(t, sess.AllCompleted())

	task, err := s.GetTaskByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "approved", task.Status)
}

func TestVarsRender(t *testing.T) {
	vars := wizard.Vars{
		ProjectPath:   "/srv/orders",
		FilePath:      "/tmp/code.py",
		FileName:      "main.py",
		CommitMessage: "deploy orders-api",
		GitRepoURL:    "git@example.com:x/orders.git",
	}

	assert.Equal(t,
		"cp /tmp/code.py /srv/orders/main.py",
		vars.Render("cp {{file_path}} {{project_path}}/{{file_name}}"))
	assert.Equal(t,
		`git commit -m "deploy orders-api"`,
		vars.Render(`git commit -m "{{commit_message}}"`))

	// Unknown tokens pass through so the gap is visible.
	assert.Equal(t, "echo {{mystery}}", vars.Render("echo {{mystery}}"))

	// Empty values substitute to empty strings.
	assert.Equal(t, "cd ", wizard.Vars{}.Render("cd {{project_path}}"))
}

func TestFallbackStepsShape(t *testing.T) {
	steps := wizard.FallbackSteps()
	require.Len(t, steps, 13)

	seen := map[string]bool{}
	for i, step := range steps {
		assert.Equal(t, i+1, step.StepNumber)
		assert.NotEmpty(t, step.ID)
		assert.False(t, seen[step.ID], "step IDs must be unique")
		seen[step.ID] = true
	}
}
