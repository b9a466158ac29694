package checklist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"timekeep/internal/domain/checklist"
	"timekeep/internal/store"
	"timekeep/internal/store/mocks"
)

func newTestService(t *testing.T) *checklist.Service {
	t.Helper()

	st := &mocks.Store{}
	st.On("Load", mock.Anything).Return(&store.Snapshot{}, nil)
	st.On("SaveChecklist", mock.Anything, mock.Anything).Return(nil)

	svc := checklist.NewService(st, nil)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestAddTodo_RejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	todo, err := svc.AddTodo(ctx, "Stretch")
	require.NoError(t, err)
	require.NotEmpty(t, todo.ID)

	_, err = svc.AddTodo(ctx, "Stretch")
	require.ErrorIs(t, err, checklist.ErrDuplicateName)

	_, err = svc.AddTodo(ctx, "  ")
	require.ErrorIs(t, err, checklist.ErrInvalidInput)
}

func TestToggle_FirstToggleAlwaysCompletes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	c, err := svc.Toggle(ctx, "t1", "2026-03-14")
	require.NoError(t, err)
	require.True(t, c.Completed)
	require.True(t, svc.Completed("t1", "2026-03-14"))
}

func TestToggle_TwiceIsInvolution(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	before := svc.Completed("t1", "2026-03-14")
	_, err := svc.Toggle(ctx, "t1", "2026-03-14")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "t1", "2026-03-14")
	require.NoError(t, err)
	require.Equal(t, before, svc.Completed("t1", "2026-03-14"))

	// Toggling twice updates one record in place, never duplicates.
	state := svc.State()
	require.Len(t, state.Completions, 1)
}

func TestCompleted_AbsentReadsFalse(t *testing.T) {
	svc := newTestService(t)
	require.False(t, svc.Completed("missing", "2026-03-14"))
}

func TestToggle_DatesAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Toggle(ctx, "t1", "2026-03-14")
	require.NoError(t, err)

	require.True(t, svc.Completed("t1", "2026-03-14"))
	require.False(t, svc.Completed("t1", "2026-03-15"))

	_, err = svc.Toggle(ctx, "t1", "2026-03-15")
	require.NoError(t, err)
	state := svc.State()
	require.Len(t, state.Completions, 2)
}
