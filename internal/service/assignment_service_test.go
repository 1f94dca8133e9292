package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

func newTestAssignmentService(t *testing.T) (AssignmentService, string) {
	t.Helper()

	assignments := newMemoryAssignmentRepo()
	assignment := models.DefaultAssignment("s1")
	require.NoError(t, assignments.Create(context.Background(), &assignment))

	return NewAssignmentService(assignments, validator.New(), noCache(), testLogger()), "s1"
}

func TestAssignmentCommitPartialMerge(t *testing.T) {
	svc, id := newTestAssignmentService(t)

	committed, err := svc.Commit(context.Background(), id, dto.AssignmentCommitRequest{
		Title: ptrString("Robot GPT Challenge"),
	})
	require.NoError(t, err)
	require.Equal(t, "Robot GPT Challenge", committed.Title)

	// Instructions and rubric keep their committed values.
	require.Contains(t, committed.Instructions, "pirate")
	require.Len(t, committed.Rubric, 4)

	fetched, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, committed.Title, fetched.Title)
}

func TestAssignmentCommitRejectsEmptyTitle(t *testing.T) {
	svc, id := newTestAssignmentService(t)

	_, err := svc.Commit(context.Background(), id, dto.AssignmentCommitRequest{
		Title: ptrString(""),
	})
	require.Error(t, err)

	fetched, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Pirate GPT Challenge", fetched.Title)
}

func TestAssignmentCommitEmptyPayloadIsNoOp(t *testing.T) {
	svc, id := newTestAssignmentService(t)

	before, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	committed, err := svc.Commit(context.Background(), id, dto.AssignmentCommitRequest{})
	require.NoError(t, err)
	require.Equal(t, before.Title, committed.Title)
	require.Equal(t, before.Instructions, committed.Instructions)
}

func TestAssignmentUnknownSession(t *testing.T) {
	svc, _ := newTestAssignmentService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
