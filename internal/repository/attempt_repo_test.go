package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

func TestAttemptAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository(store.NewMemory())

	first := models.ExamAttempt{ExamID: "exam-1", UserID: "u-1", StartedAt: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, &first))
	require.NotEmpty(t, first.ID)

	second := models.ExamAttempt{ExamID: "exam-2", UserID: "u-1", StartedAt: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, &second))

	other := models.ExamAttempt{ExamID: "exam-1", UserID: "u-2", StartedAt: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, &other))

	mine, err := repo.ListByUser(ctx, "u-1", "")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	narrowed, err := repo.ListByUser(ctx, "u-1", "exam-1")
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	require.Equal(t, first.ID, narrowed[0].ID)
}

func TestAttemptFinalizeReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository(store.NewMemory())

	attempt := models.ExamAttempt{ExamID: "exam-1", UserID: "u-1", StartedAt: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, &attempt))

	score := 80
	passed := true
	done := time.Now().UTC()
	attempt.Score = &score
	attempt.Passed = &passed
	attempt.CompletedAt = &done
	require.NoError(t, repo.Finalize(ctx, attempt))

	stored, err := repo.GetByID(ctx, attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	require.Equal(t, 80, *stored.Score)

	// Finalizing keeps the log length, it never appends.
	all, err := repo.ListByUser(ctx, "u-1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAttemptFinalizeUnknownID(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository(store.NewMemory())

	err := repo.Finalize(ctx, models.ExamAttempt{ID: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}
