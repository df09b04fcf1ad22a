package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

func TestEnsureSeededPopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	require.NoError(t, EnsureSeeded(ctx, mem, zerolog.Nop()))

	users, err := NewUserRepository(mem).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, users)

	courses, err := NewCourseRepository(mem).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, courses)

	videos, err := NewVideoRepository(mem).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, videos)
}

func TestEnsureSeededLeavesExistingDataAlone(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	users := NewUserRepository(mem)

	existing := models.User{Name: "Only User", Email: "only@example.com", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, &existing))

	require.NoError(t, EnsureSeeded(ctx, mem, zerolog.Nop()))

	listed, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "only@example.com", listed[0].Email)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	require.NoError(t, EnsureSeeded(ctx, mem, zerolog.Nop()))
	require.NoError(t, EnsureSeeded(ctx, mem, zerolog.Nop()))

	courses, err := NewCourseRepository(mem).List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, len(defaultCourses()))
}
