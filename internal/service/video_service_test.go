package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

func newVideoFixture(t *testing.T) VideoService {
	t.Helper()

	repo := repository.NewVideoRepository(store.NewMemory())
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewVideoService(repo, validate, zerolog.Nop())
}

func TestVideoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newVideoFixture(t)

	created, err := svc.Create(ctx, dto.VideoCreateRequest{
		Title:    "Emergency Procedures",
		Category: "safety",
		Duration: "50:00",
		VideoURL: "https://videos.example.com/emergency",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Emergency Procedures", fetched.Title)
}

func TestVideoCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newVideoFixture(t)

	_, err := svc.Create(ctx, dto.VideoCreateRequest{
		Title:    "Bad Category",
		Category: "aerobatics",
		VideoURL: "https://videos.example.com/x",
	})
	require.Error(t, err)

	_, err = svc.Create(ctx, dto.VideoCreateRequest{
		Title:    "Bad URL",
		Category: "ground",
		VideoURL: "not-a-url",
	})
	require.Error(t, err)
}

func TestVideoUpdatePatchesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc := newVideoFixture(t)

	created, err := svc.Create(ctx, dto.VideoCreateRequest{
		Title:      "Weather Patterns",
		Category:   "ground",
		VideoURL:   "https://videos.example.com/weather",
		Instructor: "John Instructor",
	})
	require.NoError(t, err)

	title := "Weather Patterns and Safety"
	updated, err := svc.Update(ctx, created.ID, dto.VideoUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, "ground", updated.Category)
	require.Equal(t, "John Instructor", updated.Instructor)
}

func TestVideoUnknownIDs(t *testing.T) {
	ctx := context.Background()
	svc := newVideoFixture(t)

	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrVideoNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "missing"), ErrVideoNotFound)
}
