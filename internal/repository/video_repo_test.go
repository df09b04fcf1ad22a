package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

func TestVideoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewVideoRepository(store.NewMemory())

	video := models.Video{Title: "Crosswind Landings", Category: models.VideoFlight, VideoURL: "https://videos.example.com/crosswind"}
	require.NoError(t, repo.Create(ctx, &video))
	require.NotEmpty(t, video.ID)

	fetched, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.Equal(t, "Crosswind Landings", fetched.Title)

	require.NoError(t, repo.Delete(ctx, video.ID))
	_, err = repo.GetByID(ctx, video.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVideoPatchLeavesNilFieldsAlone(t *testing.T) {
	ctx := context.Background()
	repo := NewVideoRepository(store.NewMemory())

	video := models.Video{
		Title: "Radio Communications", Category: models.VideoGround,
		Duration: "28:45", VideoURL: "https://videos.example.com/radio", Instructor: "Jane Instructor",
	}
	require.NoError(t, repo.Create(ctx, &video))

	updated, err := repo.Update(ctx, video.ID, VideoPatch{
		Title:    strPtr("Radio Communications and Phraseology"),
		Category: strPtr(models.VideoSafety),
	})
	require.NoError(t, err)
	require.Equal(t, "Radio Communications and Phraseology", updated.Title)
	require.Equal(t, models.VideoSafety, updated.Category)
	require.Equal(t, "28:45", updated.Duration)
	require.Equal(t, "Jane Instructor", updated.Instructor)
}

func TestVideoNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewVideoRepository(store.NewMemory())

	_, err := repo.Update(ctx, "missing", VideoPatch{Title: strPtr("x")})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}
