package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

func setupBlogService(t *testing.T) BlogService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Counter{}, &models.Blog{}))

	counters := repository.NewCounterRepository(db)
	require.NoError(t, counters.Ensure(context.Background()))

	blogs := repository.NewBlogRepository(db)
	return NewBlogService(blogs, NewIDAllocator(counters), validator.New(), zerolog.Nop())
}

func TestBlogServiceCreateSanitizesBody(t *testing.T) {
	svc := setupBlogService(t)

	created, err := svc.Create(context.Background(), dto.BlogCreateRequest{
		Title: "Study tips",
		Body:  `<p>Read daily.</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)

	require.Contains(t, created.Body, "<p>Read daily.</p>")
	require.NotContains(t, created.Body, "<script>")
	require.NotContains(t, created.Body, "alert")
}

func TestBlogServiceCreateAllocatesSequentialIDs(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		created, err := svc.Create(ctx, dto.BlogCreateRequest{
			Title: "Post",
			Body:  "A body long enough.",
		})
		require.NoError(t, err)
		require.Equal(t, want, created.BlogID)
	}
}

func TestBlogServiceListLimited(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Create(ctx, dto.BlogCreateRequest{
			Title: fmt.Sprintf("Post %d", i),
			Body:  "A body long enough.",
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 10)

	limited, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, limited, 8)
	// Newest first.
	require.Equal(t, int64(10), limited[0].BlogID)
}

func TestBlogServiceGetByBlogID(t *testing.T) {
	svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.BlogCreateRequest{
		Title: "Study tips",
		Body:  "A body long enough.",
	})
	require.NoError(t, err)

	found, err := svc.GetByBlogID(ctx, created.BlogID)
	require.NoError(t, err)
	require.Equal(t, created.Title, found.Title)

	_, err = svc.GetByBlogID(ctx, 404)
	require.ErrorIs(t, err, ErrBlogNotFound)
}
