package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

func setupCounterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Counter{}))
	return db
}

func TestCounterRepositoryNextIsSequentialPerKind(t *testing.T) {
	db := setupCounterDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx))

	for want := int64(1); want <= 5; want++ {
		got, err := repo.Next(ctx, models.KindExam)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// Other kinds advance independently.
	got, err := repo.Next(ctx, models.KindResult)
	require.NoError(t, err)
	require.Equal(t, int64(1), got)

	current, err := repo.Current(ctx, models.KindExam)
	require.NoError(t, err)
	require.Equal(t, int64(5), current)
}

func TestCounterRepositoryNextRequiresProvisioning(t *testing.T) {
	db := setupCounterDB(t)
	repo := NewCounterRepository(db)

	_, err := repo.Next(context.Background(), models.KindBlog)
	require.ErrorIs(t, err, ErrCounterNotProvisioned)
}

func TestCounterRepositoryEnsureIsIdempotent(t *testing.T) {
	db := setupCounterDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx))
	_, err := repo.Next(ctx, models.KindCourse)
	require.NoError(t, err)

	// Re-provisioning must not reset sequences.
	require.NoError(t, repo.Ensure(ctx))
	got, err := repo.Next(ctx, models.KindCourse)
	require.NoError(t, err)
	require.Equal(t, int64(2), got)
}

func TestCounterRepositoryRejectsUnknownKind(t *testing.T) {
	db := setupCounterDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx))

	_, err := repo.Next(ctx, models.CounterKind("banana"))
	require.ErrorIs(t, err, ErrUnknownCounterKind)
}
