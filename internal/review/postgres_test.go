package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

func setupTestDB(t *testing.T) (*PostgresRepository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%d/testdb?sslmode=disable", host, port.Int())

	err = RunMigrations(dsn, "../../migrations")
	require.NoError(t, err)

	repo, err := NewPostgresRepository(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func newTestReview(serviceID string, rating int) *domain.Review {
	return &domain.Review{
		ID:        uuid.NewString(),
		ServiceID: serviceID,
		UserName:  "alice",
		Rating:    rating,
		Comment:   "fast delivery",
		Images:    []string{"https://media.example/one.jpg"},
		CreatedAt: time.Now().UTC(),
	}
}

func TestInsertAndListReviews(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	rev := newTestReview("ig-followers", 5)

	err := repo.Insert(ctx, rev)
	require.NoError(t, err)

	fetched, err := repo.ListReviews(ctx, "ig-followers")
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, rev.ID, fetched[0].ID)
	assert.Equal(t, rev.UserName, fetched[0].UserName)
	assert.Equal(t, rev.Rating, fetched[0].Rating)
	assert.Equal(t, rev.Comment, fetched[0].Comment)
	assert.Equal(t, rev.Images, fetched[0].Images)
	assert.WithinDuration(t, rev.CreatedAt, fetched[0].CreatedAt, time.Second)
}

func TestListReviews_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	older := newTestReview("yt-views", 3)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Insert(ctx, older))

	newer := newTestReview("yt-views", 4)
	require.NoError(t, repo.Insert(ctx, newer))

	fetched, err := repo.ListReviews(ctx, "yt-views")
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, newer.ID, fetched[0].ID)
	assert.Equal(t, older.ID, fetched[1].ID)
}

func TestListRatings_FiltersByService(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, newTestReview("ig-followers", 5)))
	require.NoError(t, repo.Insert(ctx, newTestReview("ig-followers", 4)))
	require.NoError(t, repo.Insert(ctx, newTestReview("tt-likes", 2)))

	ratings, err := repo.ListRatings(ctx, "ig-followers")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 4}, ratings)

	none, err := repo.ListRatings(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAllRatings(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, newTestReview("ig-followers", 5)))
	require.NoError(t, repo.Insert(ctx, newTestReview("yt-views", 3)))

	rows, err := repo.ListAllRatings(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.RatingRow{
		{ServiceID: "ig-followers", Rating: 5},
		{ServiceID: "yt-views", Rating: 3},
	}, rows)
}

func TestInsert_RejectsOutOfRangeRating(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	bad := newTestReview("ig-followers", 0)
	assert.ErrorIs(t, repo.Insert(ctx, bad), ErrInvalidRating)

	bad.Rating = 6
	assert.ErrorIs(t, repo.Insert(ctx, bad), ErrInvalidRating)

	ratings, err := repo.ListRatings(ctx, "ig-followers")
	require.NoError(t, err)
	assert.Empty(t, ratings)
}
