package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresRepository{db: pool}, nil
}

// RunMigrations applies the reviews schema. Uses a separate
// database/sql connection because migrate drives a *sql.DB.
func RunMigrations(dsn, migrationsDir string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "reviews_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsDir),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}
	return nil
}

func (r *PostgresRepository) ListRatings(ctx context.Context, serviceID string) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rating FROM reviews WHERE service_id=$1`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		out = append(out, rating)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListAllRatings(ctx context.Context) ([]domain.RatingRow, error) {
	rows, err := r.db.Query(ctx, `SELECT service_id, rating FROM reviews`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating rows: %w", err)
	}
	defer rows.Close()

	var out []domain.RatingRow
	for rows.Next() {
		var row domain.RatingRow
		if err := rows.Scan(&row.ServiceID, &row.Rating); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListReviews(ctx context.Context, serviceID string) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, service_id, user_name, rating, comment, images, created_at
		 FROM reviews WHERE service_id=$1 ORDER BY created_at DESC`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ServiceID, &rev.UserName,
			&rev.Rating, &rev.Comment, &rev.Images, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO reviews (id, service_id, user_name, rating, comment, images, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.ServiceID, review.UserName,
		review.Rating, review.Comment, review.Images, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Close() {
	r.db.Close()
}
