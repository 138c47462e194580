package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"foodloss/internal/core"
	"foodloss/internal/inventory"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = inventory.ErrNotFound

var _ inventory.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; serialize on one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements inventory.Pinger
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateIngredient implements inventory.IngredientWriter
func (r *SQLiteRepository) CreateIngredient(ctx context.Context, in core.NewIngredient) (int64, error) {
	in = in.Normalize()
	id, err := r.queries.CreateIngredient(ctx, CreateIngredientParams{
		Name:            in.Name,
		PurchaseDate:    in.PurchaseDate,
		StorageLocation: string(in.StorageLocation),
	})
	if err != nil {
		return 0, fmt.Errorf("create ingredient: %w", err)
	}

	slog.InfoContext(ctx, "Ingredient saved to SQLite",
		"id", id,
		"name", in.Name,
		"purchase_date", in.PurchaseDate,
		"storage_location", in.StorageLocation)

	return id, nil
}

// GetIngredient implements inventory.IngredientReader
func (r *SQLiteRepository) GetIngredient(ctx context.Context, id int64) (core.Ingredient, error) {
	row, err := r.queries.GetIngredient(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Ingredient{}, fmt.Errorf("get ingredient %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Ingredient{}, fmt.Errorf("get ingredient %d: %w", id, err)
	}
	return toCoreIngredient(row), nil
}

// ListIngredients implements inventory.IngredientLister
func (r *SQLiteRepository) ListIngredients(ctx context.Context) ([]core.Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	items := make([]core.Ingredient, len(rows))
	for i, row := range rows {
		items[i] = toCoreIngredient(row)
	}
	return items, nil
}

// AddContribution implements inventory.ContributionWriter
func (r *SQLiteRepository) AddContribution(ctx context.Context, grams float64) (int64, error) {
	id, err := r.queries.CreateContribution(ctx, grams)
	if err != nil {
		return 0, fmt.Errorf("create contribution: %w", err)
	}

	slog.InfoContext(ctx, "Contribution saved to SQLite", "id", id, "amount_g", grams)
	return id, nil
}

// TotalContributionGrams implements inventory.ContributionReader.
// An empty table yields a NULL sum, reported as 0.
func (r *SQLiteRepository) TotalContributionGrams(ctx context.Context) (float64, error) {
	total, err := r.queries.SumContributions(ctx)
	if err != nil {
		return 0, fmt.Errorf("sum contributions: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

func toCoreIngredient(row Ingredient) core.Ingredient {
	addedAt, err := time.Parse(time.RFC3339, row.AddedAt)
	if err != nil {
		slog.Warn("Unparseable added_at timestamp", "id", row.ID, "added_at", row.AddedAt, "error", err)
	}
	return core.Ingredient{
		ID:              row.ID,
		Name:            row.Name,
		PurchaseDate:    row.PurchaseDate,
		StorageLocation: core.StorageLocation(row.StorageLocation),
		AddedAt:         addedAt,
	}
}
