package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Ingredient mirrors a row of the ingredients table. AddedAt is RFC 3339 text.
type Ingredient struct {
	ID              int64
	Name            string
	PurchaseDate    string
	StorageLocation string
	AddedAt         string
}

const createIngredient = `
INSERT INTO ingredients (name, purchase_date, storage_location)
VALUES (?, ?, ?)
`

type CreateIngredientParams struct {
	Name            string
	PurchaseDate    string
	StorageLocation string
}

func (q *Queries) CreateIngredient(ctx context.Context, arg CreateIngredientParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createIngredient, arg.Name, arg.PurchaseDate, arg.StorageLocation)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getIngredient = `
SELECT id, name, purchase_date, storage_location,
       strftime('%Y-%m-%dT%H:%M:%SZ', added_at) AS added_at
FROM ingredients
WHERE id = ?
`

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	row := q.db.QueryRowContext(ctx, getIngredient, id)
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.PurchaseDate, &i.StorageLocation, &i.AddedAt)
	return i, err
}

const listIngredients = `
SELECT id, name, purchase_date, storage_location,
       strftime('%Y-%m-%dT%H:%M:%SZ', added_at) AS added_at
FROM ingredients
ORDER BY added_at DESC, id DESC
`

func (q *Queries) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := q.db.QueryContext(ctx, listIngredients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ingredient
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.PurchaseDate, &i.StorageLocation, &i.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createContribution = `
INSERT INTO food_loss_contribution (amount_g)
VALUES (?)
`

func (q *Queries) CreateContribution(ctx context.Context, amountG float64) (int64, error) {
	res, err := q.db.ExecContext(ctx, createContribution, amountG)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const sumContributions = `
SELECT SUM(amount_g) AS total_g FROM food_loss_contribution
`

// SumContributions returns NULL (Valid=false) when the table is empty.
func (q *Queries) SumContributions(ctx context.Context) (sql.NullFloat64, error) {
	row := q.db.QueryRowContext(ctx, sumContributions)
	var total sql.NullFloat64
	err := row.Scan(&total)
	return total, err
}
