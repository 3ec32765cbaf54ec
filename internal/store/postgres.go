// Package store implements the Postgres-backed lead store on pgx.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Karfearsw/dealexpressio-sub001/internal/core"
)

// Postgres persists leads in a single table, one row per lead, keyed by a
// database-assigned UUID. It satisfies core.Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a store backed by the given connection pool. The pool
// is owned by the caller.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Ping verifies database connectivity.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema applies the idempotent schema for the leads table.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip_code TEXT NOT NULL,
			county TEXT,
			owner_name TEXT,
			owner_phone TEXT,
			owner_email TEXT,
			property_type TEXT NOT NULL DEFAULT 'Unknown',
			bedrooms INTEGER,
			bathrooms DOUBLE PRECISION,
			square_feet INTEGER,
			year_built INTEGER,
			estimated_value DOUBLE PRECISION,
			estimated_equity DOUBLE PRECISION,
			mortgage_balance DOUBLE PRECISION,
			last_sale_date TEXT,
			last_sale_price DOUBLE PRECISION,
			status TEXT NOT NULL DEFAULT 'New',
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_user_created
			ON leads (user_id, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const insertLeadSQL = `
	INSERT INTO leads (
		user_id, address, city, state, zip_code, county,
		owner_name, owner_phone, owner_email, property_type,
		bedrooms, bathrooms, square_feet, year_built,
		estimated_value, estimated_equity, mortgage_balance,
		last_sale_date, last_sale_price, status, notes
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14,
		$15, $16, $17,
		$18, $19, $20, $21
	)
	RETURNING id`

// InsertBatch inserts every lead inside one transaction and returns the
// assigned IDs in input order. Any failure rolls the whole batch back.
func (s *Postgres) InsertBatch(ctx context.Context, leads []core.Lead) ([]string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, len(leads))
	for i, lead := range leads {
		var id pgtype.UUID
		err := tx.QueryRow(ctx, insertLeadSQL,
			lead.UserID, lead.Address, lead.City, lead.State, lead.ZipCode, textOrNull(lead.County),
			textOrNull(lead.OwnerName), textOrNull(lead.OwnerPhone), textOrNull(lead.OwnerEmail), lead.PropertyType,
			int4OrNull(lead.Bedrooms), float8OrNull(lead.Bathrooms), int4OrNull(lead.SquareFeet), int4OrNull(lead.YearBuilt),
			float8OrNull(lead.EstimatedValue), float8OrNull(lead.EstimatedEquity), float8OrNull(lead.MortgageBalance),
			textOrNull(lead.LastSaleDate), float8OrNull(lead.LastSalePrice), lead.Status, textOrNull(lead.Notes),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert lead %d: %w", i+1, err)
		}
		ids = append(ids, uuidString(id))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}
	return ids, nil
}

const selectLeadsSQL = `
	SELECT
		id, user_id, address, city, state, zip_code, county,
		owner_name, owner_phone, owner_email, property_type,
		bedrooms, bathrooms, square_feet, year_built,
		estimated_value, estimated_equity, mortgage_balance,
		last_sale_date, last_sale_price, status, notes,
		created_at, updated_at
	FROM leads
	WHERE user_id = $1
	ORDER BY created_at DESC`

// LeadsByUser returns all leads owned by userID, newest first.
func (s *Postgres) LeadsByUser(ctx context.Context, userID string) ([]core.Lead, error) {
	rows, err := s.pool.Query(ctx, selectLeadsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []core.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(row pgx.Row) (core.Lead, error) {
	var (
		lead core.Lead
		id   pgtype.UUID

		county, ownerName, ownerPhone, ownerEmail  pgtype.Text
		lastSaleDate, notes                        pgtype.Text
		bedrooms, squareFeet, yearBuilt            pgtype.Int4
		bathrooms, estimatedValue, estimatedEquity pgtype.Float8
		mortgageBalance, lastSalePrice             pgtype.Float8
		createdAt, updatedAt                       pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &lead.UserID, &lead.Address, &lead.City, &lead.State, &lead.ZipCode, &county,
		&ownerName, &ownerPhone, &ownerEmail, &lead.PropertyType,
		&bedrooms, &bathrooms, &squareFeet, &yearBuilt,
		&estimatedValue, &estimatedEquity, &mortgageBalance,
		&lastSaleDate, &lastSalePrice, &lead.Status, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return core.Lead{}, err
	}

	lead.ID = uuidString(id)
	lead.County = textValue(county)
	lead.OwnerName = textValue(ownerName)
	lead.OwnerPhone = textValue(ownerPhone)
	lead.OwnerEmail = textValue(ownerEmail)
	lead.Bedrooms = int4Value(bedrooms)
	lead.Bathrooms = float8Value(bathrooms)
	lead.SquareFeet = int4Value(squareFeet)
	lead.YearBuilt = int4Value(yearBuilt)
	lead.EstimatedValue = float8Value(estimatedValue)
	lead.EstimatedEquity = float8Value(estimatedEquity)
	lead.MortgageBalance = float8Value(mortgageBalance)
	lead.LastSaleDate = textValue(lastSaleDate)
	lead.LastSalePrice = float8Value(lastSalePrice)
	lead.Notes = textValue(notes)
	if createdAt.Valid {
		lead.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		lead.UpdatedAt = updatedAt.Time
	}

	return lead, nil
}
