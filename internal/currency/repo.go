package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	List(ctx context.Context) ([]Rate, error)
	// UpdateRates applies manual edits, never touching base, then pins base to 1.
	UpdateRates(ctx context.Context, base string, updates []RateUpdate) error
	// SyncRates pins base to 1 and upserts every code in rates.
	SyncRates(ctx context.Context, base string, rates map[string]decimal.Decimal) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Rate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, currency_code, rate::text, symbol, updated_at
    FROM currency_rates ORDER BY currency_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("list currency rates: %w", err)
	}
	defer rows.Close()
	var out []Rate
	for rows.Next() {
		var c Rate
		if err := rows.Scan(&c.ID, &c.CurrencyCode, &c.Rate, &c.Symbol, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const pinBase = `
    INSERT INTO currency_rates (id, currency_code, rate, updated_at)
    VALUES ($1, $2, 1, NOW())
    ON CONFLICT (currency_code) DO UPDATE SET rate = 1`

func (r *PGRepo) UpdateRates(ctx context.Context, base string, updates []RateUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range updates {
		if _, err := tx.Exec(ctx, `
      UPDATE currency_rates SET rate = $2, updated_at = NOW()
      WHERE id = $1 AND currency_code <> $3`, u.ID, u.Rate, base); err != nil {
			return fmt.Errorf("update rate %s: %w", u.ID, err)
		}
	}
	if _, err := tx.Exec(ctx, pinBase, uuid.NewString(), base); err != nil {
		return fmt.Errorf("pin base currency: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) SyncRates(ctx context.Context, base string, rates map[string]decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b := &pgx.Batch{}
	b.Queue(pinBase+`, updated_at = NOW()`, uuid.NewString(), base)
	for code, rate := range rates {
		b.Queue(`
      INSERT INTO currency_rates (id, currency_code, rate, updated_at)
      VALUES ($1, $2, $3, NOW())
      ON CONFLICT (currency_code) DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()`,
			uuid.NewString(), code, rate)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("sync rates: %w", err)
	}
	return tx.Commit(ctx)
}
