// README: Pricing backend backed by the vehicle_rates table in PostgreSQL.
package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRemote struct {
	db *pgxpool.Pool
}

func NewPGRemote(db *pgxpool.Pool) *PGRemote {
	return &PGRemote{db: db}
}

func (r *PGRemote) Fetch(ctx context.Context) (RateTable, error) {
	rows, err := r.db.Query(ctx, `SELECT vehicle_type, rate, fixed_price FROM vehicle_rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Type, &rec.Rate, &rec.FixedPrice); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return FromRecords(records), nil
}

// Push upserts every category in one transaction.
func (r *PGRemote) Push(ctx context.Context, t RateTable) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, rec := range t.Records() {
		_, err := tx.Exec(ctx, `
			INSERT INTO vehicle_rates (vehicle_type, rate, fixed_price, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (vehicle_type) DO UPDATE
			SET rate = EXCLUDED.rate,
			    fixed_price = EXCLUDED.fixed_price,
			    updated_at = NOW()`,
			rec.Type, rec.Rate, rec.FixedPrice,
		)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", rec.Type, err)
		}
	}
	return tx.Commit(ctx)
}
