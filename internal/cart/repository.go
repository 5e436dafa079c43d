package cart

import (
	"context"
	"database/sql"
	"encoding/json"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
)

// repository is the Postgres-backed Storage. The whole cart is one row per
// session with the lines as a JSON document, normalized on write so reads
// never have to guess at the shape.
type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Storage {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	query := `
		SELECT items, selected_region
		FROM carts
		WHERE session_id = $1
	`

	var raw []byte
	var selectedRegion sql.NullString

	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&raw, &selectedRegion)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{SelectedRegion: selectedRegion.String}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &snap.Items); err != nil {
			logger.FromCtx(ctx).Warn("cart items failed to parse",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			return nil, ErrCorruptSnapshot
		}
	}

	return snap, nil
}

func (r *repository) Save(ctx context.Context, sessionID string, snap *Snapshot) error {
	items := snap.Items
	if items == nil {
		items = []Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (session_id, items, selected_region, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET items = $2, selected_region = $3, updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, sessionID, raw, snap.SelectedRegion)
	return err
}

func (r *repository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID)
	return err
}
