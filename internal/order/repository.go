package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"amalkitchen-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ListFilter narrows order reads for the dashboards. Zero values mean
// unfiltered.
type ListFilter struct {
	Branch string
	Email  string
	Status Status
}

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error
	UpdateItems(ctx context.Context, id uint, items []Item, total float64) error
	ItemsForStatuses(ctx context.Context, statuses []Status) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, customer_name, phone_number, cell_number, email,
	branch, region, payment_method, items, total, status, payment_status,
	created_at, updated_at
`

// CreateOrder persists the order and returns it with the server-assigned
// id and timestamps. Items are normalized to one canonical JSON shape on
// write so reads never need polymorphic parsing.
func (r *repository) CreateOrder(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.OrderNumber),
		zap.String("branch", o.Branch),
	)

	if o.Items == nil {
		o.Items = []Item{}
	}
	rawItems, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			order_number, customer_name, phone_number, cell_number, email,
			branch, region, payment_method, items, total, status, payment_status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		o.OrderNumber,
		o.CustomerName,
		o.PhoneNumber,
		o.CellNumber,
		o.Email,
		o.Branch,
		o.Region,
		o.PaymentMethod,
		rawItems,
		o.Total,
		o.Status,
		o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	log.Info("order persisted", zap.Uint("order_id", o.ID))
	return o, nil
}

func (r *repository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
		zap.String("branch", filter.Branch),
		zap.String("status", string(filter.Status)),
	)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Branch != "" {
		query += fmt.Sprintf(" AND branch = $%d", argIndex)
		args = append(args, filter.Branch)
		argIndex++
	}
	if filter.Email != "" {
		query += fmt.Sprintf(" AND email = $%d", argIndex)
		args = append(args, filter.Email)
		argIndex++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateItems replaces the line items and the recomputed total. This is
// the only path that rewrites a stored total after creation.
func (r *repository) UpdateItems(ctx context.Context, id uint, items []Item, total float64) error {
	rawItems, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET items = $1, total = $2, updated_at = NOW() WHERE id = $3
	`, rawItems, total, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ItemsForStatuses flattens the line items of every order in the given
// states. The prep sheet aggregates over this.
func (r *repository) ItemsForStatuses(ctx context.Context, statuses []Status) ([]Item, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT items FROM orders WHERE status = ANY($1)
	`, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []Item
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
		all = append(all, items...)
	}

	return all, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var rawItems []byte
	var phone, cell, email, paymentStatus sql.NullString

	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerName,
		&phone,
		&cell,
		&email,
		&o.Branch,
		&o.Region,
		&o.PaymentMethod,
		&rawItems,
		&o.Total,
		&o.Status,
		&paymentStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.PhoneNumber = phone.String
	o.CellNumber = cell.String
	o.Email = email.String
	o.PaymentStatus = PaymentStatus(paymentStatus.String)

	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}

	return &o, nil
}
