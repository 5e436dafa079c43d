package identity

import (
	"context"
	"database/sql"
	"errors"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateProfile(ctx context.Context, email, password, fullName string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	ManagerByEmail(ctx context.Context, email string) (*Manager, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProfile(ctx context.Context, email, password, fullName string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProfile"),
		zap.String("email", email),
	)

	p := &Profile{Email: email, Password: password, FullName: fullName}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (email, password, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, email, password, fullName).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		log.Error("failed to insert profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile created", zap.Uint("profile_id", p.ID))
	return p, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, full_name, created_at
		FROM profiles WHERE email = $1
	`, email).Scan(&p.ID, &p.Email, &p.Password, &p.FullName, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ManagerByEmail looks up a staff grant. Absence is the normal case for
// customers, signalled with a nil Manager and no error.
func (r *repository) ManagerByEmail(ctx context.Context, email string) (*Manager, error) {
	var m Manager
	err := r.db.QueryRowContext(ctx, `
		SELECT email, branch, role FROM managers WHERE email = $1
	`, email).Scan(&m.Email, &m.Branch, &m.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
