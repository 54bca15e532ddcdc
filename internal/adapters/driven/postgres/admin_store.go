package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure AdminStore implements the interface.
var _ driven.AdminStore = (*AdminStore)(nil)

// AdminStore implements driven.AdminStore using PostgreSQL.
type AdminStore struct {
	db *DB
}

// NewAdminStore creates a new PostgreSQL-backed admin store.
func NewAdminStore(db *DB) *AdminStore {
	return &AdminStore{db: db}
}

// GetByEmail retrieves an admin by email.
func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, active, created_at, updated_at, last_login_at
		FROM admins
		WHERE email = $1
	`

	var admin domain.Admin
	var lastLogin sql.NullTime
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.Active,
		&admin.CreatedAt,
		&admin.UpdatedAt,
		&lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}

	if lastLogin.Valid {
		admin.LastLoginAt = &lastLogin.Time
	}

	return &admin, nil
}

// Save upserts an admin account.
func (s *AdminStore) Save(ctx context.Context, admin *domain.Admin) error {
	now := time.Now()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	query := `
		INSERT INTO admins (id, email, password_hash, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Name,
		admin.Active,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}

// UpdateLastLogin bumps last_login_at.
func (s *AdminStore) UpdateLastLogin(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE admins SET last_login_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
