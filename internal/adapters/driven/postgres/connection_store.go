package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure ConnectionStore implements the interface.
var _ driven.ConnectionStore = (*ConnectionStore)(nil)

// ConnectionStore implements driven.ConnectionStore using PostgreSQL.
// Access and refresh tokens are encrypted as independent blobs before they
// reach the database; upserts are last-write-wins on (admin_email, provider).
type ConnectionStore struct {
	db     *DB
	cipher driven.SecretCipher
}

// NewConnectionStore creates a new PostgreSQL-backed connection store.
func NewConnectionStore(db *DB, cipher driven.SecretCipher) *ConnectionStore {
	return &ConnectionStore{
		db:     db,
		cipher: cipher,
	}
}

// Upsert stores or replaces the connection for (admin_email, provider).
func (s *ConnectionStore) Upsert(ctx context.Context, conn *domain.Connection) error {
	accessBlob, err := s.cipher.EncryptString(conn.AccessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}

	var refreshBlob []byte
	if conn.RefreshToken != "" {
		refreshBlob, err = s.cipher.EncryptString(conn.RefreshToken)
		if err != nil {
			return fmt.Errorf("encrypt refresh token: %w", err)
		}
	}

	now := time.Now()
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = now
	}
	conn.UpdatedAt = now

	query := `
		INSERT INTO oauth_connections (
			admin_email, provider, profile_id, profile_name,
			access_blob, refresh_blob, expires_at,
			granted_scopes, requested_scopes, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $11)
		ON CONFLICT (admin_email, provider) DO UPDATE SET
			profile_id = EXCLUDED.profile_id,
			profile_name = EXCLUDED.profile_name,
			access_blob = EXCLUDED.access_blob,
			refresh_blob = EXCLUDED.refresh_blob,
			expires_at = EXCLUDED.expires_at,
			granted_scopes = EXCLUDED.granted_scopes,
			requested_scopes = EXCLUDED.requested_scopes,
			active = TRUE,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		conn.AdminEmail,
		conn.Provider,
		conn.ProfileID,
		conn.ProfileName,
		accessBlob,
		refreshBlob,
		nullTime(conn.ExpiresAt),
		conn.GrantedScopes,
		conn.RequestedScopes,
		conn.CreatedAt,
		conn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert connection: %w", err)
	}

	return nil
}

// Get retrieves the active connection with tokens decrypted.
func (s *ConnectionStore) Get(ctx context.Context, adminEmail string, provider domain.ProviderID) (*domain.Connection, error) {
	query := selectConnection + `
		WHERE admin_email = $1 AND provider = $2 AND active = TRUE
	`

	row := s.db.QueryRowContext(ctx, query, adminEmail, provider)
	conn, err := s.scanConnection(row)
	if err == sql.ErrNoRows {
		return nil, nil // No active connection returns nil, not error
	}
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}

	return conn, nil
}

// ListByAdmin returns all active connections for an admin.
func (s *ConnectionStore) ListByAdmin(ctx context.Context, adminEmail string) ([]*domain.Connection, error) {
	query := selectConnection + `
		WHERE admin_email = $1 AND active = TRUE
		ORDER BY provider
	`

	rows, err := s.db.QueryContext(ctx, query, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []*domain.Connection
	for rows.Next() {
		conn, err := s.scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connections: %w", err)
	}

	return conns, nil
}

// UpdateTokens overwrites token material after a refresh. An empty refresh
// token preserves the stored blob for providers that do not rotate.
func (s *ConnectionStore) UpdateTokens(ctx context.Context, adminEmail string, provider domain.ProviderID, accessToken, refreshToken string, expiresAt *time.Time) error {
	accessBlob, err := s.cipher.EncryptString(accessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}

	if refreshToken == "" {
		query := `
			UPDATE oauth_connections
			SET access_blob = $3, expires_at = $4, updated_at = NOW()
			WHERE admin_email = $1 AND provider = $2 AND active = TRUE
		`
		if _, err := s.db.ExecContext(ctx, query, adminEmail, provider, accessBlob, nullTime(expiresAt)); err != nil {
			return fmt.Errorf("update tokens: %w", err)
		}
		return nil
	}

	refreshBlob, err := s.cipher.EncryptString(refreshToken)
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	query := `
		UPDATE oauth_connections
		SET access_blob = $3, refresh_blob = $4, expires_at = $5, updated_at = NOW()
		WHERE admin_email = $1 AND provider = $2 AND active = TRUE
	`
	if _, err := s.db.ExecContext(ctx, query, adminEmail, provider, accessBlob, refreshBlob, nullTime(expiresAt)); err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	return nil
}

// Deactivate marks the connection inactive (logical delete).
func (s *ConnectionStore) Deactivate(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	query := `
		UPDATE oauth_connections
		SET active = FALSE, updated_at = NOW()
		WHERE admin_email = $1 AND provider = $2
	`
	if _, err := s.db.ExecContext(ctx, query, adminEmail, provider); err != nil {
		return fmt.Errorf("deactivate connection: %w", err)
	}
	return nil
}

// TouchUsed bumps last_used_at.
func (s *ConnectionStore) TouchUsed(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	query := `
		UPDATE oauth_connections
		SET last_used_at = NOW()
		WHERE admin_email = $1 AND provider = $2 AND active = TRUE
	`
	if _, err := s.db.ExecContext(ctx, query, adminEmail, provider); err != nil {
		return fmt.Errorf("touch last_used: %w", err)
	}
	return nil
}

// TouchSync bumps last_sync_at.
func (s *ConnectionStore) TouchSync(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	query := `
		UPDATE oauth_connections
		SET last_sync_at = NOW()
		WHERE admin_email = $1 AND provider = $2 AND active = TRUE
	`
	if _, err := s.db.ExecContext(ctx, query, adminEmail, provider); err != nil {
		return fmt.Errorf("touch last_sync: %w", err)
	}
	return nil
}

const selectConnection = `
	SELECT admin_email, provider, profile_id, profile_name,
	       access_blob, refresh_blob, expires_at,
	       granted_scopes, requested_scopes, active,
	       last_used_at, last_sync_at, created_at, updated_at
	FROM oauth_connections
`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *ConnectionStore) scanConnection(row rowScanner) (*domain.Connection, error) {
	var conn domain.Connection
	var accessBlob, refreshBlob []byte
	var expiresAt, lastUsedAt, lastSyncAt sql.NullTime

	if err := row.Scan(
		&conn.AdminEmail,
		&conn.Provider,
		&conn.ProfileID,
		&conn.ProfileName,
		&accessBlob,
		&refreshBlob,
		&expiresAt,
		&conn.GrantedScopes,
		&conn.RequestedScopes,
		&conn.Active,
		&lastUsedAt,
		&lastSyncAt,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	); err != nil {
		return nil, err
	}

	access, err := s.cipher.DecryptString(accessBlob)
	if err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	conn.AccessToken = access

	if len(refreshBlob) > 0 {
		refresh, err := s.cipher.DecryptString(refreshBlob)
		if err != nil {
			return nil, fmt.Errorf("decrypt refresh token: %w", err)
		}
		conn.RefreshToken = refresh
	}

	if expiresAt.Valid {
		conn.ExpiresAt = &expiresAt.Time
	}
	if lastUsedAt.Valid {
		conn.LastUsedAt = &lastUsedAt.Time
	}
	if lastSyncAt.Valid {
		conn.LastSyncAt = &lastSyncAt.Time
	}

	return &conn, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
