package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure AppConfigStore implements the interface.
var _ driven.AppConfigStore = (*AppConfigStore)(nil)

// AppConfigStore implements driven.AppConfigStore using PostgreSQL.
// One row per provider; Save upserts so a re-save supersedes the prior
// configuration instead of accumulating duplicates.
type AppConfigStore struct {
	db     *DB
	cipher driven.SecretCipher
}

// NewAppConfigStore creates a new PostgreSQL-backed app config store.
func NewAppConfigStore(db *DB, cipher driven.SecretCipher) *AppConfigStore {
	return &AppConfigStore{
		db:     db,
		cipher: cipher,
	}
}

// Save upserts the configuration for a provider, encrypting the secret.
func (s *AppConfigStore) Save(ctx context.Context, cfg *domain.AppConfig) error {
	secretBlob, err := s.cipher.EncryptString(cfg.ClientSecret)
	if err != nil {
		return fmt.Errorf("encrypt client secret: %w", err)
	}

	now := time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	query := `
		INSERT INTO oauth_app_configs (
			provider, app_name, client_id, secret_blob, redirect_uri,
			admin_email, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (provider) DO UPDATE SET
			app_name = EXCLUDED.app_name,
			client_id = EXCLUDED.client_id,
			secret_blob = EXCLUDED.secret_blob,
			redirect_uri = EXCLUDED.redirect_uri,
			admin_email = EXCLUDED.admin_email,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		cfg.Provider,
		cfg.AppName,
		cfg.ClientID,
		secretBlob,
		cfg.RedirectURI,
		cfg.AdminEmail,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save app config: %w", err)
	}

	return nil
}

// Get retrieves the configuration with the secret decrypted.
func (s *AppConfigStore) Get(ctx context.Context, provider domain.ProviderID) (*domain.AppConfig, error) {
	query := `
		SELECT provider, app_name, client_id, secret_blob, redirect_uri,
		       admin_email, created_at, updated_at
		FROM oauth_app_configs
		WHERE provider = $1
	`

	var cfg domain.AppConfig
	var secretBlob []byte
	err := s.db.QueryRowContext(ctx, query, provider).Scan(
		&cfg.Provider,
		&cfg.AppName,
		&cfg.ClientID,
		&secretBlob,
		&cfg.RedirectURI,
		&cfg.AdminEmail,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not configured returns nil, not error
	}
	if err != nil {
		return nil, fmt.Errorf("get app config: %w", err)
	}

	secret, err := s.cipher.DecryptString(secretBlob)
	if err != nil {
		return nil, fmt.Errorf("decrypt client secret: %w", err)
	}
	cfg.ClientSecret = secret

	return &cfg, nil
}

// List retrieves masked summaries for all configured providers.
func (s *AppConfigStore) List(ctx context.Context) ([]*domain.AppConfigSummary, error) {
	query := `
		SELECT provider, app_name, client_id, secret_blob, redirect_uri,
		       admin_email, updated_at
		FROM oauth_app_configs
		ORDER BY provider
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list app configs: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.AppConfigSummary
	for rows.Next() {
		var summary domain.AppConfigSummary
		var secretBlob []byte
		var updatedAt time.Time

		if err := rows.Scan(
			&summary.Provider,
			&summary.AppName,
			&summary.ClientID,
			&secretBlob,
			&summary.RedirectURI,
			&summary.AdminEmail,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan app config: %w", err)
		}

		secret, err := s.cipher.DecryptString(secretBlob)
		if err != nil {
			return nil, fmt.Errorf("decrypt client secret: %w", err)
		}
		summary.MaskedSecret = domain.MaskSecret(secret)
		summary.Configured = summary.ClientID != "" && secret != ""
		summary.UpdatedAt = &updatedAt

		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate app configs: %w", err)
	}

	return summaries, nil
}

// Clear removes the configuration for a provider.
func (s *AppConfigStore) Clear(ctx context.Context, provider domain.ProviderID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM oauth_app_configs WHERE provider = $1`, provider)
	if err != nil {
		return fmt.Errorf("clear app config: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
