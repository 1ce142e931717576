package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

type credentialsStore struct {
	db *sql.DB
}

var _ driven.CredentialsStore = (*credentialsStore)(nil)

const credentialsColumns = `id, provider, subject, email, name, token, created_at, updated_at`

// Save stores credentials, replacing any other credentials for the same provider.
func (s *credentialsStore) Save(ctx context.Context, creds domain.Credentials) error {
	if creds.ID == "" || creds.Provider == "" {
		return domain.ErrInvalidInput
	}

	tokenJSON, err := json.Marshal(creds.Token)
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM credentials WHERE provider = ? AND id != ?", creds.Provider, creds.ID); err != nil {
		return fmt.Errorf("replacing credentials: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credentials (`+credentialsColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			provider = excluded.provider,
			subject = excluded.subject,
			email = excluded.email,
			name = excluded.name,
			token = excluded.token,
			updated_at = excluded.updated_at
	`, creds.ID, creds.Provider, creds.Identity.Subject, creds.Identity.Email, creds.Identity.Name,
		string(tokenJSON), creds.CreatedAt.UTC(), creds.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return tx.Commit()
}

// Get retrieves credentials by ID.
func (s *credentialsStore) Get(ctx context.Context, id string) (*domain.Credentials, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+credentialsColumns+` FROM credentials WHERE id = ?`, id)
	return scanCredentials(row)
}

// GetByProvider retrieves the credentials issued by a provider, or nil.
func (s *credentialsStore) GetByProvider(ctx context.Context, provider string) (*domain.Credentials, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+credentialsColumns+` FROM credentials WHERE provider = ?`, provider)

	creds, err := scanCredentials(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return creds, err
}

// Delete removes credentials by ID.
func (s *credentialsStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

func scanCredentials(row *sql.Row) (*domain.Credentials, error) {
	var creds domain.Credentials
	var tokenJSON string

	err := row.Scan(&creds.ID, &creds.Provider,
		&creds.Identity.Subject, &creds.Identity.Email, &creds.Identity.Name,
		&tokenJSON, &creds.CreatedAt, &creds.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}

	if err := json.Unmarshal([]byte(tokenJSON), &creds.Token); err != nil {
		return nil, fmt.Errorf("unmarshalling token: %w", err)
	}
	return &creds, nil
}
