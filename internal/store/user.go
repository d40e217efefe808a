package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflowhq/caseflow/internal/models"
)

// UserStore provides data access for users and session tokens.
type UserStore struct {
	Base
}

// NewUserStore creates a UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

// GetUserByToken resolves a session token to its user. Tokens are stored
// hashed; only the sha256 of the presented token ever reaches the database.
func (s *UserStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(hash[:])

	row := s.Pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.name, u.role, u.created_at
		FROM users u
		JOIN sessions s ON s.user_id = u.id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()`,
		tokenHash,
	)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrUserNotFound)
	}

	return u, nil
}

// GetUser returns a user by ID.
func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT id, email, name, role, created_at FROM users WHERE id = $1`,
		userID,
	)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapNoRows(err, models.ErrUserNotFound)
	}

	return u, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User

	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return &u, nil
}
