package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwellingconnect/society-sync/internal/models"
)

// PostgresStore persists profiles and role rows in Postgres. Accounts
// live in profiles; the role row in user_roles is optional and absent
// rows read as the user role.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool to the given database URL and
// verifies the connection before returning.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

const listAccountsQuery = `
SELECT p.user_id,
       COALESCE(p.member_id, ''),
       COALESCE(p.name, ''),
       COALESCE(p.email, ''),
       COALESCE(p.phone, ''),
       COALESCE(p.flat_no, ''),
       COALESCE(p.wing, ''),
       COALESCE(r.role, 'user')
  FROM profiles p
  LEFT JOIN user_roles r ON r.user_id = p.user_id
 ORDER BY p.name`

func (s *PostgresStore) ListAccounts(ctx context.Context) ([]models.UserAccount, error) {
	rows, err := s.pool.Query(ctx, listAccountsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.UserAccount
	for rows.Next() {
		var a models.UserAccount
		var role string
		if err := rows.Scan(&a.UserID, &a.MemberID, &a.Name, &a.Email, &a.Phone, &a.FlatNo, &a.Wing, &role); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Role = models.Role(role)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	return accounts, nil
}

func (s *PostgresStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.RoleUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("querying role for %s: %w", userID, err)
	}
	return models.Role(role), nil
}

func (s *PostgresStore) UpsertRole(ctx context.Context, userID string, role models.Role) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO user_roles (user_id, role, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE
   SET role = EXCLUDED.role, updated_at = now()`, userID, string(role))
	if err != nil {
		return fmt.Errorf("upserting role for %s: %w", userID, err)
	}
	return nil
}
