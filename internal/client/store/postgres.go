package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bankpanel/internal/client"
	"bankpanel/pkg/platform/sentinel"
)

// PostgresStore persists client aggregates in PostgreSQL. Related address and
// account rows are loaded with explicit scoped queries per call; writes run
// inside a single transaction so an aggregate is never half-persisted.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ client.Store = (*PostgresStore)(nil)

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const uniqueViolation = "23505"

// isConflict reports whether err is a unique-index violation. The indexes are
// the backstop behind the pre-mutation uniqueness checks, which do not share
// a transaction with the write.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *PostgresStore) ListPage(ctx context.Context, page, pageSize int) ([]client.Client, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, personal_id, mobile_number, sex
		FROM clients
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients, err := scanClients(rows)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return []client.Client{}, nil
	}

	ids := make([]int64, len(clients))
	byID := make(map[int64]*client.Client, len(clients))
	for i := range clients {
		ids[i] = clients[i].ID
		byID[clients[i].ID] = &clients[i]
	}
	if err := s.loadAddresses(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := s.loadAccounts(ctx, ids, byID); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (client.Client, error) {
	var c client.Client
	err := s.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, personal_id, mobile_number, sex
		FROM clients
		WHERE id = $1
	`, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PersonalID, &c.MobileNumber, &c.Sex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, sentinel.ErrNotFound
		}
		return client.Client{}, fmt.Errorf("find client: %w", err)
	}

	byID := map[int64]*client.Client{c.ID: &c}
	if err := s.loadAddresses(ctx, []int64{c.ID}, byID); err != nil {
		return client.Client{}, err
	}
	if err := s.loadAccounts(ctx, []int64{c.ID}, byID); err != nil {
		return client.Client{}, err
	}
	return c, nil
}

func (s *PostgresStore) Create(ctx context.Context, c client.Client) (client.Client, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return client.Client{}, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO clients (first_name, last_name, email, personal_id, mobile_number, sex)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.FirstName, c.LastName, c.Email, c.PersonalID, c.MobileNumber, c.Sex).Scan(&c.ID)
	if err != nil {
		if isConflict(err) {
			return client.Client{}, sentinel.ErrConflict
		}
		return client.Client{}, fmt.Errorf("insert client: %w", err)
	}

	if err := insertOwned(ctx, tx, &c); err != nil {
		return client.Client{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return client.Client{}, fmt.Errorf("commit create: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Update(ctx context.Context, c client.Client) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE clients
		SET first_name = $2, last_name = $3, email = $4, personal_id = $5,
		    mobile_number = $6, sex = $7, updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.FirstName, c.LastName, c.Email, c.PersonalID, c.MobileNumber, c.Sex)
	if err != nil {
		if isConflict(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}

	// Owned rows are replaced wholesale; the submitted aggregate is the new
	// truth for address and accounts.
	if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE client_id = $1`, c.ID); err != nil {
		return fmt.Errorf("replace address: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE client_id = $1`, c.ID); err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	if err := insertOwned(ctx, tx, &c); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	// Address and account rows cascade with the client row.
	if _, err := s.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (s *PostgresStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.existsQuery(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`, email)
}

func (s *PostgresStore) PersonalIDExists(ctx context.Context, personalID string) (bool, error) {
	return s.existsQuery(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE personal_id = $1)`, personalID)
}

func (s *PostgresStore) EmailExistsForOther(ctx context.Context, id int64, email string) (bool, error) {
	return s.existsQuery(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id <> $2 AND email = $1)`, email, id)
}

func (s *PostgresStore) PersonalIDExistsForOther(ctx context.Context, id int64, personalID string) (bool, error) {
	return s.existsQuery(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id <> $2 AND personal_id = $1)`, personalID, id)
}

func (s *PostgresStore) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	return s.existsQuery(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber)
}

func (s *PostgresStore) existsQuery(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return exists, nil
}

func insertOwned(ctx context.Context, tx pgx.Tx, c *client.Client) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO addresses (client_id, country, city, street, zip_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.ID, c.Address.Country, c.Address.City, c.Address.Street, c.Address.ZipCode).Scan(&c.Address.ID)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	for i := range c.Accounts {
		err := tx.QueryRow(ctx, `
			INSERT INTO accounts (client_id, account_number, balance)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.ID, c.Accounts[i].AccountNumber, c.Accounts[i].Balance).Scan(&c.Accounts[i].ID)
		if err != nil {
			if isConflict(err) {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("insert account: %w", err)
		}
	}
	return nil
}

func scanClients(rows pgx.Rows) ([]client.Client, error) {
	defer rows.Close()
	var clients []client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PersonalID, &c.MobileNumber, &c.Sex); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (s *PostgresStore) loadAddresses(ctx context.Context, ids []int64, byID map[int64]*client.Client) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, country, city, street, zip_code
		FROM addresses
		WHERE client_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("load addresses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a client.Address
		var clientID int64
		if err := rows.Scan(&a.ID, &clientID, &a.Country, &a.City, &a.Street, &a.ZipCode); err != nil {
			return fmt.Errorf("scan address: %w", err)
		}
		if c, ok := byID[clientID]; ok {
			c.Address = a
		}
	}
	return rows.Err()
}

func (s *PostgresStore) loadAccounts(ctx context.Context, ids []int64, byID map[int64]*client.Client) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, account_number, balance
		FROM accounts
		WHERE client_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a client.Account
		var clientID int64
		if err := rows.Scan(&a.ID, &clientID, &a.AccountNumber, &a.Balance); err != nil {
			return fmt.Errorf("scan account: %w", err)
		}
		if c, ok := byID[clientID]; ok {
			c.Accounts = append(c.Accounts, a)
		}
	}
	return rows.Err()
}
