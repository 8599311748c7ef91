package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"gmeet-jira-bot/internal/models"
)

// GuestRepo provides CRUD access to the google_meet_guests table.
// Each call is one implicit transaction.
type GuestRepo struct {
	pool *pgxpool.Pool
}

// NewGuestRepo creates a new guest repository
func NewGuestRepo(pool *pgxpool.Pool) *GuestRepo {
	return &GuestRepo{pool: pool}
}

// Add inserts a guest and returns its id
func (r *GuestRepo) Add(ctx context.Context, name, email string) (int64, error) {
	const sql = `
INSERT INTO google_meet_guests (name, email)
VALUES ($1, $2)
RETURNING id;
`
	var id int64
	if err := r.pool.QueryRow(ctx, sql, name, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("add guest: %w", err)
	}
	return id, nil
}

// Delete removes a guest by id
func (r *GuestRepo) Delete(ctx context.Context, id int64) error {
	const sql = `DELETE FROM google_meet_guests WHERE id = $1;`
	if _, err := r.pool.Exec(ctx, sql, id); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

// List returns all guests in insertion order
func (r *GuestRepo) List(ctx context.Context) ([]models.Guest, error) {
	const sql = `
SELECT id, name, email
  FROM google_meet_guests
 ORDER BY id;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
