package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gmeet-jira-bot/internal/models"
)

// JiraUserRepo provides access to the jira_users table linking Telegram
// identities to Jira account ids
type JiraUserRepo struct {
	pool *pgxpool.Pool
}

// NewJiraUserRepo creates a new Jira user repository
func NewJiraUserRepo(pool *pgxpool.Pool) *JiraUserRepo {
	return &JiraUserRepo{pool: pool}
}

// Add inserts a linked user and returns its id
func (r *JiraUserRepo) Add(ctx context.Context, user models.JiraUser) (int64, error) {
	const sql = `
INSERT INTO jira_users (name, telegram_id, email, account_id)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	var id int64
	if err := r.pool.QueryRow(ctx, sql, user.Name, user.TelegramID, user.Email, user.AccountID).Scan(&id); err != nil {
		return 0, fmt.Errorf("add jira user: %w", err)
	}
	return id, nil
}

// List returns all linked users in insertion order
func (r *JiraUserRepo) List(ctx context.Context) ([]models.JiraUser, error) {
	const sql = `
SELECT id, COALESCE(name, ''), COALESCE(telegram_id, 0), COALESCE(email, ''), account_id
  FROM jira_users
 ORDER BY id;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list jira users: %w", err)
	}
	defer rows.Close()

	var users []models.JiraUser
	for rows.Next() {
		var u models.JiraUser
		if err := rows.Scan(&u.ID, &u.Name, &u.TelegramID, &u.Email, &u.AccountID); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindByTelegramID returns the linked user for a Telegram id, or nil
// when the identity is not linked
func (r *JiraUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*models.JiraUser, error) {
	const sql = `
SELECT id, COALESCE(name, ''), COALESCE(telegram_id, 0), COALESCE(email, ''), account_id
  FROM jira_users
 WHERE telegram_id = $1;
`
	var u models.JiraUser
	err := r.pool.QueryRow(ctx, sql, telegramID).Scan(&u.ID, &u.Name, &u.TelegramID, &u.Email, &u.AccountID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find jira user: %w", err)
	}
	return &u, nil
}
