package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/models"
)

type ClaimRepo struct {
	db *sql.DB
}

func NewClaimRepo(db *sql.DB) *ClaimRepo {
	return &ClaimRepo{db: db}
}

// CountUserClaimsSince counts the user's claims on a deal from since onwards.
// Run it inside the tx holding the deal lock so concurrent claims serialize.
func (r *ClaimRepo) CountUserClaimsSince(ctx context.Context, tx *sql.Tx, dealID uuid.UUID, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM deal_claims
		WHERE deal_id = $1 AND user_id = $2 AND claimed_at >= $3
	`
	var n int
	err := tx.QueryRowContext(ctx, query, dealID, userID, since).Scan(&n)
	return n, err
}

// CreateClaim inserts c inside tx.
func (r *ClaimRepo) CreateClaim(ctx context.Context, tx *sql.Tx, c *models.Claim) error {
	query := `
		INSERT INTO deal_claims (id, deal_id, user_id, quantity, savings, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, c.ID, c.DealID, c.UserID, c.Quantity, c.Savings, c.ClaimedAt)
	return err
}
