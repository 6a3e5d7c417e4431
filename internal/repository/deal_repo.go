package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dagmal/deal-service/internal/domain"
)

type DealRepo struct {
	db *sql.DB
}

func NewDealRepo(db *sql.DB) *DealRepo {
	return &DealRepo{db: db}
}

// DealFilter narrows ListDeals. Zero values mean no restriction.
type DealFilter struct {
	RestaurantID *uuid.UUID
	MinDiscount  float64
	ActiveOnly   bool
}

const dealColumns = `
	d.id, d.restaurant_id, r.name, d.title, d.description, d.is_active,
	d.available_days, d.start_time, d.end_time, d.discount_percentage,
	d.claimed_count, d.total_limit, d.original_price, d.final_price, d.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	var (
		d          domain.Deal
		days       pq.StringArray
		totalLimit sql.NullInt64
		original   sql.NullInt64
		final      sql.NullInt64
	)
	err := row.Scan(
		&d.ID,
		&d.RestaurantID,
		&d.RestaurantName,
		&d.Title,
		&d.Description,
		&d.IsActive,
		&days,
		&d.StartTime,
		&d.EndTime,
		&d.DiscountPercentage,
		&d.ClaimedCount,
		&totalLimit,
		&original,
		&final,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.AvailableDays, err = domain.ParseDays(days)
	if err != nil {
		return nil, fmt.Errorf("deal %s: %w", d.ID, err)
	}
	if totalLimit.Valid {
		n := int(totalLimit.Int64)
		d.TotalLimit = &n
	}
	if original.Valid {
		d.OriginalPrice = &original.Int64
	}
	if final.Valid {
		d.FinalPrice = &final.Int64
	}
	return &d, nil
}

// ListDeals returns deals in creation order, so callers sorting with a stable
// sort get a deterministic result.
func (r *DealRepo) ListDeals(ctx context.Context, f DealFilter) ([]domain.Deal, error) {
	var (
		where []string
		args  []any
	)
	if f.RestaurantID != nil {
		args = append(args, *f.RestaurantID)
		where = append(where, fmt.Sprintf("d.restaurant_id = $%d", len(args)))
	}
	if f.MinDiscount > 0 {
		args = append(args, f.MinDiscount)
		where = append(where, fmt.Sprintf("d.discount_percentage >= $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "d.is_active")
	}

	query := `SELECT ` + dealColumns + `
		FROM deals d
		JOIN restaurants r ON r.id = d.restaurant_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY d.created_at, d.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *d)
	}
	return deals, rows.Err()
}

// GetDeal returns nil, nil when the deal does not exist.
func (r *DealRepo) GetDeal(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals d
		JOIN restaurants r ON r.id = d.restaurant_id
		WHERE d.id = $1`

	d, err := scanDeal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// GetAndLockDeal reads the deal row and locks it until tx ends.
func (r *DealRepo) GetAndLockDeal(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals d
		JOIN restaurants r ON r.id = d.restaurant_id
		WHERE d.id = $1
		FOR UPDATE OF d`

	d, err := scanDeal(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// IncrementClaimed bumps claimed_count inside tx.
func (r *DealRepo) IncrementClaimed(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	query := `UPDATE deals SET claimed_count = claimed_count + 1 WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, id)
	return err
}

// CreateDeal inserts d and fills in CreatedAt.
func (r *DealRepo) CreateDeal(ctx context.Context, d *domain.Deal) error {
	query := `
		INSERT INTO deals
		(id, restaurant_id, title, description, is_active, available_days,
		 start_time, end_time, discount_percentage, claimed_count, total_limit,
		 original_price, final_price, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW())
		RETURNING created_at
	`
	var totalLimit sql.NullInt64
	if d.TotalLimit != nil {
		totalLimit = sql.NullInt64{Int64: int64(*d.TotalLimit), Valid: true}
	}
	return r.db.QueryRowContext(ctx, query,
		d.ID,
		d.RestaurantID,
		d.Title,
		d.Description,
		d.IsActive,
		pq.Array(d.AvailableDays.Names()),
		d.StartTime,
		d.EndTime,
		d.DiscountPercentage,
		d.ClaimedCount,
		totalLimit,
		nullInt64(d.OriginalPrice),
		nullInt64(d.FinalPrice),
	).Scan(&d.CreatedAt)
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
