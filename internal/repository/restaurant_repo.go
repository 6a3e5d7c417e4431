package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/models"
)

type RestaurantRepo struct {
	db *sql.DB
}

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

func (r *RestaurantRepo) CreateRestaurant(ctx context.Context, rest *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, address, category, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, rest.ID, rest.Name, rest.Address, rest.Category).Scan(&rest.CreatedAt)
}

// GetRestaurant returns nil, nil when the restaurant does not exist.
func (r *RestaurantRepo) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	query := `SELECT id, name, address, category, created_at FROM restaurants WHERE id = $1`
	var rest models.Restaurant
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Category, &rest.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepo) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	query := `SELECT id, name, address, category, created_at FROM restaurants ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		var rest models.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Category, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}
