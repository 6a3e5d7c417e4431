package models

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRestaurantRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Address  string `json:"address" validate:"max=240"`
	Category string `json:"category" validate:"max=60"`
}
