package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dagmal/deal-service/internal/models"
	"github.com/dagmal/deal-service/internal/service"
)

// Fixture is a YAML file of restaurants with their deals nested below them.
type Fixture struct {
	Restaurants []Restaurant `yaml:"restaurants"`
}

type Restaurant struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Category string `yaml:"category"`
	Deals    []Deal `yaml:"deals"`
}

type Deal struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Active        *bool    `yaml:"active"`
	Days          []string `yaml:"days"`
	Start         string   `yaml:"start"`
	End           string   `yaml:"end"`
	OriginalPrice *int64   `yaml:"original_price"`
	Discount      float64  `yaml:"discount"`
	DiscountMode  string   `yaml:"discount_mode"`
	TotalLimit    *int     `yaml:"total_limit"`
}

func (d Deal) request(restaurantID uuid.UUID) models.CreateDealRequest {
	return models.CreateDealRequest{
		RestaurantID:  restaurantID.String(),
		Title:         d.Title,
		Description:   d.Description,
		IsActive:      d.Active,
		AvailableDays: d.Days,
		StartTime:     d.Start,
		EndTime:       d.End,
		TotalLimit:    d.TotalLimit,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		DiscountMode:  d.DiscountMode,
	}
}

// Parse decodes a fixture and checks every deal the way the dashboard would,
// so a bad file fails before anything is written.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	for i, r := range f.Restaurants {
		if r.Name == "" {
			return nil, fmt.Errorf("restaurant #%d: name is required", i+1)
		}
		for _, d := range r.Deals {
			if _, err := service.BuildDeal(d.request(uuid.Nil)); err != nil {
				return nil, fmt.Errorf("%s / %q: %w", r.Name, d.Title, err)
			}
		}
	}
	return &f, nil
}

func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Store is the subset of the deal service used for seeding.
type Store interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	CreateRestaurant(ctx context.Context, req models.CreateRestaurantRequest) (models.Restaurant, error)
	CreateDeal(ctx context.Context, req models.CreateDealRequest) (models.DealView, error)
}

// Apply inserts every restaurant followed by its deals and returns the number
// of deals created. Restaurants that already exist by name are skipped with
// their deals, so a run that failed halfway can be repeated. A restaurant
// whose deals failed partway has to be removed before rerunning.
func Apply(ctx context.Context, store Store, f *Fixture) (int, error) {
	existing, err := store.ListRestaurants(ctx)
	if err != nil {
		return 0, fmt.Errorf("list restaurants: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[strings.ToLower(strings.TrimSpace(r.Name))] = true
	}

	created := 0
	for _, r := range f.Restaurants {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if seen[key] {
			log.Printf("skipping %s: already seeded", r.Name)
			continue
		}
		rest, err := store.CreateRestaurant(ctx, models.CreateRestaurantRequest{
			Name:     r.Name,
			Address:  r.Address,
			Category: r.Category,
		})
		if err != nil {
			return created, fmt.Errorf("create restaurant %q: %w", r.Name, err)
		}
		seen[key] = true
		for _, d := range r.Deals {
			if _, err := store.CreateDeal(ctx, d.request(rest.ID)); err != nil {
				return created, fmt.Errorf("create deal %q: %w", d.Title, err)
			}
			created++
		}
		log.Printf("seeded %s with %d deals", r.Name, len(r.Deals))
	}
	return created, nil
}
