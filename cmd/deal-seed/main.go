package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/dagmal/deal-service/internal/config"
	"github.com/dagmal/deal-service/internal/repository"
	"github.com/dagmal/deal-service/internal/seed"
	"github.com/dagmal/deal-service/internal/service"
	"github.com/dagmal/deal-service/pkg/db"
)

func main() {
	fixturePath := flag.String("fixture", "fixtures/deals.yaml", "YAML fixture of restaurants and deals")
	configPath := flag.String("config", "", "optional directory holding config.yaml")
	dryRun := flag.Bool("dry-run", false, "only parse and check the fixture")
	flag.Parse()

	fixture, err := seed.Load(*fixturePath)
	if err != nil {
		log.Fatalf("fixture: %v", err)
	}
	if *dryRun {
		log.Printf("fixture ok: %d restaurants", len(fixture.Restaurants))
		return
	}

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conn, err := db.NewPostgresConnection(cfg.Postgres())
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := db.EnsureSchema(ctx, conn); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	svc := service.NewDealService(
		conn,
		repository.NewDealRepo(conn),
		repository.NewClaimRepo(conn),
		repository.NewRestaurantRepo(conn),
		nil,
		service.Options{Weights: cfg.Weights(), Location: loc},
	)
	n, err := seed.Apply(ctx, svc, fixture)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d restaurants and %d deals", len(fixture.Restaurants), n)
}
