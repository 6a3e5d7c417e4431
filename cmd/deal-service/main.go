package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dagmal/deal-service/internal/api"
	"github.com/dagmal/deal-service/internal/cache"
	"github.com/dagmal/deal-service/internal/config"
	"github.com/dagmal/deal-service/internal/domain"
	"github.com/dagmal/deal-service/internal/jobs"
	"github.com/dagmal/deal-service/internal/repository"
	"github.com/dagmal/deal-service/internal/service"
	"github.com/dagmal/deal-service/pkg/db"
)

func main() {
	configPath := flag.String("config", "", "optional directory holding config.yaml")
	flag.Parse()

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
	domain.SetClock(domain.RealClock{Location: loc})

	conn, err := db.NewPostgresConnection(cfg.Postgres())
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(ctx, conn); err != nil {
		cancel()
		log.Fatalf("db schema: %v", err)
	}
	cancel()

	svc := service.NewDealService(
		conn,
		repository.NewDealRepo(conn),
		repository.NewClaimRepo(conn),
		repository.NewRestaurantRepo(conn),
		cache.NewPopularCache(cfg.Cache.PopularTTL),
		service.Options{
			Weights:      cfg.Weights(),
			PopularCount: cfg.Ranking.PopularCount,
			Location:     loc,
		},
	)

	scheduler, err := jobs.NewScheduler(cfg.Jobs.PopularRefresh, svc)
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(svc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting deal-service on %s (timezone %s)", cfg.Server.Addr, loc)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
