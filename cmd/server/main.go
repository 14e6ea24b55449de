package main

import (
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"

	"haramaya.com/pharmatrack/internal/bootstrap"
	"haramaya.com/pharmatrack/internal/config"
	"haramaya.com/pharmatrack/internal/server"
	"haramaya.com/pharmatrack/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := bootstrap.SeedAdminUser(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	// Redis and meilisearch are optional; login throttling and index-backed
	// search degrade gracefully when they are absent.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	}

	var meili meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meili = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	srv := server.New(cfg, db, rdb, meili)

	log.Printf("PharmaTrack API listening on :%s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
