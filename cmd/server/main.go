package main

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"coldreach/internal/api"
	"coldreach/internal/config"
	"coldreach/internal/db"
	redisdb "coldreach/internal/redis"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}

	// Redis backs token sessions and the research cache, both optional
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redisdb.NewClient(cfg)
		if redisdb.Ping(rdb) {
			log.Printf("[Main] ✓ Redis connected at %s", cfg.Redis.Addr)
		} else {
			log.Printf("[Main] ⚠️ Redis unreachable at %s, running without sessions and research cache", cfg.Redis.Addr)
			rdb = nil
		}
	} else {
		log.Printf("[Main] Redis not configured, running without sessions and research cache")
	}

	r := api.SetupRouter(cfg, rdb)
	addr := cfg.Addr()
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
