package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/api"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/basket"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/catalog"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/session"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/storage"
)

type Config struct {
	APIBaseURL     string
	RedisAddr      string // empty = file-backed state
	StateFile      string
	RequestTimeout time.Duration
}

func loadConfig() *Config {
	stateFile := os.Getenv("STATE_FILE")
	if stateFile == "" {
		path, err := storage.DefaultPath()
		if err != nil {
			log.Fatalf("resolve state file location: %v", err)
		}
		stateFile = path
	}
	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://talaabat.runasp.net/api"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		StateFile:      stateFile,
		RequestTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var state storage.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		state = storage.NewRedisStore(client)
	} else {
		state = storage.NewFileStore(cfg.StateFile)
	}

	sess := session.New(state)
	if err := sess.Restore(ctx); err != nil {
		log.Printf("restore session: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, sess)
	baskets := basket.NewStore(client, state)
	products := catalog.NewCache(client)

	// Re-fetch the basket recorded before the last shutdown, if any.
	baskets.Load(ctx)
	if b := baskets.Basket(); b != nil {
		totals := baskets.Totals()
		log.Printf("restored basket %s with %d items, total %.2f", b.ID, len(b.Items), totals.Total)
	}

	reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	page, err := products.Query(reqCtx, domain.DefaultShopParams(), false)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	brands, err := products.Brands(reqCtx)
	if err != nil {
		log.Printf("list brands: %v", err)
	}

	fmt.Printf("%d products (%d brands), page %d:\n", page.Count, len(brands), page.PageIndex)
	for _, p := range page.Data {
		fmt.Printf("  %-30s %8.2f  %s\n", p.Name, p.Price, p.Brand)
	}
}
