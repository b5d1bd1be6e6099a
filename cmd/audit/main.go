package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/audit"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/config"
	kafkax "github.com/ariefcatur/go-realtime-catalog.git/internal/kafka"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/logx"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/postgres"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/redisx"
	"github.com/joho/godotenv"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logx.New(cfg.ServiceName+"-audit", cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &audit.Service{
		Repo:        &audit.Repo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-audit",
	}

	// Consumer
	group := getenv("AUDIT_GROUP", "catalog-audit")
	workers := mustAtoi(os.Getenv("AUDIT_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, catalog.TopicCatalogEvents, workers)

	go func() {
		log.Printf("audit consumer started: group=%s topic=%s workers=%d", group, catalog.TopicCatalogEvents, workers)
		if err := cons.Start(ctx, svc.HandleCatalogEvent); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
