package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/carts"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/config"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-realtime-catalog.git/internal/kafka"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/logx"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/postgres"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/realtime"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logx.New(cfg.ServiceName, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer untuk event feed catalog
	prod := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicCatalogEvents, 1024)
	prod.Start(ctx)
	feed := &catalog.Feed{Producer: prod, Service: cfg.ServiceName}

	// Repos & services
	catalogRepo := &catalog.Repo{DB: db}
	cartsRepo := &carts.Repo{DB: db}
	cartSvc := carts.NewService(cartsRepo, catalogRepo)

	// Realtime hub + router
	hub := realtime.NewHub(catalogRepo, feed)
	router := httpx.NewRouter()
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, w, r)
	})

	ph := &httpx.ProductsHandler{
		Store:   catalogRepo,
		Feed:    feed,
		Redis:   rdb,
		BaseURL: cfg.PublicBaseURL,
	}
	ph.Register(router)
	ch := &httpx.CartsHandler{Service: cartSvc}
	ch.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}
