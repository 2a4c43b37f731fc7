package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"toolcrib/auth"
	"toolcrib/config"
	"toolcrib/docstore"
	"toolcrib/document"
	"toolcrib/engine"
	"toolcrib/messaging"
	"toolcrib/store"
	"toolcrib/www"
)

var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "toolcrib.yaml", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("toolcrib", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database (history archive + snapshots)
	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	log.Printf("toolcrib: database open (%s)", cfg.Database.Driver)

	// Sync gateway
	var gateway docstore.Gateway
	switch cfg.Sync.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("toolcrib: redis not available: %v", err)
		}
		cancel()
		log.Printf("toolcrib: redis connected (%s)", cfg.Redis.Address)
		gateway = docstore.NewRedis(redisClient, cfg.Sync.Key, cfg.Sync.Channel)
	case "memory":
		log.Printf("toolcrib: using in-memory sync store, single node only")
		gateway = docstore.NewMemory()
	}
	defer gateway.Close()

	// Messaging client
	msgClient, err := messaging.NewClient(&cfg.Messaging, cfg.Workshop.ID)
	if err != nil {
		log.Fatalf("toolcrib: messaging config: %v", err)
	}
	if err := msgClient.Connect(); err != nil {
		log.Printf("toolcrib: messaging connect failed (%v)", err)
	} else if cfg.Messaging.Backend != "none" {
		log.Printf("toolcrib: messaging connected (%s)", cfg.Messaging.Backend)
	}
	defer msgClient.Close()

	// Engine
	eng := engine.New(engine.Config{
		AppConfig: cfg,
		Gateway:   gateway,
		DB:        db,
		MsgClient: msgClient,
		Directory: auth.NewDirectory(cfg.Auth.Operators),
	})
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := eng.Start(startCtx); err != nil {
		log.Fatalf("toolcrib: engine start: %v", err)
	}
	startCancel()
	defer eng.Stop()

	// Periodic document snapshots into the archive
	snapshotStop := make(chan struct{})
	go db.SnapshotEvery(cfg.Database.SnapshotInterval.Std(), cfg.Workshop.ID,
		func() *document.Document { return eng.Snapshot() },
		func(err error) { log.Printf("toolcrib: snapshot: %v", err) },
		snapshotStop)
	defer close(snapshotStop)

	// Web server
	handlers := www.NewHandlers(eng, cfg.Auth.SessionSecret, log.Printf)
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           www.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("toolcrib: web server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server: %v", err)
		}
	}()

	log.Printf("toolcrib: ready (workshop %s)", cfg.Workshop.ID)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Printf("toolcrib: shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	log.Printf("toolcrib: stopped")
}
