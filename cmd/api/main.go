package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tsm98/social-mern/internal/config"
	"github.com/tsm98/social-mern/internal/db"
	"github.com/tsm98/social-mern/internal/server"
	"github.com/tsm98/social-mern/internal/store/mongodb"
	"github.com/tsm98/social-mern/internal/store/postgres"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadEnv         func() error
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectMongo    func(config.Config) (*mongo.Database, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, server.Stores, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadEnv:         func() error { return godotenv.Load() },
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectMongo:    db.ConnectMongo,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	if err := deps.loadEnv(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	cfg := deps.loadConfig()

	stores, closeStores := openStores(cfg, deps)
	defer closeStores()

	rdb := deps.connectRedis(cfg)
	if rdb == nil {
		log.Printf("redis unavailable, events are delivered in process only")
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, stores, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

// openStores connects the configured backend. Any failure falls back to the
// in-memory stores so the API still starts.
func openStores(cfg config.Config, deps mainDeps) (server.Stores, func()) {
	noop := func() {}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return server.Stores{}, noop

	case config.DriverPostgres:
		pool, err := deps.connectPostgres(cfg)
		if err != nil {
			log.Printf("postgres connection failed, using memory store: %v", err)
			return server.Stores{}, noop
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Printf("postgres schema failed, using memory store: %v", err)
			pool.Close()
			return server.Stores{}, noop
		}
		return server.Stores{
			Users:    postgres.NewUserStore(pool),
			Posts:    postgres.NewPostStore(pool),
			Profiles: postgres.NewProfileStore(pool),
		}, pool.Close

	case config.DriverMongo:
		database, err := deps.connectMongo(cfg)
		if err != nil {
			log.Printf("mongo connection failed, using memory store: %v", err)
			return server.Stores{}, noop
		}
		disconnect := func() { _ = database.Client().Disconnect(context.Background()) }
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			log.Printf("mongo indexes failed, using memory store: %v", err)
			disconnect()
			return server.Stores{}, noop
		}
		return server.Stores{
			Users:    mongodb.NewUserStore(database),
			Posts:    mongodb.NewPostStore(database),
			Profiles: mongodb.NewProfileStore(database),
		}, disconnect

	default:
		log.Printf("unknown store driver %q, using memory store", cfg.StoreDriver)
		return server.Stores{}, noop
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, stores server.Stores, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, stores, rdb)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			srv.Close()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := shutdownFn(srv.App, shutdownCtx)
	srv.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	return err
}
