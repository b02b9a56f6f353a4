package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tsm98/social-mern/internal/config"
	"github.com/tsm98/social-mern/internal/server"
)

var errListen = errors.New("listen failed")

func testConfig() config.Config {
	return config.Config{ServerPort: ":0", JWTSecret: "secret", TokenTTL: time.Hour}
}

func TestRunHandlesSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)

	listenCalled := make(chan struct{})
	listen := func(_ *fiber.App, _ string) error {
		close(listenCalled)
		signals <- syscall.SIGINT
		return nil
	}

	if err := Run(context.Background(), testConfig(), server.Stores{}, nil, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	select {
	case <-listenCalled:
	default:
		t.Fatalf("expected listen to be called")
	}
}

func TestRunContextCancel(t *testing.T) {
	signals := make(chan os.Signal, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)
	listen := func(_ *fiber.App, _ string) error {
		<-block
		return nil
	}
	if err := Run(ctx, testConfig(), server.Stores{}, nil, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenError(t *testing.T) {
	signals := make(chan os.Signal, 1)

	err := Run(context.Background(), testConfig(), server.Stores{}, nil, signals, func(_ *fiber.App, _ string) error {
		return errListen
	})
	if !errors.Is(err, errListen) {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestRunDefaultListen(t *testing.T) {
	signals := make(chan os.Signal, 1)

	oldListen := defaultListen
	defaultListen = func(_ *fiber.App, _ string) error { return nil }
	defer func() { defaultListen = oldListen }()

	signals <- syscall.SIGINT
	if err := Run(context.Background(), testConfig(), server.Stores{}, nil, signals, nil); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunClosesRedis(t *testing.T) {
	signals := make(chan os.Signal, 1)

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	listen := func(_ *fiber.App, _ string) error {
		signals <- syscall.SIGINT
		return nil
	}

	if err := Run(context.Background(), testConfig(), server.Stores{}, client, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if err := client.Ping(context.Background()).Err(); !errors.Is(err, redis.ErrClosed) {
		t.Fatalf("expected closed client, got %v", err)
	}
}

func TestRunShutdownError(t *testing.T) {
	signals := make(chan os.Signal, 1)

	oldShutdown := shutdownFn
	shutdownFn = func(_ *fiber.App, _ context.Context) error { return errListen }
	defer func() { shutdownFn = oldShutdown }()

	signals <- syscall.SIGINT
	if err := Run(context.Background(), testConfig(), server.Stores{}, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err == nil {
		t.Fatalf("expected shutdown error")
	}
}

func failingDeps() mainDeps {
	return mainDeps{
		loadEnv:         func() error { return nil },
		loadConfig:      testConfig,
		connectPostgres: func(config.Config) (*pgxpool.Pool, error) { return nil, errListen },
		connectMongo:    func(config.Config) (*mongo.Database, error) { return nil, errListen },
		connectRedis:    func(config.Config) *redis.Client { return nil },
		notify:          func(chan<- os.Signal, ...os.Signal) {},
	}
}

func TestOpenStoresFallsBackToMemory(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverMongo, config.DriverMemory, "cassandra"} {
		cfg := testConfig()
		cfg.StoreDriver = driver
		stores, closeStores := openStores(cfg, failingDeps())
		if stores.Users != nil || stores.Posts != nil || stores.Profiles != nil {
			t.Fatalf("%s: expected memory fallback", driver)
		}
		closeStores()
	}
}

func TestRealMainHandlesErrors(t *testing.T) {
	calledNotify := false
	calledRun := false
	deps := failingDeps()
	deps.loadEnv = func() error { return os.ErrPermission }
	deps.loadConfig = func() config.Config {
		cfg := testConfig()
		cfg.StoreDriver = config.DriverPostgres
		return cfg
	}
	deps.notify = func(ch chan<- os.Signal, _ ...os.Signal) {
		calledNotify = true
		close(ch)
	}
	deps.run = func(context.Context, config.Config, server.Stores, *redis.Client, <-chan os.Signal, ListenFunc) error {
		calledRun = true
		return errListen
	}

	realMain(deps)
	if !calledNotify {
		t.Fatalf("expected notify to be called")
	}
	if !calledRun {
		t.Fatalf("expected run to be called")
	}
}

func TestDefaultDeps(t *testing.T) {
	deps := defaultDeps()
	if deps.loadEnv == nil || deps.loadConfig == nil || deps.connectPostgres == nil || deps.connectMongo == nil ||
		deps.connectRedis == nil || deps.notify == nil || deps.run == nil {
		t.Fatalf("expected default deps to be set")
	}
}

func TestMainUsesOverrides(t *testing.T) {
	oldProvider := mainDepsProvider
	oldRunner := mainRunner
	defer func() {
		mainDepsProvider = oldProvider
		mainRunner = oldRunner
	}()

	called := false
	mainDepsProvider = func() mainDeps { return mainDeps{} }
	mainRunner = func(mainDeps) { called = true }

	main()
	if !called {
		t.Fatalf("expected main runner to be called")
	}
}
