package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/iamFear/mapty/internal/config"
	"github.com/iamFear/mapty/internal/server"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func TestRunHandlesSignal(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	listenCalled := make(chan struct{}, 1)
	listen := func(_ *fiber.App, _ string) error {
		listenCalled <- struct{}{}
		return nil
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, nil, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	select {
	case <-listenCalled:
	case <-time.After(time.Second):
		t.Fatalf("expected listen to be called")
	}
}

func TestRunContextCancel(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, cfg, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenError(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	err := Run(context.Background(), cfg, nil, signals, func(_ *fiber.App, _ string) error {
		return errListen
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunDefaultListen(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	oldListen := defaultListen
	defaultListen = func(_ *fiber.App, _ string) error { return nil }
	defer func() { defaultListen = oldListen }()

	go func() {
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, nil, signals, nil); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenReturnsNil(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	if err := Run(context.Background(), cfg, nil, signals, func(_ *fiber.App, _ string) error {
		return nil
	}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

var errListen = context.Canceled

func TestRealMainHandlesErrors(t *testing.T) {
	calledNotify := false
	calledRun := false
	deps := mainDeps{
		loadConfig:   func() config.Config { return config.Config{ServerPort: ":0"} },
		connectRedis: func(config.Config) *redis.Client { return nil },
		notify: func(ch chan<- os.Signal, _ ...os.Signal) {
			calledNotify = true
			close(ch)
		},
		run: func(context.Context, config.Config, *redis.Client, <-chan os.Signal, ListenFunc) error {
			calledRun = true
			return errListen
		},
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
	if deps.loadConfig == nil || deps.connectRedis == nil || deps.notify == nil || deps.run == nil {
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

func TestRunClosesResources(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	listen := func(_ *fiber.App, _ string) error {
		signals <- syscall.SIGINT
		return nil
	}

	if err := Run(context.Background(), cfg, client, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if err := client.Ping(context.Background()).Err(); err == nil {
		t.Fatalf("expected redis client to be closed")
	}
}

func TestRunShutdownError(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	oldShutdown := shutdownFn
	shutdownFn = func(_ *fiber.App, _ context.Context) error { return errListen }
	defer func() { shutdownFn = oldShutdown }()

	go func() {
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err == nil {
		t.Fatalf("expected shutdown error")
	}
}

func TestSweepSessionsDropsIdle(t *testing.T) {
	srv := server.NewServer(config.Config{ServerPort: ":0", SessionTTLMin: 1}, nil)
	defer srv.Close()

	if _, err := srv.Sessions.Create(false); err != nil {
		t.Fatalf("create session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweepSessions(ctx, srv, 5*time.Millisecond)
		close(done)
	}()

	// a fresh session is younger than the TTL and survives the ticks
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	if srv.Sessions.Len() != 1 {
		t.Fatalf("expected session to survive sweep, got %d", srv.Sessions.Len())
	}
}
