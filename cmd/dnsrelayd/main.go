package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haukened/dnsrelay/internal/dns/common/clock"
	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/config"
	"github.com/haukened/dnsrelay/internal/dns/gateways/transport"
	"github.com/haukened/dnsrelay/internal/dns/gateways/upstream"
	"github.com/haukened/dnsrelay/internal/dns/gateways/wire"
	"github.com/haukened/dnsrelay/internal/dns/repos/blocklist"
	"github.com/haukened/dnsrelay/internal/dns/repos/msgcache"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

const (
	version = "0.1.0-dev"
	appName = "dnsrelayd"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds the wired components of the relay.
type Application struct {
	config    *config.AppConfig
	logger    log.Logger
	transport transport.ServerTransport
	handler   relay.Handler
	cleanup   []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Info(map[string]any{
		"app":        appName,
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"cache_size": cfg.CacheSize,
		"servers":    cfg.Servers,
	}, "starting DNS relay")

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Fatal(map[string]any{"error": err.Error()}, "failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info(map[string]any{"signal": sig.String()}, "shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		logger.Fatal(map[string]any{"error": err.Error()}, "server failed")
	}

	logger.Info(nil, "DNS relay stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig, logger log.Logger) (*Application, error) {
	app := &Application{config: cfg, logger: logger}

	codec := wire.NewMessageCodec(logger)

	var cache relay.Cache
	if cfg.DisableCache {
		logger.Info(map[string]any{"disabled": true}, "response caching disabled")
	} else {
		var err error
		cache, err = msgcache.New(int(cfg.CacheSize), clock.System())
		if err != nil {
			return nil, fmt.Errorf("failed to create message cache: %w", err)
		}
		logger.Info(map[string]any{
			"type": "LRU",
			"size": cfg.CacheSize,
		}, "response cache configured")
	}

	var blocker relay.Blocklist = blocklist.Nop{}
	if cfg.BlocklistFile != "" {
		store, err := blocklist.Open(cfg.BlocklistDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open blocklist: %w", err)
		}
		app.cleanup = append(app.cleanup, store.Close)
		if _, err := store.LoadFile(cfg.BlocklistFile); err != nil {
			return nil, fmt.Errorf("failed to load blocklist: %w", err)
		}
		blocker = store
	}

	upstreamClient, err := upstream.New(upstream.Options{
		Servers: cfg.Servers,
		Timeout: time.Duration(cfg.UpstreamTimeout) * time.Second,
		Codec:   codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	relayService := relay.New(relay.Options{
		Blocklist: blocker,
		Cache:     cache,
		Logger:    logger,
		Upstream:  upstreamClient,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	udpTransport, err := transport.New(transport.TypeUDP, addr, codec, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	app.transport = udpTransport
	app.handler = relayService
	return app, nil
}

// Run starts the relay and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.handler); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	app.logger.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "udp",
	}, "DNS relay started")

	<-ctx.Done()

	app.logger.Info(nil, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := app.transport.Stop(); err != nil {
		app.logger.Warn(map[string]any{"error": err.Error()}, "error during transport shutdown")
	}

	done := make(chan struct{})
	go func() {
		for _, fn := range app.cleanup {
			if err := fn(); err != nil {
				app.logger.Warn(map[string]any{"error": err.Error()}, "cleanup error")
			}
		}
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info(nil, "graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		app.logger.Warn(map[string]any{"timeout": defaultShutdownTimeout.String()}, "shutdown timeout exceeded")
		return fmt.Errorf("shutdown timeout")
	}
}
