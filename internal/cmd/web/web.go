// Package web wires configuration and lifecycle for the public site server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/azure-flow/AI-Guide/internal/platform/config"
	"github.com/azure-flow/AI-Guide/internal/platform/otel"
	"github.com/azure-flow/AI-Guide/internal/platform/timeouts"
	"github.com/azure-flow/AI-Guide/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr         string        `env:"AI_GUIDE_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	CMSEndpoint      string        `env:"AI_GUIDE_CMS_ENDPOINT" envDefault:"http://localhost:8081/graphql"`
	CMSTimeout       time.Duration `env:"AI_GUIDE_CMS_TIMEOUT" envDefault:"10s"`
	CacheDBPath      string        `env:"AI_GUIDE_CACHE_DB_PATH" envDefault:"web-cache.db"`
	RevalidateSecret string        `env:"AI_GUIDE_REVALIDATE_SECRET"`
	RevalidateTTL    time.Duration `env:"AI_GUIDE_REVALIDATE_TTL" envDefault:"5m"`
	CacheExpiry      time.Duration `env:"AI_GUIDE_CACHE_EXPIRY" envDefault:"24h"`
}

// ParseConfig loads env configuration and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CMSEndpoint, "cms-endpoint", cfg.CMSEndpoint, "CMS GraphQL endpoint URL")
	fs.StringVar(&cfg.CacheDBPath, "cache-db", cfg.CacheDBPath, "Page cache SQLite path, empty disables caching")
	fs.StringVar(&cfg.RevalidateSecret, "revalidate-secret", cfg.RevalidateSecret, "Shared secret for the revalidation webhook")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the web server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr:         cfg.HTTPAddr,
		CMSEndpoint:      cfg.CMSEndpoint,
		CMSTimeout:       cfg.CMSTimeout,
		CacheDBPath:      cfg.CacheDBPath,
		RevalidateSecret: cfg.RevalidateSecret,
		RevalidateTTL:    cfg.RevalidateTTL,
		CacheExpiry:      cfg.CacheExpiry,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
