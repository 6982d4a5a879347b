package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/azure-flow/AI-Guide/internal/cms"
	"github.com/azure-flow/AI-Guide/internal/platform/timeouts"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
	sqlitestore "github.com/azure-flow/AI-Guide/internal/services/web/storage/sqlite"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr         string
	CMSEndpoint      string
	CMSTimeout       time.Duration
	CacheDBPath      string
	RevalidateSecret string
	RevalidateTTL    time.Duration
	CacheExpiry      time.Duration
}

// Server hosts the public site HTTP server, the page cache, and its
// background refresh worker.
type Server struct {
	httpAddr    string
	httpServer  *http.Server
	cacheStore  webstorage.Store
	refreshStop context.CancelFunc
	refreshDone chan struct{}
}

// NewServer builds a configured web server. An empty cache path disables
// the page cache and every request renders live.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	source, err := cms.New(cms.Config{
		Endpoint: config.CMSEndpoint,
		Timeout:  config.CMSTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init cms client: %w", err)
	}

	var cacheStore webstorage.Store
	if strings.TrimSpace(config.CacheDBPath) != "" {
		store, err := sqlitestore.Open(config.CacheDBPath)
		if err != nil {
			return nil, fmt.Errorf("open page cache: %w", err)
		}
		cacheStore = store
	}

	h := newHandler(handlerOptions{
		source:           source,
		cacheStore:       cacheStore,
		revalidateSecret: config.RevalidateSecret,
		revalidateTTL:    config.RevalidateTTL,
		cacheExpiry:      config.CacheExpiry,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           h.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	refreshStop, refreshDone := startCacheRefreshWorker(h)

	return &Server{
		httpAddr:    httpAddr,
		httpServer:  httpServer,
		cacheStore:  cacheStore,
		refreshStop: refreshStop,
		refreshDone: refreshDone,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the refresh worker and releases the page cache.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.refreshStop != nil {
		s.refreshStop()
	}
	if s.refreshDone != nil {
		<-s.refreshDone
	}
	if s.cacheStore != nil {
		if err := s.cacheStore.Close(); err != nil {
			log.Printf("close page cache: %v", err)
		}
	}
}
