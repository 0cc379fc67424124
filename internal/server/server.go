package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/vesaa/greeter/internal/config"
	"github.com/vesaa/greeter/internal/static"
	"golang.org/x/sync/errgroup"
)

// New builds the Gin engine with middleware and all routes.
// Middleware is attached before routes so it also runs for 404s.
func New(cfg *config.Config, src static.Source) (*gin.Engine, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Gin answers trailing-slash redirects before any middleware runs, so
	// they would go out without CORS headers; fall through to 404 instead.
	r.RedirectTrailingSlash = false
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}
	r.Use(SecurityMiddleware(), CORSMiddleware())

	RegisterRoutes(r)
	RegisterStaticFiles(r, src)
	return r, nil
}

// CORSMiddleware allows every origin on every response and answers
// preflight requests directly.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SecurityMiddleware adds the usual hardening headers. TLS is expected to be
// terminated in front of the process, so no redirect or HSTS is configured.
func SecurityMiddleware() gin.HandlerFunc {
	return secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})
}

// Run serves handler on cfg.Addr() until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownGrace().
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{Addr: cfg.Addr(), Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[server] listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
