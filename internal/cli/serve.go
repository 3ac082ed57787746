package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/cache"
	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	backend  string
	cacheDir string
	redisURL string
	mongoURL string
	mongoDB  string
	timeout  time.Duration
}

// serveCommand creates the serve command, exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline as an HTTP API",
		Long: `Serve the pipeline as an HTTP API.

Routes:
  GET  /healthz        liveness and version
  GET  /v1/presets     available presets
  POST /v1/vectorize   mask image in the body, artifact bytes back;
                       query parameters mirror the run command's flags

Environment variables provide defaults for the flags: LINETRACE_ADDR,
LINETRACE_CACHE, LINETRACE_CACHE_DIR, LINETRACE_REDIS_URL,
LINETRACE_MONGO_URL, and LINETRACE_MONGO_DB. Flags take precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", envOr("LINETRACE_ADDR", server.DefaultAddr), "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", envOr("LINETRACE_CACHE", "file"), "cache backend: file, redis, mongo, none")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", envOr("LINETRACE_CACHE_DIR", ""), "directory for the file backend (default: the CLI cache dir)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", envOr("LINETRACE_REDIS_URL", "redis://localhost:6379/0"), "connection URL for the redis backend")
	cmd.Flags().StringVar(&opts.mongoURL, "mongo-url", envOr("LINETRACE_MONGO_URL", "mongodb://localhost:27017"), "connection URL for the mongo backend")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", envOr("LINETRACE_MONGO_DB", "linetrace"), "database name for the mongo backend")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")

	return cmd
}

// runServe builds the cache backend and runs the server until ctx cancels.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, err := serveCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	srv, err := server.New(server.Config{
		Addr:    opts.addr,
		Cache:   cc,
		Logger:  c.Logger,
		Timeout: opts.timeout,
	})
	if err != nil {
		return err
	}

	printInfo("Serving on %s", displayAddr(opts.addr))
	printDetail("Cache backend: %s", opts.backend)
	if opts.backend == "none" {
		printWarning("Caching disabled; every request recomputes")
	}
	printNextStep("Vectorize", fmt.Sprintf(
		"curl --data-binary @mask.png 'http://%s/v1/vectorize?format=svg' > out.svg",
		displayAddr(opts.addr)))
	printNewline()

	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// serveCache builds the cache backend selected by the serve flags.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case "file":
		dir := opts.cacheDir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, opts.redisURL)
	case "mongo":
		return cache.NewMongoCache(ctx, opts.mongoURL, opts.mongoDB, "cache")
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (have: file, redis, mongo, none)", opts.backend)
	}
}

// displayAddr turns a listen address into something curl accepts, filling
// in localhost when only a port was given.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
