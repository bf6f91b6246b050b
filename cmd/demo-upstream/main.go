// Command demo-upstream is a fake learning-platform API for local runs:
// it answers the sign-in and GraphQL endpoints with generated profile data
// so the dashboard can be exercised without real credentials.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"profilehub/internal/fixture"
	"profilehub/pkg/logger"
)

const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	var (
		addr  = flag.String("addr", ":9081", "Listen address")
		seed  = flag.Int64("seed", 1, "Random seed for generated payloads")
		login = flag.String("login", "demo", "Login of the generated user")
		empty = flag.Bool("empty", false, "Serve the empty-dataset sentinel instead of a profile")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Named("demo-upstream")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := fixture.New(fixture.WithSeed(*seed), fixture.WithLogin(*login))

	mux := http.NewServeMux()

	// Basic-auth sign-in: any credentials are accepted, empty ones rejected.
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": gen.Token()})
	})

	// GraphQL query: a bearer token yields the generated profile payload.
	mux.HandleFunc("/api/graphql-engine/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			_, _ = w.Write([]byte(`{"errors":[{"message":"Could not verify JWT: JWSError"}]}`))
			return
		}
		if *empty {
			_, _ = w.Write(gen.EmptyPayload())
			return
		}
		_, _ = w.Write(gen.UserPayload())
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "demo upstream listening", logger.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info(context.Background(), "demo upstream stopped")
}
