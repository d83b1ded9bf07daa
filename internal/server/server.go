// Package server is a stand-in for the /movies backend, handy for local runs
// and tests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Makepad-fr/listbench/internal/logging"
)

// DefaultSizeMB is used when the size query parameter is missing or not a number.
const DefaultSizeMB = 10

type Server struct {
	gen *Generator
}

func New(gen *Generator) *Server {
	if gen == nil {
		gen = NewGenerator(time.Now().UnixNano())
	}
	return &Server{gen: gen}
}

// Router wires the HTTP routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/movies", s.handleMovies).Methods(http.MethodGet)
	r.Use(logRequests)
	return r
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	size := float64(DefaultSizeMB)
	if raw := r.URL.Query().Get("size"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			size = f
		}
	}

	movies := s.gen.Movies(size)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(movies); err != nil {
		logging.Error("encode movies", "error", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Info("request", "method", r.Method, "url", r.URL.String(), "took", time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logging.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
