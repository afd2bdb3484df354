// Package stubserver is a local stand-in for the registration API, used for
// development and tests.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// RegistrationPath is the route the form posts to.
const RegistrationPath = "/registration"

// DefaultAddr is the listen address used by the stub-server command.
const DefaultAddr = "127.0.0.1:9000"

// Response is the JSON body of every answer.
type Response struct {
	Message string                `json:"message"`
	Errors  registration.ErrorMap `json:"errors,omitempty"`
}

// Server accepts registrations, rejecting usernames it has already seen.
type Server struct {
	mu     sync.Mutex
	taken  map[string]struct{}
	schema *registration.Schema
	router chi.Router
}

// New creates a server with the given usernames already taken.
func New(schema *registration.Schema, taken ...string) *Server {
	if schema == nil {
		schema = registration.DefaultSchema()
	}
	s := &Server{
		taken:  make(map[string]struct{}, len(taken)),
		schema: schema,
	}
	for _, name := range taken {
		s.taken[normalize(name)] = struct{}{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Post(RegistrationPath, s.register)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Taken reports whether name is registered.
func (s *Server) Taken(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.taken[normalize(name)]
	return ok
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: "malformed registration payload"})
		return
	}

	if errs := s.schema.ValidateValues(values); errs.Any() {
		writeJSON(w, http.StatusUnprocessableEntity, Response{Message: "invalid registration", Errors: errs})
		return
	}

	username, _ := values[string(registration.FieldUsername)].(string)
	key := normalize(username)

	s.mu.Lock()
	_, exists := s.taken[key]
	if !exists {
		s.taken[key] = struct{}{}
	}
	s.mu.Unlock()

	if exists {
		log.Info(log.CatStub, "username taken", "username", username)
		writeJSON(w, http.StatusConflict, Response{Message: fmt.Sprintf("username %s is taken", username)})
		return
	}
	log.Info(log.CatStub, "registered", "username", username)
	writeJSON(w, http.StatusCreated, Response{Message: fmt.Sprintf("welcome, %s", username)})
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug(log.CatStub, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
