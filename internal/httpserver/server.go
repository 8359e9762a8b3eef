package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-ao-staking/internal/models"
	"go-ao-staking/internal/store"
)

// maxBodyBytes bounds request bodies; every request body here is a small JSON object
const maxBodyBytes = 1 << 16

// AuthConfig configures bearer token handling.
// Claims are refused without a Secret. Tokens are only issued when IssuerSecret is set.
type AuthConfig struct {
	Secret       string
	IssuerSecret string
	TokenTTL     time.Duration
}

// Server represents the dashboard HTTP API
type Server struct {
	store  *store.Store
	auth   AuthConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a new dashboard HTTP server
func NewServer(store *store.Store, auth AuthConfig, logger *zap.Logger) *Server {
	if auth.TokenTTL == 0 {
		auth.TokenTTL = time.Hour
	}
	s := &Server{
		store:  store,
		auth:   auth,
		logger: logger,
	}
	// built up front so Stop never races Start and a Stop before Start sticks
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start listens on addr and serves until Stop is called.
// It returns nil at once if Stop already ran.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting dashboard HTTP server", zap.String("addr", listener.Addr().String()))
	err = s.server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping dashboard HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/protocol/metrics", s.handleProtocolMetrics).Methods(http.MethodGet)
	api.HandleFunc("/rewards/summary", s.handleRewardsSummary).Methods(http.MethodGet)
	api.HandleFunc("/rewards/users/{address}", s.handleUserRewards).Methods(http.MethodGet)
	api.Handle("/rewards/users/{address}/claim", s.requireAddressToken(http.HandlerFunc(s.handleClaim))).Methods(http.MethodPost)
	api.HandleFunc("/operations/{id}", s.handleOperation).Methods(http.MethodGet)
	if s.auth.IssuerSecret != "" && s.auth.Secret != "" {
		api.HandleFunc("/auth/token", s.handleIssueToken).Methods(http.MethodPost)
	}

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses a JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// writeResponse writes a JSON response
func (s *Server) writeResponse(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeResponse(w, statusCode, ErrorResponse{Success: false, Error: message})
}

// errorStatus maps a service error to an HTTP status
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrResultNotReady), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, models.ErrNoSigner):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
