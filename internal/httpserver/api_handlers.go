package httpserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-ao-staking/internal/auth"
	"go-ao-staking/internal/poller"
)

// handleProtocolMetrics serves the polled protocol metrics
func (s *Server) handleProtocolMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.store.ProtocolMetrics()
	s.writeResponse(w, snapshotStatus(snap.Status, snap.HasData), newSnapshotResponse(snap))
}

// handleRewardsSummary serves the polled rewards summary
func (s *Server) handleRewardsSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.RewardsSummary()
	s.writeResponse(w, snapshotStatus(snap.Status, snap.HasData), newSnapshotResponse(snap))
}

// snapshotStatus is 502 only when a poller failed and has nothing to fall back to
func snapshotStatus(status poller.Status, hasData bool) int {
	if status == poller.StatusError && !hasData {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// handleUserRewards reads the rewards of one address
func (s *Server) handleUserRewards(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	rewards, err := s.store.UserRewards(r.Context(), address)
	if err != nil {
		s.logger.Warn("Failed to read user rewards", zap.String("address", address), zap.Error(err))
		s.writeErrorResponse(w, err.Error(), errorStatus(err))
		return
	}
	if rewards == nil {
		s.writeErrorResponse(w, "no rewards for address", http.StatusNotFound)
		return
	}

	s.writeResponse(w, http.StatusOK, rewards)
}

// handleClaim submits a claim and answers with the pending operation
func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	op := s.store.Claim(r.Context(), address)
	w.Header().Set("Location", "/api/operations/"+op.ID)
	s.writeResponse(w, http.StatusAccepted, op)
}

// handleOperation reports the state of a submitted operation
func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	op, ok := s.store.Operation(id)
	if !ok {
		s.writeErrorResponse(w, "unknown operation", http.StatusNotFound)
		return
	}
	s.writeResponse(w, http.StatusOK, op)
}

// handleIssueToken issues a bearer token for an address to a caller holding the issuer secret
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	issuer := r.Header.Get("X-Issuer-Secret")
	if subtle.ConstantTimeCompare([]byte(issuer), []byte(s.auth.IssuerSecret)) != 1 {
		s.writeErrorResponse(w, "forbidden", http.StatusForbidden)
		return
	}

	var req TokenRequest
	if err := s.parseRequest(r, &req); err != nil || req.Address == "" {
		s.writeErrorResponse(w, "Missing required field: address", http.StatusBadRequest)
		return
	}

	token, expiresAt, err := auth.Generate(s.auth.Secret, req.Address, s.auth.TokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		s.writeErrorResponse(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	s.writeResponse(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// requireAddressToken admits requests whose bearer token was issued to the {address} in the path
func (s *Server) requireAddressToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth.Secret == "" {
			s.writeErrorResponse(w, "writes are disabled", http.StatusServiceUnavailable)
			return
		}

		token, err := auth.BearerToken(r)
		if err != nil {
			s.writeErrorResponse(w, err.Error(), http.StatusUnauthorized)
			return
		}
		claims, err := auth.Verify(token, s.auth.Secret)
		if err != nil {
			s.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		address := mux.Vars(r)["address"]
		if claims.Subject != address {
			s.logger.Warn("Token subject does not match address",
				zap.String("subject", claims.Subject),
				zap.String("address", address))
			s.writeErrorResponse(w, "token not issued for this address", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
