package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-ao-staking/internal/auth"
	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// Ensure RemoteSigner implements interfaces.Signer
var _ interfaces.Signer = (*RemoteSigner)(nil)

const (
	tokenSubject  = "staking-dashboard"
	tokenTTL      = time.Minute
	maxItemSize   = 4 << 20
	addressSuffix = "/address"
	signSuffix    = "/sign"
)

type signRequest struct {
	Target string      `json:"target"`
	Data   string      `json:"data"`
	Tags   models.Tags `json:"tags"`
}

type addressReply struct {
	Address string `json:"address"`
}

// RemoteSigner delegates signing to a wallet relay. Requests carry a short lived HS256 bearer token.
type RemoteSigner struct {
	url        string
	secret     string
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.Mutex
	address string
}

// NewRemoteSigner creates a signer talking to the relay at url
func NewRemoteSigner(url, secret string, timeout time.Duration, logger *zap.Logger) *RemoteSigner {
	return &RemoteSigner{
		url:        strings.TrimRight(url, "/"),
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Address returns the wallet address of the relay, fetched once
func (s *RemoteSigner) Address(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.address != "" {
		return s.address, nil
	}

	resp, err := s.do(ctx, http.MethodGet, addressSuffix, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var reply addressReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxItemSize)).Decode(&reply); err != nil {
		return "", fmt.Errorf("%w: signer address reply: %v", models.ErrMalformedResponse, err)
	}
	if reply.Address == "" {
		return "", fmt.Errorf("%w: signer returned an empty address", models.ErrMalformedResponse)
	}

	s.address = reply.Address
	s.logger.Info("Signer address resolved", zap.String("address", reply.Address))
	return s.address, nil
}

// Sign returns the signed data item for req
func (s *RemoteSigner) Sign(ctx context.Context, req *models.Request) ([]byte, error) {
	body, err := json.Marshal(signRequest{
		Target: req.ProcessID,
		Data:   req.Data,
		Tags:   req.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, signSuffix, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	item, err := io.ReadAll(io.LimitReader(resp.Body, maxItemSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read signed item: %w", err)
	}
	if len(item) == 0 {
		return nil, fmt.Errorf("%w: signer returned an empty item", models.ErrMalformedResponse)
	}

	s.logger.Debug("Message signed",
		zap.String("process", req.ProcessID),
		zap.String("action", req.Tags.Action()),
		zap.Int("size", len(item)))

	return item, nil
}

func (s *RemoteSigner) do(ctx context.Context, method, suffix string, body []byte) (*http.Response, error) {
	token, _, err := auth.Generate(s.secret, tokenSubject, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue signer token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, s.url+suffix, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("signer request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: signer rejected credentials (%d)", models.ErrNoSigner, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("signer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return resp, nil
}
