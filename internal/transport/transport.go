package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"go-ao-staking/internal/config"
	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// Ensure HTTPTransport implements interfaces.Transport
var _ interfaces.Transport = (*HTTPTransport)(nil)

const (
	ReadModeDryRun  = "dryrun"
	ReadModeMessage = "message"

	// dry-run replies not collected within this many dispatches are dropped
	parkedCapacity = 1024
	maxBodySize    = 4 << 20
	sdkName        = "go-ao-staking"
)

// dryRunMessage is the body accepted by the compute unit dry-run endpoint
type dryRunMessage struct {
	ID     string      `json:"Id"`
	Target string      `json:"Target"`
	Owner  string      `json:"Owner"`
	Anchor string      `json:"Anchor"`
	Data   string      `json:"Data"`
	Tags   models.Tags `json:"Tags"`
}

type dispatchReply struct {
	ID string `json:"id"`
}

// HTTPTransport talks to the messenger unit for writes and the compute unit for results.
// Reads are evaluated with dry-run in dryrun mode and sent as signed messages otherwise.
type HTTPTransport struct {
	muURL    string
	cuURL    string
	readMode string
	owner    string

	httpClient *http.Client
	signer     interfaces.Signer
	parked     *lru.Cache[string, *models.Response]
	logger     *zap.Logger
}

// NewHTTPTransport creates a transport. signer may be nil, writes then fail with models.ErrNoSigner.
func NewHTTPTransport(cfg *config.Config, httpClient *http.Client, signer interfaces.Signer, logger *zap.Logger) (*HTTPTransport, error) {
	parked, err := lru.New[string, *models.Response](parkedCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create dry-run result store: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GetRequestTimeout()}
	}

	return &HTTPTransport{
		muURL:      strings.TrimRight(cfg.Transport.MUURL, "/"),
		cuURL:      strings.TrimRight(cfg.Transport.CUURL, "/"),
		readMode:   cfg.Transport.ReadMode,
		owner:      cfg.Transport.DryRunOwner,
		httpClient: httpClient,
		signer:     signer,
		parked:     parked,
		logger:     logger,
	}, nil
}

// UseSignerOwner makes dry-run reads run as the signer's wallet.
// Without a signer the configured owner is kept. Call it before the first Dispatch.
func (t *HTTPTransport) UseSignerOwner(ctx context.Context) error {
	if t.signer == nil {
		return nil
	}
	address, err := t.signer.Address(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve signer address: %w", err)
	}
	t.owner = address
	t.logger.Info("Dry-run owner set to signer address", zap.String("owner", address))
	return nil
}

// Dispatch submits the request and returns the id its result is correlated by
func (t *HTTPTransport) Dispatch(ctx context.Context, req *models.Request) (string, error) {
	if req.ProcessID == "" {
		return "", fmt.Errorf("%w: process id is required", models.ErrInvalidRequest)
	}

	if !req.IsWrite && t.readMode != ReadModeMessage {
		return t.dryRun(ctx, req)
	}
	return t.send(ctx, req)
}

// Result returns the evaluated result for a dispatch, models.ErrResultNotReady while pending
func (t *HTTPTransport) Result(ctx context.Context, processID, dispatchID string) (*models.Response, error) {
	if resp, ok := t.parked.Peek(dispatchID); ok {
		t.parked.Remove(dispatchID)
		return resp, nil
	}

	endpoint := fmt.Sprintf("%s/result/%s?%s", t.cuURL, url.PathEscape(dispatchID), processQuery(processID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create result request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("result request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode == http.StatusNotFound {
		return nil, models.ErrResultNotReady
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, statusError("compute unit", httpResp)
	}

	return decodeResponse(httpResp.Body)
}

func (t *HTTPTransport) dryRun(ctx context.Context, req *models.Request) (string, error) {
	id := uuid.NewString()
	msg := dryRunMessage{
		ID:     id,
		Target: req.ProcessID,
		Owner:  t.owner,
		Anchor: models.DefaultDryRunRef,
		Data:   req.Data,
		Tags:   WithProtocolTags(req.Tags),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal dry-run message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/dry-run?%s", t.cuURL, processQuery(req.ProcessID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create dry-run request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("dry-run request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return "", statusError("compute unit", httpResp)
	}

	resp, err := decodeResponse(httpResp.Body)
	if err != nil {
		return "", err
	}

	t.parked.Add(id, resp)
	t.logger.Debug("Dry-run evaluated",
		zap.String("process", req.ProcessID),
		zap.String("action", req.Tags.Action()),
		zap.Int("messages", len(resp.Messages)),
		zap.Duration("duration", time.Since(start)))

	return id, nil
}

func (t *HTTPTransport) send(ctx context.Context, req *models.Request) (string, error) {
	if t.signer == nil {
		return "", models.ErrNoSigner
	}

	signed := *req
	signed.Tags = WithProtocolTags(req.Tags)
	item, err := t.signer.Sign(ctx, &signed)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.muURL, bytes.NewReader(item))
	if err != nil {
		return "", fmt.Errorf("failed to create dispatch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("dispatch request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", statusError("messenger unit", httpResp)
	}

	var reply dispatchReply
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, maxBodySize)).Decode(&reply); err != nil {
		return "", fmt.Errorf("%w: dispatch reply: %v", models.ErrMalformedResponse, err)
	}
	if reply.ID == "" {
		return "", fmt.Errorf("%w: dispatch reply has no id", models.ErrMalformedResponse)
	}

	t.logger.Info("Message dispatched",
		zap.String("process", req.ProcessID),
		zap.String("action", req.Tags.Action()),
		zap.String("id", reply.ID))

	return reply.ID, nil
}

// WithProtocolTags appends the protocol tags every message carries, unless already present
func WithProtocolTags(tags models.Tags) models.Tags {
	out := make(models.Tags, 0, len(tags)+4)
	out = append(out, tags...)

	for _, tag := range []models.Tag{
		{Name: models.TagDataProtocol, Value: models.DataProtocolAO},
		{Name: models.TagVariant, Value: models.VariantAO},
		{Name: models.TagType, Value: models.TypeMessage},
		{Name: models.TagSDK, Value: sdkName},
	} {
		if _, ok := out.Get(tag.Name); !ok {
			out = append(out, tag)
		}
	}
	return out
}

func processQuery(processID string) string {
	return url.Values{"process-id": []string{processID}}.Encode()
}

func decodeResponse(body io.Reader) (*models.Response, error) {
	var resp models.Response
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", models.ErrProcess, resp.Error)
	}
	return &resp, nil
}

// statusError describes an unexpected status. Callers treat it as transient.
func statusError(unit string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s returned status %d: %s", unit, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
