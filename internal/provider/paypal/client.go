// Package paypal submits payout batches to the PayPal Payouts REST API.
package paypal

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

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	ModeLive    = "live"
	ModeSandbox = "sandbox"

	LiveBaseURL    = "https://api-m.paypal.com"
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"

	tokenPath  = "/v1/oauth2/token"
	payoutPath = "/v1/payments/payouts"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

const instrumentationName = "github.com/sheikh-saqib/bulk-payouts/internal/provider/paypal"

// Config holds what the client needs to reach one PayPal environment.
type Config struct {
	ClientID     string
	ClientSecret string
	Mode         string       // live or sandbox
	BaseURL      string       // overrides the mode's endpoint when set
	HTTPClient   *http.Client // defaults to a client with a 30s timeout

	// TracerProvider receives the submit spans; the global provider when nil.
	TracerProvider trace.TracerProvider
}

// Client talks to PayPal. Each Submit authenticates and posts the batch once.
type Client struct {
	clientID     string
	clientSecret string
	mode         string
	baseURL      string
	http         *http.Client
	tracer       trace.Tracer
	logger       *zap.Logger
}

// NewClient validates cfg and returns a Client. Missing credentials or an
// unknown mode yield *errs.ConfigurationError.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, errs.Configf("client_id", "must not be empty")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, errs.Configf("client_secret", "must not be empty")
	}

	baseURL, err := resolveBaseURL(cfg.Mode, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		mode:         cfg.Mode,
		baseURL:      baseURL,
		http:         httpClient,
		tracer:       tp.Tracer(instrumentationName),
		logger:       logger.With(zap.String("mode", cfg.Mode)),
	}, nil
}

func resolveBaseURL(mode, override string) (string, error) {
	var base string
	switch mode {
	case ModeLive:
		base = LiveBaseURL
	case ModeSandbox:
		base = SandboxBaseURL
	default:
		return "", errs.Configf("mode", "unknown mode %q (expected live|sandbox)", mode)
	}

	if override != "" {
		u, err := url.Parse(override)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", errs.Configf("base_url", "invalid URL %q", override)
		}
		base = override
	}
	return strings.TrimRight(base, "/"), nil
}

// Submit sends batch to PayPal. Authentication, rejection and transport
// failures are reported through a failed BatchResult that still carries the
// raw request. The returned error is reserved for problems found before
// anything was sent.
func (c *Client) Submit(ctx context.Context, batch models.PayoutBatch) (models.BatchResult, error) {
	ctx, span := c.tracer.Start(ctx, "paypal.payouts.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("payout.sender_batch_id", batch.BatchID),
		attribute.Int("payout.items", len(batch.Items)),
		attribute.String("payout.mode", c.mode),
	)

	body, err := json.MarshalIndent(toPayoutRequest(batch), "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode batch")
		return models.BatchResult{}, fmt.Errorf("encode payout batch: %w", err)
	}

	result := models.BatchResult{
		BatchID:       batch.BatchID,
		SenderBatchID: batch.BatchID,
		RawRequest:    string(body),
	}

	token, status, raw, perr := c.accessToken(ctx)
	if perr != nil {
		result.StatusCode = status
		result.RawResponse = raw
		return c.fail(span, result, perr), nil
	}

	status, raw, perr = c.createPayout(ctx, token, body, &result)
	result.StatusCode = status
	result.RawResponse = raw
	if perr != nil {
		return c.fail(span, result, perr), nil
	}

	result.Succeeded = true
	span.SetAttributes(
		attribute.String("payout.batch_id", result.BatchID),
		attribute.String("payout.batch_status", result.BatchStatus),
	)
	span.SetStatus(codes.Ok, "")
	c.logger.Debug("payout batch accepted",
		zap.String("batch_id", result.BatchID),
		zap.String("batch_status", result.BatchStatus))

	return result, nil
}

func (c *Client) fail(span trace.Span, result models.BatchResult, perr *failure) models.BatchResult {
	result.Succeeded = false
	result.FailureKind = perr.kind
	result.ErrorMessage = perr.err.Error()

	span.RecordError(perr.err)
	span.SetAttributes(attribute.String("payout.failure_kind", string(perr.kind)))
	if result.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", result.StatusCode))
	}
	span.SetStatus(codes.Error, string(perr.kind))
	c.logger.Debug("payout batch failed",
		zap.String("failure_kind", string(perr.kind)),
		zap.Int("status", result.StatusCode),
		zap.Error(perr.err))

	return result
}

// failure pairs a provider error with its classification.
type failure struct {
	kind models.FailureKind
	err  *errs.ProviderError
}

func (c *Client) accessToken(ctx context.Context) (string, int, string, *failure) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, "", &failure{models.FailureTransport, &errs.ProviderError{Err: err}}
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return "", 0, "", &failure{models.FailureTransport, &errs.ProviderError{Err: err}}
	}
	if status < 200 || status > 299 {
		return "", status, string(body), &failure{models.FailureAuthentication, providerError(status, body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
		// the body holds a token on success, so it is not echoed back
		return "", status, "", &failure{models.FailureAuthentication, &errs.ProviderError{
			StatusCode: status,
			Message:    "token response carried no access_token",
		}}
	}
	return tok.AccessToken, status, "", nil
}

func (c *Client) createPayout(ctx context.Context, token string, body []byte, result *models.BatchResult) (int, string, *failure) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+payoutPath, bytes.NewReader(body))
	if err != nil {
		return 0, "", &failure{models.FailureTransport, &errs.ProviderError{Err: err}}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, respBody, err := c.do(req)
	if err != nil {
		return 0, "", &failure{models.FailureTransport, &errs.ProviderError{Err: err}}
	}
	if status < 200 || status > 299 {
		kind := models.FailureRejected
		if status == http.StatusUnauthorized {
			kind = models.FailureAuthentication
		}
		return status, string(respBody), &failure{kind, providerError(status, respBody)}
	}

	var resp payoutResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return status, string(respBody), &failure{models.FailureRejected, &errs.ProviderError{
			StatusCode: status,
			Message:    "unreadable payout response: " + err.Error(),
		}}
	}
	if resp.BatchHeader.PayoutBatchID != "" {
		result.BatchID = resp.BatchHeader.PayoutBatchID
	}
	result.BatchStatus = resp.BatchHeader.BatchStatus

	return status, string(respBody), nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	return resp.StatusCode, body, nil
}

// providerError extracts PayPal's message from an error body.
func providerError(status int, body []byte) *errs.ProviderError {
	perr := &errs.ProviderError{StatusCode: status}

	var e errorResponse
	if json.Unmarshal(body, &e) != nil {
		perr.Message = http.StatusText(status)
		return perr
	}

	switch {
	case e.Name != "" || e.Message != "":
		perr.Name, perr.Message = e.Name, e.Message
		if len(e.Details) > 0 {
			issues := make([]string, 0, len(e.Details))
			for _, d := range e.Details {
				issues = append(issues, fmt.Sprintf("%s: %s", d.Field, d.Issue))
			}
			perr.Message = fmt.Sprintf("%s (%s)", perr.Message, strings.Join(issues, "; "))
		}
	case e.Error != "" || e.ErrorDescription != "":
		perr.Name, perr.Message = e.Error, e.ErrorDescription
	default:
		perr.Message = http.StatusText(status)
	}
	return perr
}

var _ interfaces.PayoutClient = (*Client)(nil)
