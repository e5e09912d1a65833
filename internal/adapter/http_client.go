package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/models"
)

// HTTPClientConfig configures the outbound replay transport.
type HTTPClientConfig struct {
	// BaseURL is prepended to every action's endpoint.
	BaseURL string
	// Timeout bounds one replay request. The engine performs no timeout
	// handling of its own; this is the only place the host's timeout
	// policy is applied.
	Timeout time.Duration
}

type httpNetworkClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPNetworkClient builds the resty-backed NetworkClient used to replay
// queued actions against the server.
func NewHTTPNetworkClient(cfg HTTPClientConfig, log *logger.Logger) NetworkClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpNetworkClient{client: cli, logger: log}
}

func (h *httpNetworkClient) Do(ctx context.Context, action models.QueuedAction) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(action.Data))
	if action.Token != "" {
		req.SetHeader("Authorization", "Bearer "+action.Token)
	}

	endpoint := "/" + strings.TrimLeft(action.Endpoint, "/")

	var resp *resty.Response
	var err error
	switch action.Method {
	case models.MethodPost:
		resp, err = req.Post(endpoint)
	case models.MethodPut:
		resp, err = req.Put(endpoint)
	case models.MethodDelete:
		resp, err = req.Delete(endpoint)
	default:
		return fmt.Errorf("unsupported method %q for action %s", action.Method, action.ID)
	}
	if err != nil {
		h.logger.Err(err).
			Str("action_id", action.ID).
			Str("method", action.Method).
			Str("endpoint", endpoint).
			Msg("replay request transport failure")
		return fmt.Errorf("replay %s %s: %w", action.Method, endpoint, joinNetwork(err))
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Warn().
			Str("action_id", action.ID).
			Str("method", action.Method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode()).
			Msg("replay request rejected by server")
		return err
	}

	// Success bodies are discarded on purpose; the engine never reconciles
	// server-assigned ids.
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("http %d: %s: %w", resp.StatusCode(), body, ErrNetwork)
}

func joinNetwork(err error) error {
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
