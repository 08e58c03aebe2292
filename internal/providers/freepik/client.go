package freepik

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"videobot/internal/domain"
	"videobot/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("freepik: api key is required")

// Options configures the Freepik image-to-video client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Freepik image-to-video API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type submitPayload struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
	Duration int    `json:"duration"`
}

type submitResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type statusResponse struct {
	Data struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Video  *struct {
			URL string `json:"url"`
		} `json:"video"`
		Error string `json:"error"`
	} `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.freepik.com/v1/ai/image-to-video"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Submit starts a generation job and returns the provider-issued job id.
func (c *Client) Submit(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return "", errors.New("freepik: image url is required")
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 5
	}
	payload := submitPayload{
		ImageURL: req.ImageURL,
		Prompt:   req.Prompt,
		Model:    req.Model,
		Duration: duration,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("freepik: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("freepik: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-freepik-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("freepik: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("freepik: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("freepik: submit: %s", apiErrorMessage(raw, resp.StatusCode))
	}

	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("freepik: decode response: %w", err)
	}
	if decoded.Data.ID == "" {
		return "", errors.New("freepik: response missing job id")
	}

	c.logger.Debug().Str("job_id", decoded.Data.ID).Str("model", req.Model).Msg("freepik: job submitted")
	return decoded.Data.ID, nil
}

// FetchStatus reports the current state of a previously submitted job.
func (c *Client) FetchStatus(ctx context.Context, jobID string) (*domain.GenerationStatus, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, errors.New("freepik: job id is required")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("freepik: build request: %w", err)
	}
	httpReq.Header.Set("x-freepik-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("freepik: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freepik: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("freepik: status: %s", apiErrorMessage(raw, resp.StatusCode))
	}

	var decoded statusResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("freepik: decode response: %w", err)
	}

	status := &domain.GenerationStatus{
		Status: domain.JobStatus(decoded.Data.Status),
		Error:  decoded.Data.Error,
	}
	if decoded.Data.Video != nil {
		status.VideoURL = decoded.Data.Video.URL
	}
	return status, nil
}

func apiErrorMessage(raw []byte, statusCode int) string {
	var detail errorResponse
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
		return detail.Message
	}
	return fmt.Sprintf("unexpected status %d", statusCode)
}

var _ domain.GenerationGateway = (*Client)(nil)
