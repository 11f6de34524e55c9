package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	app "github.com/okian/lungrisk/internal/app"
	"github.com/okian/lungrisk/internal/domain/model"
)

// APIError is the error body returned by the service.
type APIError struct {
	Status  int                `json:"-"`
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return ErrRemote }

// HTTPClient talks to a running assessment service.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a client for baseURL with the given timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Assess posts in to /assessments and decodes the report.
func (c *HTTPClient) Assess(ctx context.Context, in model.UserInputs) (app.Report, error) {
	var report app.Report
	err := c.post(ctx, "/assessments", in, &report)
	return report, err
}

// AssessBatch posts inputs to /assessments/batch.
func (c *HTTPClient) AssessBatch(ctx context.Context, inputs []model.UserInputs) (app.BatchResult, error) {
	var res app.BatchResult
	err := c.post(ctx, "/assessments/batch", batchRequest{Items: inputs}, &res)
	return res, err
}

type batchRequest struct {
	Items []model.UserInputs `json:"items"`
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrRemote, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = "unexpected_status"
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrRemote, err)
	}
	return nil
}
