package dispatch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/koios/fluxpoint/pkg/models"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Validator is implemented by request descriptors that can check themselves
type Validator interface {
	Validate() error
}

// RequestHandler is the only component that talks to the API. Every network
// or HTTP outcome is returned as an APIResponse; the error return is reserved
// for descriptors that fail validation or encoding.
type RequestHandler struct {
	client  Doer
	baseURL string
	logger  *zap.Logger
}

// NewRequestHandler creates a handler for the given base URL
func NewRequestHandler(client Doer, baseURL string, logger *zap.Logger) *RequestHandler {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestHandler{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the normalized base URL
func (h *RequestHandler) BaseURL() string {
	return h.baseURL
}

// GetImage POSTs body as JSON to path and returns a *models.GeneratedImage on
// success. The image stream is handed over unread.
func (h *RequestHandler) GetImage(ctx context.Context, token, path string, body Validator) (models.APIResponse, error) {
	if body == nil {
		return nil, fmt.Errorf("request body may not be nil: %w", models.ErrInvalidArgument)
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, failed := h.do(req, token)
	if failed != nil {
		return failed, nil
	}

	// Peek so an empty body is reported instead of handed over
	reader := bufio.NewReader(resp.Body)
	if _, err := reader.Peek(1); err != nil {
		resp.Body.Close()
		msg := "empty response body"
		if err != io.EOF {
			msg = fmt.Sprintf("failed to read response body: %v", err)
		}
		h.logger.Warn("Unusable image response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", msg))
		return &models.FailedResponse{Code: resp.StatusCode, Message: msg}, nil
	}

	return models.NewGeneratedImage(&streamBody{Reader: reader, Closer: resp.Body}), nil
}

// GetJSON GETs path with the ordered query params and decodes a successful
// body into out, whose code falls back to the HTTP status.
func (h *RequestHandler) GetJSON(ctx context.Context, token, path string, params []models.QueryParam, out models.StatusSetter) (models.APIResponse, error) {
	if out == nil {
		return nil, fmt.Errorf("response target may not be nil: %w", models.ErrInvalidArgument)
	}

	target := h.baseURL + path
	if len(params) > 0 {
		target += "?" + models.EncodeQuery(params)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, failed := h.do(req, token)
	if failed != nil {
		return failed, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.FailedResponse{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("failed to read response body: %v", err),
		}, nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &models.FailedResponse{Code: resp.StatusCode, Message: "empty response body"}, nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return &models.FailedResponse{Code: resp.StatusCode, Message: "null response body"}, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		h.logger.Warn("Malformed response body",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return &models.FailedResponse{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("failed to parse response body: %v", err),
		}, nil
	}

	out.SetStatusCode(resp.StatusCode)
	return out, nil
}

// do sends the request. A nil response comes with a non-nil FailedResponse.
func (h *RequestHandler) do(req *http.Request, token string) (*http.Response, *models.FailedResponse) {
	req.Header.Set("Authorization", token)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("Request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, models.NewFailedResponse(err.Error())
	}

	h.logger.Debug("Request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, failureFromBody(resp)
	}
	return resp, nil
}

// failureFromBody parses {"code","message"} or synthesizes one from the status
func failureFromBody(resp *http.Response) *models.FailedResponse {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var failed models.FailedResponse
	if err := json.Unmarshal(data, &failed); err == nil && (failed.Code != 0 || failed.Message != "") {
		if failed.Code == 0 {
			failed.Code = resp.StatusCode
		}
		if failed.Message == "" {
			failed.Message = http.StatusText(resp.StatusCode)
		}
		return &failed
	}

	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &models.FailedResponse{Code: resp.StatusCode, Message: msg}
}

// streamBody reads through the peek buffer and closes the underlying body
type streamBody struct {
	io.Reader
	io.Closer
}
