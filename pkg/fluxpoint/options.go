package fluxpoint

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/koios/fluxpoint/internal/config"
	"github.com/koios/fluxpoint/pkg/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request made with the default HTTP client
const DefaultTimeout = 30 * time.Second

type settings struct {
	token      string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	workers    int
	queueSize  int
}

// Option configures a Client
type Option func(*settings) error

// WithToken sets the initial credential
func WithToken(token string) Option {
	return func(s *settings) error {
		if token == "" {
			return fmt.Errorf("token may not be empty: %w", models.ErrInvalidArgument)
		}
		s.token = token
		return nil
	}
}

// WithBaseURL overrides the API endpoint, mostly for tests
func WithBaseURL(baseURL string) Option {
	return func(s *settings) error {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base URL %q must be absolute: %w", baseURL, models.ErrInvalidArgument)
		}
		s.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient replaces the HTTP client. Its own timeout applies and
// WithTimeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) error {
		if client == nil {
			return fmt.Errorf("http client may not be nil: %w", models.ErrInvalidArgument)
		}
		s.httpClient = client
		return nil
	}
}

// WithTimeout sets the timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive: %w", models.ErrInvalidArgument)
		}
		s.timeout = timeout
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return fmt.Errorf("logger may not be nil: %w", models.ErrInvalidArgument)
		}
		s.logger = logger
		return nil
	}
}

// WithWorkers sizes the executor behind the Queue methods.
// queueSize 0 buffers twice the worker count.
func WithWorkers(workers, queueSize int) Option {
	return func(s *settings) error {
		if workers < 1 {
			return fmt.Errorf("workers may not be less than 1: %w", models.ErrInvalidArgument)
		}
		if queueSize < 0 {
			return fmt.Errorf("queue size may not be negative: %w", models.ErrInvalidArgument)
		}
		s.workers = workers
		s.queueSize = queueSize
		return nil
	}
}

// fromConfig turns environment configuration into options
func fromConfig(cfg *config.Config) []Option {
	opts := []Option{
		WithBaseURL(cfg.API.BaseURL),
		WithTimeout(cfg.API.TimeoutDuration()),
	}
	if cfg.API.Token != "" {
		opts = append(opts, WithToken(cfg.API.Token))
	}
	if cfg.Workers.Count > 0 {
		queue := cfg.Workers.QueueSize
		if queue < 0 {
			queue = 0
		}
		opts = append(opts, WithWorkers(cfg.Workers.Count, queue))
	}
	return opts
}
