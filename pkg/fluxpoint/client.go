package fluxpoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/koios/fluxpoint/internal/config"
	"github.com/koios/fluxpoint/internal/dispatch"
	"github.com/koios/fluxpoint/internal/worker"
	"github.com/koios/fluxpoint/pkg/models"
	"go.uber.org/zap"
)

const (
	pathCustomImage  = "/gen/custom"
	pathWelcomeImage = "/gen/welcome"
)

var (
	// ErrTokenUnset is returned by calls made before a token was set
	ErrTokenUnset = errors.New("fluxpoint: token is not set")
	// ErrClosed is returned by queued calls after Close
	ErrClosed = errors.New("fluxpoint: client is closed")
)

// Client is the entry point to the Fluxpoint API. It is safe for concurrent use.
type Client struct {
	token   atomic.Pointer[string]
	handler *dispatch.RequestHandler
	pool    *worker.Pool
	logger  *zap.Logger

	closeOnce sync.Once
}

// NewClient creates a client. Without WithBaseURL it talks to the public API.
func NewClient(opts ...Option) (*Client, error) {
	s := settings{
		baseURL: config.DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, fmt.Errorf("failed to configure client: %w", err)
		}
	}

	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: s.timeout}
	}

	c := &Client{
		handler: dispatch.NewRequestHandler(httpClient, s.baseURL, s.logger.Named("dispatch")),
		pool:    worker.NewPool(s.workers, s.queueSize, s.logger.Named("worker")),
		logger:  s.logger,
	}
	if s.token != "" {
		c.token.Store(&s.token)
	}
	c.pool.Start()

	c.logger.Debug("Fluxpoint client initialized",
		zap.String("base_url", c.handler.BaseURL()),
		zap.Bool("token_set", s.token != ""))

	return c, nil
}

// NewClientFromEnv creates a client from FLUXPOINT_* environment variables
// and an optional .env file. Explicit options take precedence.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewClient(append(fromConfig(cfg), opts...)...)
}

// SetToken replaces the credential used by subsequent calls
func (c *Client) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token may not be empty: %w", models.ErrInvalidArgument)
	}
	c.token.Store(&token)
	return nil
}

// Token returns the current credential, or "" when unset
func (c *Client) Token() string {
	if t := c.token.Load(); t != nil {
		return *t
	}
	return ""
}

func (c *Client) currentToken() (string, error) {
	t := c.token.Load()
	if t == nil {
		return "", ErrTokenUnset
	}
	return *t, nil
}

// Close stops the executor. Pending queued calls complete with a cancelled
// context. Blocking calls keep working.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.pool.Stop()
		c.logger.Debug("Fluxpoint client closed")
	})
}

// GetCustomImage renders a composite image
func (c *Client) GetCustomImage(ctx context.Context, image *models.CustomImage) (models.APIResponse, error) {
	if image == nil {
		return nil, fmt.Errorf("custom image may not be nil: %w", models.ErrInvalidArgument)
	}
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	return c.handler.GetImage(ctx, token, pathCustomImage, image)
}

// GetWelcomeImage renders a welcome card
func (c *Client) GetWelcomeImage(ctx context.Context, image *models.WelcomeImage) (models.APIResponse, error) {
	if image == nil {
		return nil, fmt.Errorf("welcome image may not be nil: %w", models.ErrInvalidArgument)
	}
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	return c.handler.GetImage(ctx, token, pathWelcomeImage, image)
}

// GetMc runs any Minecraft request. The response is *models.McPlayer,
// *models.McSkin, *models.McServer or *models.FailedResponse.
func (c *Client) GetMc(ctx context.Context, req models.McRequest) (models.APIResponse, error) {
	var out models.StatusSetter
	switch r := req.(type) {
	case *models.Player:
		if r == nil {
			return nil, fmt.Errorf("player may not be nil: %w", models.ErrInvalidArgument)
		}
		out = &models.McPlayer{}
	case *models.PlayerSkin:
		if r == nil {
			return nil, fmt.Errorf("player skin may not be nil: %w", models.ErrInvalidArgument)
		}
		out = &models.McSkin{}
	case *models.Server:
		if r == nil {
			return nil, fmt.Errorf("server may not be nil: %w", models.ErrInvalidArgument)
		}
		out = &models.McServer{}
	case nil:
		return nil, fmt.Errorf("minecraft request may not be nil: %w", models.ErrInvalidArgument)
	default:
		return nil, fmt.Errorf("minecraft request %T: %w", req, models.ErrUnsupported)
	}
	return c.getMc(ctx, req, out)
}

// GetPlayer looks up a player's UUID
func (c *Client) GetPlayer(ctx context.Context, player *models.Player) (models.APIResponse, error) {
	if player == nil {
		return nil, fmt.Errorf("player may not be nil: %w", models.ErrInvalidArgument)
	}
	return c.getMc(ctx, player, &models.McPlayer{})
}

// GetSkin fetches skin render URLs for a player
func (c *Client) GetSkin(ctx context.Context, skin *models.PlayerSkin) (models.APIResponse, error) {
	if skin == nil {
		return nil, fmt.Errorf("player skin may not be nil: %w", models.ErrInvalidArgument)
	}
	return c.getMc(ctx, skin, &models.McSkin{})
}

// GetServer pings a Minecraft server
func (c *Client) GetServer(ctx context.Context, server *models.Server) (models.APIResponse, error) {
	if server == nil {
		return nil, fmt.Errorf("server may not be nil: %w", models.ErrInvalidArgument)
	}
	return c.getMc(ctx, server, &models.McServer{})
}

func (c *Client) getMc(ctx context.Context, req models.McRequest, out models.StatusSetter) (models.APIResponse, error) {
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	return c.handler.GetJSON(ctx, token, req.Path(), params, out)
}

// QueueCustomImage runs GetCustomImage on the background executor
func (c *Client) QueueCustomImage(ctx context.Context, image *models.CustomImage) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetCustomImage(ctx, image)
	})
}

// QueueWelcomeImage runs GetWelcomeImage on the background executor
func (c *Client) QueueWelcomeImage(ctx context.Context, image *models.WelcomeImage) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetWelcomeImage(ctx, image)
	})
}

// QueueMc runs GetMc on the background executor
func (c *Client) QueueMc(ctx context.Context, req models.McRequest) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetMc(ctx, req)
	})
}

// QueuePlayer runs GetPlayer on the background executor
func (c *Client) QueuePlayer(ctx context.Context, player *models.Player) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetPlayer(ctx, player)
	})
}

// QueueSkin runs GetSkin on the background executor
func (c *Client) QueueSkin(ctx context.Context, skin *models.PlayerSkin) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetSkin(ctx, skin)
	})
}

// QueueServer runs GetServer on the background executor
func (c *Client) QueueServer(ctx context.Context, server *models.Server) *Future {
	return c.queue(ctx, func(ctx context.Context) (models.APIResponse, error) {
		return c.GetServer(ctx, server)
	})
}

// queue schedules call on the pool. The request runs under the future's own
// context so an image stream stays readable after the worker moves on.
// It blocks while the pool's queue is full, until ctx is done.
func (c *Client) queue(ctx context.Context, call func(context.Context) (models.APIResponse, error)) *Future {
	f := newFuture(ctx)

	err := c.pool.Submit(f.ctx, func(jobCtx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("Queued call panicked", zap.Any("panic", r))
				f.complete(nil, fmt.Errorf("queued call panicked: %v", r))
			}
		}()
		if err := jobCtx.Err(); err != nil {
			f.complete(nil, c.scheduleError(err))
			return
		}
		stop := context.AfterFunc(jobCtx, f.cancel)
		resp, err := call(f.ctx)
		stop()
		f.complete(resp, err)
	})
	if err != nil {
		f.complete(nil, c.scheduleError(err))
	}
	return f
}

func (c *Client) scheduleError(err error) error {
	if errors.Is(err, worker.ErrPoolClosed) {
		return ErrClosed
	}
	if c.pool.Stopped() {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return fmt.Errorf("failed to schedule request: %w", err)
}
