package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sethvargo/go-retry"

	"github.com/laiosys/risu/internal/config"
	"github.com/laiosys/risu/models"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryAttempts  = 2
)

type httpFeedClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPFeedClient constructs the REST implementation of [FeedClient] from
// the adapter configuration.
func NewHTTPFeedClient(cfg config.ClientAdapter) FeedClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpFeedClient{client: cli}
}

func (h *httpFeedClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpFeedClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpFeedClient) Pull(ctx context.Context, collection string, since int64, limit int) (models.PullResult, error) {
	path := "/sync/pull?" + url.Values{
		"collection": {collection},
		"since":      {strconv.FormatInt(since, 10)},
		"limit":      {strconv.Itoa(limit)},
	}.Encode()

	var result models.PullResult
	err := h.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Get(path)
	}, func(resp *resty.Response) error {
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			return fmt.Errorf("decode pull response: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.PullResult{}, fmt.Errorf("pull request: %w", err)
	}

	return result, nil
}

func (h *httpFeedClient) Push(ctx context.Context, note models.NotePush) (models.PushAck, error) {
	var ack models.PushAck
	err := h.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(note).
			Post("/sync/push")
	}, func(resp *resty.Response) error {
		if err := json.Unmarshal(resp.Body(), &ack); err != nil {
			return fmt.Errorf("decode push response: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.PushAck{}, fmt.Errorf("push request (id=%s): %w", note.ID, err)
	}

	return ack, nil
}

func (h *httpFeedClient) SaltProfile(ctx context.Context) (models.SaltProfile, error) {
	var profile models.SaltProfile
	err := h.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Get("/auth/me")
	}, func(resp *resty.Response) error {
		if err := json.Unmarshal(resp.Body(), &profile); err != nil {
			return fmt.Errorf("decode account profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SaltProfile{}, fmt.Errorf("salt profile request: %w", err)
	}

	return profile, nil
}

func (h *httpFeedClient) EnableE2E(ctx context.Context, salt, validator string) (string, error) {
	var recorded struct {
		Salt string `json:"encryption_salt"`
	}
	err := h.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{
				"salt":      salt,
				"validator": validator,
			}).
			Post("/auth/e2e/enable")
	}, func(resp *resty.Response) error {
		if err := json.Unmarshal(resp.Body(), &recorded); err != nil {
			return fmt.Errorf("decode enable response: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("enable e2e request: %w", err)
	}

	return recorded.Salt, nil
}

func (h *httpFeedClient) ResetRemote(ctx context.Context) error {
	err := h.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Post("/sync/reset")
	}, nil)
	if err != nil {
		return fmt.Errorf("reset remote request: %w", err)
	}

	return nil
}

// doWithRetry runs one request with exponential backoff on transient
// failures. Non-retryable outcomes (4xx, decode errors, expired token) stop
// the loop immediately.
func (h *httpFeedClient) doWithRetry(ctx context.Context, send func(ctx context.Context) (*resty.Response, error), decode func(resp *resty.Response) error) error {
	if err := h.checkTokenExpiry(); err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := send(ctx)
		if err != nil {
			// resty returns an error only for transport-level failures
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		if err = mapHTTPError(resp); err != nil {
			if resp.StatusCode() >= http.StatusInternalServerError {
				return retry.RetryableError(err)
			}
			return err
		}
		if decode != nil {
			return decode(resp)
		}
		return nil
	})
}

// checkTokenExpiry fails fast when the stored bearer token has already
// expired, saving a round trip that would end in 401 anyway. Tokens without
// an exp claim, or unparseable ones, are left for the server to judge.
func (h *httpFeedClient) checkTokenExpiry() error {
	token := h.Token()
	if token == "" {
		return nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil
	}
	if time.Now().After(expiry.Time) {
		return fmt.Errorf("%w: token expired at %s", ErrUnauthorized, expiry.Time.Format(time.RFC3339))
	}

	return nil
}

func (h *httpFeedClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
