package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domain "farm-gateway/internal/domain/user"
	apperrors "farm-gateway/pkg/errors"

	"go.uber.org/zap"
)

// IdentityClient is a narrow adapter over the external user store. One
// function per backing operation; no retries, no caching.
type IdentityClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewIdentityClient creates a new identity store client.
func NewIdentityClient(baseURL string, timeout time.Duration, log *zap.Logger) *IdentityClient {
	return &IdentityClient{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// userPayload is the wire shape of a user record in the identity store API.
type userPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GetByEmail retrieves the user record for an email address.
// A lookup miss returns (nil, nil), not an error.
func (c *IdentityClient) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/users?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build identity request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("identity store unreachable", zap.String("email", email), zap.Error(err))
		return nil, apperrors.NewUpstreamError("identity", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload userPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, apperrors.NewUpstreamError("identity", fmt.Errorf("malformed response: %w", err))
		}
		return &domain.User{Email: payload.Email, Name: payload.Name}, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		c.log.Warn("identity store returned unexpected status",
			zap.String("email", email),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewUpstreamError("identity", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// Create registers a new user record. The store enforces email uniqueness;
// a duplicate yields a ConflictError.
func (c *IdentityClient) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(userPayload{Email: u.Email, Name: u.Name})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode user", err)
	}

	endpoint := c.baseURL + "/users"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build identity request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("identity store unreachable", zap.String("email", u.Email), zap.Error(err))
		return nil, apperrors.NewUpstreamError("identity", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var payload userPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, apperrors.NewUpstreamError("identity", fmt.Errorf("malformed response: %w", err))
		}
		return &domain.User{Email: payload.Email, Name: payload.Name}, nil
	case http.StatusConflict:
		return nil, apperrors.NewConflictError("user", "")
	default:
		c.log.Warn("identity store returned unexpected status",
			zap.String("email", u.Email),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewUpstreamError("identity", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
