// Package upstream talks to the finance API that owns the raw records.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"payvue/internal/core"
	"payvue/internal/log"
	"payvue/internal/session"
)

var (
	// ErrUnauthorized signals a rejected or expired session token.
	ErrUnauthorized = errors.New("upstream rejected the session token")
	// ErrUpstream wraps any other non-2xx upstream response.
	ErrUpstream = errors.New("upstream request failed")
)

// SessionSource yields the current API session.
type SessionSource interface {
	Load() (session.Session, error)
}

// Client fetches income, debt and payment collections from the upstream API.
type Client struct {
	baseURL   string
	http      *http.Client
	sessions  SessionSource
	validate  *validator.Validate
	logger    *log.Logger
	userAgent string
}

// NewClient creates an upstream client. The timeout bounds each request
// on top of whatever deadline the caller's context carries.
func NewClient(baseURL string, timeout time.Duration, sessions SessionSource, logger *log.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
		sessions:  sessions,
		validate:  validator.New(),
		logger:    logger.WithComponent(log.ComponentUpstream),
		userAgent: "payvue/1.0",
	}
}

// FetchIncomes retrieves all income records.
func (c *Client) FetchIncomes(ctx context.Context) ([]core.Income, error) {
	var dtos []incomeDTO
	if err := c.get(ctx, "/finances/income", &dtos); err != nil {
		return nil, err
	}

	incomes := make([]core.Income, 0, len(dtos))
	for _, dto := range dtos {
		if err := c.validate.Struct(dto); err != nil {
			return nil, fmt.Errorf("invalid income record %d: %w", dto.ID, err)
		}
		income, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, nil
}

// FetchDebts retrieves all debt records.
func (c *Client) FetchDebts(ctx context.Context) ([]core.Debt, error) {
	var dtos []debtDTO
	if err := c.get(ctx, "/finances/debt", &dtos); err != nil {
		return nil, err
	}

	debts := make([]core.Debt, 0, len(dtos))
	for _, dto := range dtos {
		if err := c.validate.Struct(dto); err != nil {
			return nil, fmt.Errorf("invalid debt record %d: %w", dto.ID, err)
		}
		debt, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, nil
}

// FetchPayments retrieves all payment records.
func (c *Client) FetchPayments(ctx context.Context) ([]core.Payment, error) {
	var dtos []paymentDTO
	if err := c.get(ctx, "/finances/payment", &dtos); err != nil {
		return nil, err
	}

	payments := make([]core.Payment, 0, len(dtos))
	for _, dto := range dtos {
		if err := c.validate.Struct(dto); err != nil {
			return nil, fmt.Errorf("invalid payment record %d: %w", dto.ID, err)
		}
		payment, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	sess, err := c.sessions.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Upstream request completed",
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned status %d: %s", ErrUpstream, path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
