package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"riskspin-backend/internal/models"
)

const contentType = "text/plain;charset=utf-8"

// Client talks to the remote script endpoint. Every action is a POST of
// {action, payload} to the same URL; the script dispatches on the action name.
type Client struct {
	endpoint   string
	httpClient *http.Client

	inFlight atomic.Int64
	busyMu   sync.Mutex
	onBusy   func(busy bool)
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Redirects must stay enabled:
// the script host answers POSTs with a redirect to the result.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBusyHook is called with true when the first call starts and false when
// the last in-flight call finishes.
func WithBusyHook(fn func(busy bool)) Option {
	return func(c *Client) { c.onBusy = fn }
}

func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Busy() bool {
	return c.inFlight.Load() > 0
}

func (c *Client) setBusy(delta int64) {
	c.busyMu.Lock()
	defer c.busyMu.Unlock()
	n := c.inFlight.Add(delta)
	if c.onBusy == nil {
		return
	}
	if delta > 0 && n == 1 {
		c.onBusy(true)
	} else if delta < 0 && n == 0 {
		c.onBusy(false)
	}
}

// Invoke never returns an error: transport problems come back as a failure
// envelope carrying the error text.
func (c *Client) Invoke(ctx context.Context, action string, payload interface{}) Envelope {
	c.setBusy(1)
	defer c.setBusy(-1)

	body, err := json.Marshal(request{Action: action, Payload: payload})
	if err != nil {
		return failure(fmt.Sprintf("failed to encode %s request: %v", action, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Sprintf("failed to build %s request: %v", action, err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("gateway: %s transport error: %v", action, err)
		return failure(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("gateway: %s read error: %v", action, err)
		return failure(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("gateway: %s returned status %d", action, resp.StatusCode)
		return failure(fmt.Sprintf("remote status %d", resp.StatusCode))
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("gateway: %s returned non-JSON body: %v", action, err)
		return failure(fmt.Sprintf("invalid response: %v", err))
	}

	return env
}

func (c *Client) Authenticate(ctx context.Context, name, pin string) (*AuthResult, error) {
	env := c.Invoke(ctx, ActionAuth, authPayload{Name: name, Password: pin})
	if err := env.err(ActionAuth); err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, &RemoteError{Action: ActionAuth, Message: fmt.Sprintf("invalid user data: %v", err), Transport: true}
	}

	return &AuthResult{User: &user, IsNewUser: env.IsNewUser}, nil
}

func (c *Client) SubmitGameLog(ctx context.Context, user *models.User, entry *models.GameLogEntry) error {
	env := c.Invoke(ctx, ActionLogGame, logPayload{User: user, Log: entry})
	return env.err(ActionLogGame)
}

func (c *Client) FetchRanking(ctx context.Context) ([]models.RankingRow, error) {
	env := c.Invoke(ctx, ActionGetRanking, nil)
	if err := env.err(ActionGetRanking); err != nil {
		return nil, err
	}

	rows := []models.RankingRow{}
	if len(env.Data) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, &RemoteError{Action: ActionGetRanking, Message: fmt.Sprintf("invalid ranking data: %v", err), Transport: true}
	}
	return rows, nil
}
