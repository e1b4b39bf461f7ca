// Package lci is a client for the LCI OneControl gateway REST API.
//
// Things are discovered from /rest/things/ and wrapped in typed devices
// (Dimmer, Switch, Tank, Generator, HVAC). Every device field is an
// independent REST item, so each getter or setter is one HTTP round trip.
package lci

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Client talks to a single gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client used for every request. Timeouts and
// transport settings belong there.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the gateway at baseURL, e.g.
// "http://192.168.1.4:8080".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type linkState struct {
	Link  string `json:"link"`
	State string `json:"state"`
}

func (c *Client) itemURL(thing *Thing, field string) string {
	return c.baseURL + "/rest/items/" + ItemName(thing.UID, field)
}

// GetThings fetches every Thing known to the gateway.
func (c *Client) GetThings(ctx context.Context) ([]Thing, error) {
	url := c.baseURL + "/rest/things/"
	c.logger.Debug("fetching things", "url", url)

	body, err := c.get(ctx, url)
	if err != nil {
		c.logger.Error("fetching things", "error", err)
		return nil, err
	}

	var things []Thing
	if err := json.Unmarshal(body, &things); err != nil {
		return nil, &GetError{URL: url, Stage: StageDecode, Err: err}
	}

	c.logger.Debug("fetched things", "count", len(things))
	return things, nil
}

func (c *Client) getField(ctx context.Context, thing *Thing, field string) (string, error) {
	url := c.itemURL(thing, field)
	c.logger.Debug("reading field", "url", url)

	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	var ls linkState
	if err := json.Unmarshal(body, &ls); err != nil {
		return "", &GetError{URL: url, Stage: StageDecode, Err: err}
	}
	return ls.State, nil
}

func (c *Client) setField(ctx context.Context, thing *Thing, field, value string) error {
	url := c.itemURL(thing, field)
	c.logger.Debug("writing field", "url", url, "value", value)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(value))
	if err != nil {
		return &SetError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SetError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("gateway rejected write", "url", url, "status", resp.StatusCode)
		return &SetError{URL: url, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &GetError{URL: url, Stage: StageRequest, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GetError{URL: url, Stage: StageRequest, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GetError{URL: url, Stage: StageRead, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GetError{URL: url, Stage: StageStatus, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}
	return body, nil
}
