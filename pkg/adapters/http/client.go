package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Client talks to a running 'serve' instance.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient creates a client for baseURL. token may be empty when the server
// runs without auth.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Status fetches GET /status.
func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	var st StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &st, http.StatusOK)
	return st, err
}

// Release sends POST /release. A rejected command is not an error; check Accepted.
func (c *Client) Release(ctx context.Context) (ReleaseResponse, error) {
	var res ReleaseResponse
	err := c.do(ctx, http.MethodPost, "/release", nil, &res, http.StatusOK, http.StatusConflict)
	return res, err
}

// SendTelemetry sends POST /telemetry.
func (c *Client) SendTelemetry(ctx context.Context, t domain.Telemetry) error {
	return c.do(ctx, http.MethodPost, "/telemetry", t, nil, http.StatusNoContent)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, accept ...int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !containsStatus(accept, resp.StatusCode) {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func containsStatus(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
