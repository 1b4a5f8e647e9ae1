package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"time"
)

// Client is a session-aware HTTP client for exercising the JSON API in tests.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client pointed at the test server URL. The cookie jar
// strips the Secure flag so session cookies survive plain-HTTP test traffic.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// unsafeCookieJar persists Secure cookies over plain HTTP. Only for tests.
type unsafeCookieJar struct {
	jar *cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	return &unsafeCookieJar{jar: jar}, nil
}

func (j *unsafeCookieJar) SetCookies(u *neturl.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	j.jar.SetCookies(u, cookies)
}

func (j *unsafeCookieJar) Cookies(u *neturl.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, urlPath, nil)
}

// Do sends a request with an optional JSON body and returns the response.
// The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, urlPath string, body any) (*http.Response, error) {
	var (
		err    error
		req    *http.Request
		reader io.Reader
	)
	if body != nil {
		var encoded []byte
		if encoded, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	if req, err = http.NewRequestWithContext(ctx, method, c.url+urlPath, reader); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// DoJSON sends a request and decodes the JSON response into dst when dst is
// non-nil. It returns the response status code.
func (c *Client) DoJSON(ctx context.Context, method, urlPath string, body, dst any) (int, error) {
	resp, err := c.Do(ctx, method, urlPath, body)
	if err != nil {
		return 0, fmt.Errorf("client do: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if dst != nil && resp.StatusCode != http.StatusNoContent {
		if err = json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// GetJSON fetches a URL, asserts HTTP 200 and decodes the body into dst.
func (c *Client) GetJSON(ctx context.Context, urlPath string, dst any) error {
	status, err := c.DoJSON(ctx, http.MethodGet, urlPath, nil, dst)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}
