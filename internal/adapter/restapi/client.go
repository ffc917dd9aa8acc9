package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// A Client issues requests against the fixed upstream origin. JSON
// content-type is attached unless the body is a multipart payload. No
// retries and no caching: callers surface failures to the user.
type Client struct {
	baseURL string
	httpCl  *http.Client
}

type ClientOpt func(*Client)

// HTTPClientOpt swaps the underlying [http.Client].
func HTTPClientOpt(cl *http.Client) ClientOpt {
	return func(c *Client) {
		if cl != nil {
			c.httpCl = cl
		}
	}
}

func NewClient(baseURL string, opts ...ClientOpt) Client {
	c := Client{baseURL: baseURL, httpCl: http.DefaultClient}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// An APIError is a non-2xx upstream response carrying the
// server-supplied detail text when there is one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API Error: status %d", e.Status)
	}
	return fmt.Sprintf("API Error: %s", e.Detail)
}

func (c Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

func (c Client) postMultipart(
	ctx context.Context, path, contentType string, body io.Reader, out any,
) error {
	return c.do(ctx, http.MethodPost, path, contentType, body, out)
}

func (c Client) do(
	ctx context.Context, method, path, contentType string, body io.Reader, out any,
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.httpCl.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Detail: errDetail(res.Body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func errDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
