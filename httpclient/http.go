// Package httpclient implements the authenticated HTTP plumbing shared by
// the Forge API clients: bearer token injection, JSON and form encoding,
// and mapping of HTTP and network failures to typed errors.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petrbroz/forge-go/model"
)

// Negative status sentinels used in model.APIError when a request failed
// before any HTTP response arrived.
var (
	InvalidRequest  = -6 // used for invalid requests.
	Interrupt       = -5 // used for interrupting a long-running request.
	URLParseError   = -4 // used for invalid url.
	ConnectionError = -3 // used for network errors.
	Timeout         = -2 // used for timeout errors.
	Unknown         = -1 // used for unknown errors.
)

// TokenProvider supplies a valid bearer token for a set of scopes, hiding
// whether the token is static or fetched on demand.
type TokenProvider interface {
	GetToken(ctx context.Context, scopes []model.Scope) (model.AccessToken, error)
}

// HTTPClient issues requests against one Forge service base URL.
type HTTPClient interface {
	GetJSON(ctx context.Context, path string, scopes []model.Scope, query url.Values, responseData any) error
	GetData(ctx context.Context, path string, scopes []model.Scope, query url.Values, header http.Header) ([]byte, error)
	PostJSON(ctx context.Context, path string, scopes []model.Scope, header http.Header, requestBody, responseData any) error
	PostForm(ctx context.Context, path string, form url.Values, responseData any) error
	PutData(ctx context.Context, path string, scopes []model.Scope, contentType string, body io.Reader, responseData any) error
	Delete(ctx context.Context, path string, scopes []model.Scope, header http.Header) error
	Head(ctx context.Context, path string, scopes []model.Scope) (http.Header, error)
}

type Option struct {
	BaseURL string
	// TokenProvider may be nil for endpoints that take no Authorization
	// header, such as the token endpoint itself.
	TokenProvider TokenProvider
	Timeout       time.Duration
}

type httpClient struct {
	client   *http.Client
	url      string
	provider TokenProvider
}

func NewHTTPClient(option Option) HTTPClient {
	return &httpClient{
		client: &http.Client{
			Timeout: option.Timeout,
		},
		url:      strings.TrimSuffix(option.BaseURL, "/"),
		provider: option.TokenProvider,
	}
}

// resolve turns a path into a full URL. Absolute URLs pass through
// unchanged so that server-provided pagination links can be followed.
func (c *httpClient) resolve(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.url + path
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send performs one round trip and returns the response body. Success is
// any 2xx status; everything else becomes a *model.APIError carrying the
// status code and the server-supplied body.
func (c *httpClient) send(ctx context.Context, method, rawurl string, scopes []model.Scope, header http.Header, body io.Reader) ([]byte, http.Header, error) {
	if c.client == nil {
		return nil, nil, &model.APIError{Status: InvalidRequest, Message: "http client is not initialized"}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, nil, &model.APIError{
			Status:   InvalidRequest,
			Message:  err.Error(),
			Original: err,
		}
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.provider != nil && req.Header.Get("Authorization") == "" {
		token, err := c.provider.GetToken(ctx, scopes)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, handleHTTPError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("Failed to close response body: %v", err)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, &model.APIError{
			Message:  err.Error(),
			Original: err,
			Status:   resp.StatusCode,
		}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, resp.Header, &model.APIError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(bodyBytes)),
		}
	}
	return bodyBytes, resp.Header, nil
}

func (c *httpClient) GetJSON(ctx context.Context, path string, scopes []model.Scope, query url.Values, responseData any) error {
	bodyBytes, _, err := c.send(ctx, http.MethodGet, c.resolve(path, query), scopes, nil, http.NoBody)
	if err != nil {
		return err
	}
	return decode(bodyBytes, responseData)
}

func (c *httpClient) GetData(ctx context.Context, path string, scopes []model.Scope, query url.Values, header http.Header) ([]byte, error) {
	bodyBytes, _, err := c.send(ctx, http.MethodGet, c.resolve(path, query), scopes, header, http.NoBody)
	if err != nil {
		return nil, err
	}
	return bodyBytes, nil
}

func (c *httpClient) PostJSON(ctx context.Context, path string, scopes []model.Scope, header http.Header, requestBody, responseData any) error {
	var reqBody io.Reader = http.NoBody
	if requestBody != nil {
		jsonData, err := json.Marshal(requestBody)
		if err != nil {
			return &model.APIError{
				Status:   InvalidRequest,
				Message:  err.Error(),
				Original: err,
			}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	bodyBytes, _, err := c.send(ctx, http.MethodPost, c.resolve(path, nil), scopes, header, reqBody)
	if err != nil {
		return err
	}
	return decode(bodyBytes, responseData)
}

func (c *httpClient) PostForm(ctx context.Context, path string, form url.Values, responseData any) error {
	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	bodyBytes, _, err := c.send(ctx, http.MethodPost, c.resolve(path, nil), nil, header, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	return decode(bodyBytes, responseData)
}

func (c *httpClient) PutData(ctx context.Context, path string, scopes []model.Scope, contentType string, body io.Reader, responseData any) error {
	header := http.Header{}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	bodyBytes, _, err := c.send(ctx, http.MethodPut, c.resolve(path, nil), scopes, header, body)
	if err != nil {
		return err
	}
	return decode(bodyBytes, responseData)
}

func (c *httpClient) Delete(ctx context.Context, path string, scopes []model.Scope, header http.Header) error {
	_, _, err := c.send(ctx, http.MethodDelete, c.resolve(path, nil), scopes, header, http.NoBody)
	return err
}

func (c *httpClient) Head(ctx context.Context, path string, scopes []model.Scope) (http.Header, error) {
	_, respHeader, err := c.send(ctx, http.MethodHead, c.resolve(path, nil), scopes, nil, http.NoBody)
	if err != nil {
		return nil, err
	}
	return respHeader, nil
}

func decode(bodyBytes []byte, responseData any) error {
	if responseData == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, responseData); err != nil {
		return &model.APIError{
			Status:   Unknown,
			Message:  err.Error(),
			Original: err,
		}
	}
	return nil
}

func handleHTTPError(err error) error {
	var opErr *net.OpError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.Canceled):
		return &model.APIError{
			Message:  "request canceled",
			Original: err,
			Status:   Interrupt,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &model.APIError{
			Message:  "request timed out",
			Original: err,
			Status:   Timeout,
		}
	case errors.As(err, &opErr):
		return &model.APIError{
			Message:  "network error",
			Original: err,
			Status:   ConnectionError,
		}
	case errors.As(err, &urlErr):
		// url.Error wraps timeouts and cancellations too, so it is
		// checked after the context sentinels.
		if urlErr.Timeout() {
			return &model.APIError{
				Message:  "request timed out",
				Original: err,
				Status:   Timeout,
			}
		}
		return &model.APIError{
			Message:  "invalid url",
			Original: err,
			Status:   URLParseError,
		}
	case errors.Is(err, http.ErrServerClosed):
		return &model.APIError{
			Message:  "server closed",
			Original: err,
			Status:   ConnectionError,
		}
	default:
		return &model.APIError{
			Message:  err.Error(),
			Original: err,
			Status:   Unknown,
		}
	}
}
