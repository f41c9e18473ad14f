// Package http provides the HTTP executor shared by the end-user and
// administrative Pathways clients. It owns URL assembly, multipart form
// encoding, authentication headers and error mapping; it never retries,
// that is the injected transport's responsibility.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/liquid-state/pathways-client/internal/constants"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// Client executes requests against the Pathways API.
type Client struct {
	baseURL    string
	token      string
	httpClient pathways.HTTPDoer
	logger     pathways.Logger
	debug      bool
	userAgent  string
}

// Option configures the executor.
type Option func(*Client)

// WithHTTPClient sets the transport used for every request.
func WithHTTPClient(doer pathways.HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger pathways.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates an executor rooted at baseURL, authenticating every
// request with the given bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Form is an ordered multipart form body. The Pathways API accepts write
// payloads as multipart form data rather than JSON.
type Form struct {
	fields []formField
}

type formField struct {
	key   string
	value string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a string field.
func (f *Form) Set(key, value string) {
	f.fields = append(f.fields, formField{key: key, value: value})
}

// SetInt appends an integer field in decimal form.
func (f *Form) SetInt(key string, value int) {
	f.Set(key, fmt.Sprintf("%d", value))
}

// SetBool appends a boolean field as "true"/"false".
func (f *Form) SetBool(key string, value bool) {
	f.Set(key, fmt.Sprintf("%t", value))
}

// Len returns the number of fields set.
func (f *Form) Len() int {
	if f == nil {
		return 0
	}

	return len(f.fields)
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("encoding form field %q: %w", field.key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing form body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// Request describes one API call. Query, when set, must be a
// pre-encoded fragment including its leading "?"; it is appended to the
// path verbatim. AbsoluteURL, when set, bypasses base URL assembly
// entirely and is used for following pagination hyperlinks.
// ErrorMessage names the operation in the APIError raised for a
// non-success response; the HTTP status text is used when it is empty.
type Request struct {
	Method       string
	Path         string
	Query        string
	Form         *Form
	Headers      map[string]string
	AbsoluteURL  string
	ErrorMessage string
}

// Response is the outcome of a successful API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsJSON reports whether the response declared a JSON content type.
// Vendored media types such as application/vnd.api+json count.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.Headers.Get(constants.HeaderContentType)), "json")
}

// Decode unmarshals a JSON response body into out. Responses that did
// not declare a JSON content type are refused rather than guessed at.
func (r *Response) Decode(out interface{}) error {
	if !r.IsJSON() {
		return fmt.Errorf("%w, got %q", pathways.ErrUnexpectedContentType, r.Headers.Get(constants.HeaderContentType))
	}

	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// Text returns the response body as plain text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Do executes the request. Responses outside the 2xx range are returned
// as a *pathways.APIError carrying the status, headers and body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	url := req.AbsoluteURL
	if url == "" {
		url = c.baseURL + req.Path + req.Query
	}

	var (
		body        io.Reader
		contentType string
	)

	if req.Form.Len() > 0 {
		encoded, formContentType, err := req.Form.encode()
		if err != nil {
			return nil, err
		}

		body = encoded
		contentType = formContentType
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+c.token)
	httpReq.Header.Set(constants.HeaderAccept, "application/json")
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    url,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    url,
			"status": httpResp.StatusCode,
		})
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		message := req.ErrorMessage
		if message == "" {
			message = http.StatusText(httpResp.StatusCode)
		}

		return nil, &pathways.APIError{
			Message:    message,
			StatusCode: httpResp.StatusCode,
			Header:     httpResp.Header,
			Body:       respBody,
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get performs a GET request against a relative path. Query may be "".
func (c *Client) Get(ctx context.Context, path, query, errorMessage string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, ErrorMessage: errorMessage})
}

// GetURL performs a GET request against an absolute URL, as returned in
// pagination hyperlinks.
func (c *Client) GetURL(ctx context.Context, url, errorMessage string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, AbsoluteURL: url, ErrorMessage: errorMessage})
}

// Post performs a POST request with an optional form body.
func (c *Client) Post(ctx context.Context, path string, form *Form, errorMessage string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form, ErrorMessage: errorMessage})
}

// Patch performs a PATCH request with an optional form body.
func (c *Client) Patch(ctx context.Context, path string, form *Form, errorMessage string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Form: form, ErrorMessage: errorMessage})
}

// Put performs a PUT request with an optional form body.
func (c *Client) Put(ctx context.Context, path string, form *Form, errorMessage string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Form: form, ErrorMessage: errorMessage})
}

// Delete performs a DELETE request. It reports true when the service
// accepted the deletion; the service responds with no usable body, so
// success is the only information available.
func (c *Client) Delete(ctx context.Context, path, errorMessage string) (bool, error) {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, ErrorMessage: errorMessage})
	if err != nil {
		return false, err
	}

	return true, nil
}
