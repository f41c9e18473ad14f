// Package client contains the concrete implementations of the Pathways
// client interfaces: the raw administrative client, the mapping admin
// service and the end-user client.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/liquid-state/pathways-client/internal/constants"
	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// Admin is the raw administrative client. Every method resolves an
// endpoint template, executes one request and returns the wire record
// undecoded beyond JSON unmarshalling.
type Admin struct {
	httpClient *internalhttp.Client
}

// NewAdmin creates an administrative client scoped to one application.
// The base URL template's {{app_ubiquity_token}} placeholder is
// substituted exactly once, at construction.
func NewAdmin(appToken, jwt string, config *pathways.Config) (*Admin, error) {
	if appToken == "" {
		return nil, pathways.ErrMissingAppToken
	}

	if jwt == "" {
		return nil, pathways.ErrMissingJWT
	}

	if config == nil {
		config = &pathways.Config{}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultAdminBaseURLTemplate
	}

	baseURL = strings.ReplaceAll(baseURL, "{{app_ubiquity_token}}", appToken)

	opts := []internalhttp.Option{
		internalhttp.WithHTTPClient(config.HTTPClient),
		internalhttp.WithLogger(config.Logger),
		internalhttp.WithDebug(config.Debug),
		internalhttp.WithUserAgent(config.UserAgent),
	}

	return &Admin{httpClient: internalhttp.NewClient(baseURL, jwt, opts...)}, nil
}

// HTTP exposes the underlying executor for operations that follow
// absolute hyperlinks returned by the service.
func (a *Admin) HTTP() *internalhttp.Client {
	return a.httpClient
}

func decodeJSON[T any](resp *internalhttp.Response) (*T, error) {
	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}

	return &out, nil
}

func getOne[T any](ctx context.Context, a *Admin, endpoint paths.Endpoint, params map[string]string, query *pathways.Params, msg string) (*T, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Get(ctx, path, query.Encode(), msg)
	if err != nil {
		return nil, err
	}

	return decodeJSON[T](resp)
}

func getList[T any](ctx context.Context, a *Admin, endpoint paths.Endpoint, params map[string]string, query *pathways.Params, msg string) (*pathways.ListResponse[T], error) {
	return getOne[pathways.ListResponse[T]](ctx, a, endpoint, params, query, msg)
}

func postOne[T any](ctx context.Context, a *Admin, endpoint paths.Endpoint, params map[string]string, form *internalhttp.Form, msg string) (*T, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Post(ctx, path, form, msg)
	if err != nil {
		return nil, err
	}

	return decodeJSON[T](resp)
}

func patchOne[T any](ctx context.Context, a *Admin, endpoint paths.Endpoint, params map[string]string, form *internalhttp.Form, msg string) (*T, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Patch(ctx, path, form, msg)
	if err != nil {
		return nil, err
	}

	return decodeJSON[T](resp)
}

func putOne[T any](ctx context.Context, a *Admin, endpoint paths.Endpoint, params map[string]string, form *internalhttp.Form, msg string) (*T, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Put(ctx, path, form, msg)
	if err != nil {
		return nil, err
	}

	return decodeJSON[T](resp)
}

// postText executes a POST whose success response is a plain-text body.
func (a *Admin) postText(ctx context.Context, endpoint paths.Endpoint, params map[string]string, form *internalhttp.Form, msg string) (string, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return "", err
	}

	resp, err := a.httpClient.Post(ctx, path, form, msg)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func (a *Admin) delete(ctx context.Context, endpoint paths.Endpoint, params map[string]string, msg string) (bool, error) {
	path, err := endpoint.Resolve(params)
	if err != nil {
		return false, err
	}

	return a.httpClient.Delete(ctx, path, msg)
}

func pageQuery(page int) *pathways.Params {
	query := pathways.NewParams()
	if page > 0 {
		query.SetInt("page", page)
	}

	return query
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}
