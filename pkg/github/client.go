package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/rs/zerolog"
)

// Requester issues a single REST request. *api.RESTClient satisfies it.
type Requester interface {
	RequestWithContext(ctx context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

// GraphQLQuerier runs a struct-shaped GraphQL query. *api.GraphQLClient satisfies it.
type GraphQLQuerier interface {
	QueryWithContext(ctx context.Context, name string, q interface{}, variables map[string]interface{}) error
}

// ClientOptions configures a Client. Zero values fall back to the gh
// environment (default host, stored token).
type ClientOptions struct {
	Host      string
	AuthToken string
	Timeout   time.Duration
	Headers   map[string]string
	Transport http.RoundTripper
	Logger    *zerolog.Logger
}

// Client wraps GitHub API clients
type Client struct {
	rest   Requester
	gql    GraphQLQuerier
	logger zerolog.Logger

	Checks   *ChecksService
	Packages *PackagesService
	Viewer   *ViewerService
}

// NewClient builds REST and GraphQL clients sharing the same options
func NewClient(opts ClientOptions) (*Client, error) {
	ghOpts := api.ClientOptions{
		Host:      opts.Host,
		AuthToken: opts.AuthToken,
		Timeout:   opts.Timeout,
		Headers:   opts.Headers,
		Transport: opts.Transport,
	}

	restClient, err := api.NewRESTClient(ghOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gqlClient, err := api.NewGraphQLClient(ghOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return NewClientWith(restClient, gqlClient, logger), nil
}

// NewClientWith wires the managers to caller supplied transports
func NewClientWith(rest Requester, gql GraphQLQuerier, logger zerolog.Logger) *Client {
	c := &Client{
		rest:   rest,
		gql:    gql,
		logger: logger,
	}
	c.Checks = &ChecksService{client: c}
	c.Packages = &PackagesService{client: c}
	c.Viewer = &ViewerService{client: c}
	return c
}
