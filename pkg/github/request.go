package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// ErrMissingParam is returned before any request when an identifier is empty
var ErrMissingParam = errors.New("missing required parameter")

// StatusError reports a 2xx response whose code differs from the endpoint's
// documented success status. Non-2xx responses surface as *api.HTTPError.
type StatusError struct {
	Method string
	Path   string
	Want   int
	Got    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: expected status %d, got %d", e.Method, e.Path, e.Want, e.Got)
}

// RequestOptions applies to every endpoint method
type RequestOptions struct {
	Format Format
	// Params are extra query keys; empty values are dropped
	Params map[string]string
}

func (o *RequestOptions) format() Format {
	if o == nil {
		return FormatTyped
	}
	return o.Format
}

func (o *RequestOptions) apply(q url.Values) {
	if o == nil {
		return
	}
	for k, v := range o.Params {
		if v != "" {
			q.Set(k, v)
		}
	}
}

// ListOptions are the page/per_page parameters shared by list endpoints
type ListOptions struct {
	Page    int
	PerPage int
}

func (o ListOptions) apply(q url.Values) {
	setInt(q, "page", int64(o.Page))
	setInt(q, "per_page", int64(o.PerPage))
}

// endpoint is one fully described REST call
type endpoint struct {
	method string
	path   string
	query  url.Values
	body   any
	want   int
}

func (e endpoint) target() string {
	if len(e.query) == 0 {
		return e.path
	}
	return e.path + "?" + e.query.Encode()
}

// buildPath joins escaped segments into a path relative to the API root
func buildPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// escapeRef keeps slashes of branch names like feature/x as separators
func escapeRef(ref string) string {
	parts := strings.Split(ref, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int64) {
	if value > 0 {
		q.Set(key, strconv.FormatInt(value, 10))
	}
}

// requireParams takes name/value pairs and rejects empty values
func requireParams(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s", ErrMissingParam, pairs[i])
		}
	}
	return nil
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return nil
}

// send performs the call and returns the body only when the status matches
func (c *Client) send(ctx context.Context, e endpoint) ([]byte, int, error) {
	var body io.Reader
	if e.body != nil {
		b, err := json.Marshal(e.body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := e.target()
	resp, err := c.rest.RequestWithContext(ctx, e.method, target, body)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", e.method).Str("path", target).Msg("request failed")
		return nil, 0, err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", e.method).
		Str("path", target).
		Int("status", resp.StatusCode).
		Msg("request completed")

	if resp.StatusCode != e.want {
		return nil, resp.StatusCode, &StatusError{Method: e.method, Path: e.path, Want: e.want, Got: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// do sends e and decodes the body in the requested format
func do[T any](ctx context.Context, c *Client, e endpoint, opts *RequestOptions) (*Result[T], error) {
	if e.query == nil {
		e.query = url.Values{}
	}
	opts.apply(e.query)

	data, status, err := c.send(ctx, e)
	if err != nil {
		return nil, err
	}
	return decode[T](data, status, opts.format())
}

// sendNoContent is used by endpoints that only report success or failure.
// Params of opts are added to the query and its Format is ignored. Failures
// are logged and returned alongside false.
func (c *Client) sendNoContent(ctx context.Context, e endpoint, opts *RequestOptions) (bool, error) {
	if e.query == nil {
		e.query = url.Values{}
	}
	opts.apply(e.query)

	if _, _, err := c.send(ctx, e); err != nil {
		c.logger.Warn().
			Err(err).
			Str("method", e.method).
			Str("path", e.path).
			Int("want", e.want).
			Msg("request did not succeed")
		return false, err
	}
	return true, nil
}
