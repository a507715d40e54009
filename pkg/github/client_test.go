package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server while keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

type recordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	RawQuery      string
	Body          string
	Authorization string
}

// fakeGitHub replies with a fixed status and body and records what it saw
type fakeGitHub struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []recordedRequest
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Query:         r.URL.Query(),
		RawQuery:      r.URL.RawQuery,
		Body:          string(body),
		Authorization: r.Header.Get("Authorization"),
	})
	status, payload := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(payload))
}

func (f *fakeGitHub) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the server")
	return f.requests[len(f.requests)-1]
}

func (f *fakeGitHub) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, status int, body string) (*Client, *fakeGitHub) {
	t.Helper()
	fake := &fakeGitHub{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client, err := NewClient(ClientOptions{
		Host:      "github.com",
		AuthToken: "test-token",
		Transport: rewriteTransport{target: target},
	})
	require.NoError(t, err)
	return client, fake
}

func TestClient_send_AttachesTokenAndPath(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `{"id": 42}`)

	_, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, nil)
	require.NoError(t, err)

	got := fake.last(t)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/repos/acme/widgets/check-runs/42", got.Path)
	assert.Equal(t, "", got.RawQuery)
	assert.Equal(t, "token test-token", got.Authorization)
}

func TestClient_send_StatusMismatch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus bool
		wantHTTP   bool
	}{
		{name: "2xx other than documented", status: http.StatusAccepted, wantStatus: true},
		{name: "client error", status: http.StatusNotFound, wantHTTP: true},
		{name: "server error", status: http.StatusBadGateway, wantHTTP: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.status, `{"message": "nope"}`)

			_, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 1, nil)
			require.Error(t, err)

			var statusErr *StatusError
			assert.Equal(t, tt.wantStatus, errors.As(err, &statusErr))
			if tt.wantStatus {
				assert.Equal(t, http.StatusOK, statusErr.Want)
				assert.Equal(t, tt.status, statusErr.Got)
			}

			var httpErr *api.HTTPError
			assert.Equal(t, tt.wantHTTP, errors.As(err, &httpErr))
			if tt.wantHTTP {
				assert.Equal(t, tt.status, httpErr.StatusCode)
			}
		})
	}
}

func TestClient_FormatSelector(t *testing.T) {
	const payload = `{"id": 42, "name": "lint", "status": "completed"}`

	t.Run("raw", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, payload)
		res, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, &RequestOptions{Format: FormatRaw})
		require.NoError(t, err)
		assert.Equal(t, FormatRaw, res.Format)
		assert.JSONEq(t, payload, res.Raw)
		assert.Nil(t, res.JSON)
		assert.Zero(t, res.Value.ID)
	})

	t.Run("json", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, payload)
		res, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, &RequestOptions{Format: FormatJSON})
		require.NoError(t, err)
		obj, ok := res.JSON.(map[string]any)
		require.True(t, ok, "expected a JSON object, got %T", res.JSON)
		assert.Equal(t, "lint", obj["name"])
		assert.Equal(t, json.Number("42"), obj["id"])
		assert.Empty(t, res.Raw)
	})

	t.Run("typed", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, payload)
		res, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, nil)
		require.NoError(t, err)
		assert.Equal(t, FormatTyped, res.Format)
		assert.Equal(t, int64(42), res.Value.ID)
		assert.Equal(t, "lint", res.Value.Name)
	})

	t.Run("json rejects trailing data", func(t *testing.T) {
		for _, body := range []string{payload + ` {"id": 43}`, payload + ` garbage`} {
			client, _ := newTestClient(t, http.StatusOK, body)
			_, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, &RequestOptions{Format: FormatJSON})
			require.Error(t, err, body)
			assert.Contains(t, err.Error(), "failed to decode response")
		}
	})

	t.Run("json accepts trailing whitespace", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, payload+"\n")
		res, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, &RequestOptions{Format: FormatJSON})
		require.NoError(t, err)
		assert.NotNil(t, res.JSON)
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, `{"id": `)
		_, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 42, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}

func TestClient_ExtraParams(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `[]`)

	opts := &RequestOptions{Params: map[string]string{"since": "2024-01-01", "empty": ""}}
	_, err := client.Checks.ListRunAnnotations(context.Background(), Repo("acme", "widgets"), 7, ListOptions{PerPage: 50}, opts)
	require.NoError(t, err)

	got := fake.last(t)
	assert.Equal(t, "2024-01-01", got.Query.Get("since"))
	assert.Equal(t, "50", got.Query.Get("per_page"))
	_, hasEmpty := got.Query["empty"]
	assert.False(t, hasEmpty, "empty params must be omitted")
	_, hasPage := got.Query["page"]
	assert.False(t, hasPage, "unset page must be omitted")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatTyped},
		{input: "typed", expected: FormatTyped},
		{input: "JSON", expected: FormatJSON},
		{input: " raw ", expected: FormatRaw},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseRepo(t *testing.T) {
	repo, err := ParseRepo("acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "acme", repo.GetOwner())
	assert.Equal(t, "widgets", repo.GetName())

	for _, bad := range []string{"", "acme", "/widgets", "acme/", "a/b/c"} {
		_, err := ParseRepo(bad)
		assert.Error(t, err, "ParseRepo(%q)", bad)
	}
}

func TestBuildPathEscaping(t *testing.T) {
	assert.Equal(t, "repos/acme/widgets", buildPath("repos", "acme", "widgets"))
	assert.Equal(t, "user/packages/container/org%2Fimage", buildPath("user", "packages", "container", "org/image"))
	assert.Equal(t, "feature/x%20y", escapeRef("feature/x y"))
}
