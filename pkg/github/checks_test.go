package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkRunFixture = `{
	"id": 4,
	"head_sha": "ce587453ced02b1526dfb4cb910479d431683101",
	"node_id": "MDg6Q2hlY2tSdW40",
	"external_id": "42",
	"url": "https://api.github.com/repos/acme/widgets/check-runs/4",
	"html_url": "https://github.com/acme/widgets/runs/4",
	"details_url": "https://example.com",
	"status": "completed",
	"conclusion": "neutral",
	"started_at": "2018-05-04T01:14:52Z",
	"completed_at": "2018-05-04T01:14:52Z",
	"output": {
		"title": "Mighty Readme report",
		"summary": "There are 0 failures, 2 warnings, and 1 notice.",
		"text": "You may have some misspelled words on lines 2 and 4.",
		"annotations_count": 2,
		"annotations_url": "https://api.github.com/repos/acme/widgets/check-runs/4/annotations"
	},
	"name": "mighty_readme",
	"check_suite": {"id": 5},
	"app": {"id": 1, "slug": "octoapp", "node_id": "MDExOkludGVncmF0aW9uMQ==", "name": "Octocat App", "html_url": "https://github.com/apps/octoapp"},
	"pull_requests": [
		{
			"id": 1934,
			"number": 3956,
			"url": "https://api.github.com/repos/acme/widgets/pulls/3956",
			"head": {"ref": "say-hello", "sha": "3dca65fa3e8d4b3da3f3d056c59aee1c50f41390", "repo": {"id": 526, "url": "https://api.github.com/repos/acme/widgets", "name": "widgets"}},
			"base": {"ref": "master", "sha": "e7fdf7640066d71ad16a86fbcbb9c6a10a18af4f", "repo": {"id": 526, "url": "https://api.github.com/repos/acme/widgets", "name": "widgets"}}
		}
	]
}`

func TestChecksService_GetRun_ParsesAllFields(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, checkRunFixture)

	res, err := client.Checks.GetRun(context.Background(), Repo("acme", "widgets"), 4, nil)
	require.NoError(t, err)

	ts := time.Date(2018, 5, 4, 1, 14, 52, 0, time.UTC)
	repo := models.RepoRef{ID: 526, Name: "widgets", URL: "https://api.github.com/repos/acme/widgets"}
	want := models.CheckRun{
		ID:          4,
		HeadSHA:     "ce587453ced02b1526dfb4cb910479d431683101",
		NodeID:      "MDg6Q2hlY2tSdW40",
		ExternalID:  "42",
		URL:         "https://api.github.com/repos/acme/widgets/check-runs/4",
		HTMLURL:     "https://github.com/acme/widgets/runs/4",
		DetailsURL:  "https://example.com",
		Status:      models.CheckStatusCompleted,
		Conclusion:  models.ConclusionNeutral,
		StartedAt:   &ts,
		CompletedAt: &ts,
		Output: models.CheckRunOutput{
			Title:            "Mighty Readme report",
			Summary:          "There are 0 failures, 2 warnings, and 1 notice.",
			Text:             "You may have some misspelled words on lines 2 and 4.",
			AnnotationsCount: 2,
			AnnotationsURL:   "https://api.github.com/repos/acme/widgets/check-runs/4/annotations",
		},
		Name:       "mighty_readme",
		CheckSuite: &models.CheckSuiteRef{ID: 5},
		App: &models.App{
			ID:      1,
			Slug:    "octoapp",
			NodeID:  "MDExOkludGVncmF0aW9uMQ==",
			Name:    "Octocat App",
			HTMLURL: "https://github.com/apps/octoapp",
		},
		PullRequests: []models.PullRequestRef{{
			ID:     1934,
			Number: 3956,
			URL:    "https://api.github.com/repos/acme/widgets/pulls/3956",
			Head:   models.BranchRef{Ref: "say-hello", SHA: "3dca65fa3e8d4b3da3f3d056c59aee1c50f41390", Repo: repo},
			Base:   models.BranchRef{Ref: "master", SHA: "e7fdf7640066d71ad16a86fbcbb9c6a10a18af4f", Repo: repo},
		}},
	}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Fatalf("unexpected check run (-want +got):\n%s", diff)
	}
}

func TestChecksService_Endpoints(t *testing.T) {
	repo := Repo("acme", "widgets")
	ctx := context.Background()

	tests := []struct {
		name     string
		status   int
		body     string
		call     func(c *Client) error
		method   string
		path     string
		query    string
		wantBody string
	}{
		{
			name:   "create run",
			status: http.StatusCreated,
			body:   `{"id": 1}`,
			call: func(c *Client) error {
				_, err := c.Checks.CreateRun(ctx, repo, CreateCheckRunOptions{Name: "lint", HeadSHA: "abc", Status: models.CheckStatusInProgress}, nil)
				return err
			},
			method:   http.MethodPost,
			path:     "/repos/acme/widgets/check-runs",
			wantBody: `{"name":"lint","head_sha":"abc","status":"in_progress"}`,
		},
		{
			name:   "update run",
			status: http.StatusOK,
			body:   `{"id": 42}`,
			call: func(c *Client) error {
				_, err := c.Checks.UpdateRun(ctx, repo, 42, UpdateCheckRunOptions{Conclusion: models.ConclusionSuccess}, nil)
				return err
			},
			method:   http.MethodPatch,
			path:     "/repos/acme/widgets/check-runs/42",
			wantBody: `{"conclusion":"success"}`,
		},
		{
			name:   "update run output leaves unset fields out",
			status: http.StatusOK,
			body:   `{"id": 42}`,
			call: func(c *Client) error {
				output := &CheckRunOutputOptions{
					Title:   "lint",
					Summary: "1 warning",
					Annotations: []CheckAnnotationOptions{{
						Path: "main.go", StartLine: 3, EndLine: 3, AnnotationLevel: "warning", Message: "unused variable",
					}},
				}
				_, err := c.Checks.UpdateRun(ctx, repo, 42, UpdateCheckRunOptions{Output: output}, nil)
				return err
			},
			method:   http.MethodPatch,
			path:     "/repos/acme/widgets/check-runs/42",
			wantBody: `{"output":{"title":"lint","summary":"1 warning","annotations":[{"path":"main.go","start_line":3,"end_line":3,"annotation_level":"warning","message":"unused variable"}]}}`,
		},
		{
			name:   "list annotations",
			status: http.StatusOK,
			body:   `[]`,
			call: func(c *Client) error {
				_, err := c.Checks.ListRunAnnotations(ctx, repo, 42, ListOptions{Page: 2, PerPage: 10}, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/check-runs/42/annotations",
			query:  "page=2&per_page=10",
		},
		{
			name:   "list runs for suite drops app_id",
			status: http.StatusOK,
			body:   `{"total_count": 0, "check_runs": []}`,
			call: func(c *Client) error {
				_, err := c.Checks.ListRunsForSuite(ctx, repo, 5, &ListCheckRunsOptions{CheckName: "lint", Status: models.CheckStatusCompleted, AppID: 9}, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/check-suites/5/check-runs",
			query:  "check_name=lint&status=completed",
		},
		{
			name:   "list runs for ref",
			status: http.StatusOK,
			body:   `{"total_count": 0, "check_runs": []}`,
			call: func(c *Client) error {
				_, err := c.Checks.ListRunsForRef(ctx, repo, "feature/login", &ListCheckRunsOptions{Filter: "latest", AppID: 9, ListOptions: ListOptions{PerPage: 100}}, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/commits/feature/login/check-runs",
			query:  "app_id=9&filter=latest&per_page=100",
		},
		{
			name:   "create suite",
			status: http.StatusCreated,
			body:   `{"id": 5}`,
			call: func(c *Client) error {
				_, err := c.Checks.CreateSuite(ctx, repo, "abc", nil)
				return err
			},
			method:   http.MethodPost,
			path:     "/repos/acme/widgets/check-suites",
			wantBody: `{"head_sha":"abc"}`,
		},
		{
			name:   "suite preferences",
			status: http.StatusOK,
			body:   `{"preferences": {"auto_trigger_checks": [{"app_id": 4, "setting": false}]}}`,
			call: func(c *Client) error {
				_, err := c.Checks.SetSuitesPreferences(ctx, repo, []models.AutoTriggerCheck{{AppID: 4, Setting: false}}, nil)
				return err
			},
			method:   http.MethodPatch,
			path:     "/repos/acme/widgets/check-suites/preferences",
			wantBody: `{"auto_trigger_checks":[{"app_id":4,"setting":false}]}`,
		},
		{
			name:   "get suite",
			status: http.StatusOK,
			body:   `{"id": 5}`,
			call: func(c *Client) error {
				_, err := c.Checks.GetSuite(ctx, repo, 5, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/check-suites/5",
		},
		{
			name:   "list suites for ref",
			status: http.StatusOK,
			body:   `{"total_count": 0, "check_suites": []}`,
			call: func(c *Client) error {
				_, err := c.Checks.ListSuitesForRef(ctx, repo, "main", &ListCheckSuitesOptions{CheckName: "lint", ListOptions: ListOptions{Page: 3}}, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/commits/main/check-suites",
			query:  "check_name=lint&page=3",
		},
		{
			name:   "list suites for ref without options",
			status: http.StatusOK,
			body:   `{"total_count": 0, "check_suites": []}`,
			call: func(c *Client) error {
				_, err := c.Checks.ListSuitesForRef(ctx, repo, "main", nil, nil)
				return err
			},
			method: http.MethodGet,
			path:   "/repos/acme/widgets/commits/main/check-suites",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newTestClient(t, tt.status, tt.body)

			require.NoError(t, tt.call(client))

			got := fake.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.query, got.RawQuery)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, got.Body)
			}
		})
	}
}

func TestChecksService_Rerequest(t *testing.T) {
	tests := []struct {
		name   string
		status int
		suite  bool
		opts   *RequestOptions
		wantOK bool
		path   string
		query  string
	}{
		{name: "run created", status: http.StatusCreated, wantOK: true, path: "/repos/acme/widgets/check-runs/42/rerequest"},
		{name: "run ok is not created", status: http.StatusOK, wantOK: false, path: "/repos/acme/widgets/check-runs/42/rerequest"},
		{name: "run forbidden", status: http.StatusForbidden, wantOK: false, path: "/repos/acme/widgets/check-runs/42/rerequest"},
		{name: "suite created", status: http.StatusCreated, suite: true, wantOK: true, path: "/repos/acme/widgets/check-suites/42/rerequest"},
		{
			name:   "suite with extra params",
			status: http.StatusCreated,
			suite:  true,
			opts:   &RequestOptions{Format: FormatJSON, Params: map[string]string{"app_id": "9"}},
			wantOK: true,
			path:   "/repos/acme/widgets/check-suites/42/rerequest",
			query:  "app_id=9",
		},
		{name: "suite unprocessable", status: http.StatusUnprocessableEntity, suite: true, wantOK: false, path: "/repos/acme/widgets/check-suites/42/rerequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newTestClient(t, tt.status, `{}`)

			var (
				ok  bool
				err error
			)
			if tt.suite {
				ok, err = client.Checks.RerequestSuite(context.Background(), Repo("acme", "widgets"), 42, tt.opts)
			} else {
				ok, err = client.Checks.RerequestRun(context.Background(), Repo("acme", "widgets"), 42, tt.opts)
			}

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			got := fake.last(t)
			assert.Equal(t, http.MethodPost, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.query, got.RawQuery)
		})
	}
}

func TestChecksService_ListRunsForRef_PreservesOrder(t *testing.T) {
	body := `{"total_count": 3, "check_runs": [{"id": 3, "name": "c"}, {"id": 1, "name": "a"}, {"id": 2, "name": "b"}]}`
	client, _ := newTestClient(t, http.StatusOK, body)

	res, err := client.Checks.ListRunsForRef(context.Background(), Repo("acme", "widgets"), "main", nil, nil)
	require.NoError(t, err)

	require.Len(t, res.Value.CheckRuns, 3)
	assert.Equal(t, 3, res.Value.TotalCount)
	var names []string
	for _, run := range res.Value.CheckRuns {
		names = append(names, run.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestChecksService_MissingParams(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `{}`)
	ctx := context.Background()

	_, err := client.Checks.GetRun(ctx, Repo("", "widgets"), 1, nil)
	assert.True(t, errors.Is(err, ErrMissingParam))

	_, err = client.Checks.GetRun(ctx, nil, 1, nil)
	assert.True(t, errors.Is(err, ErrMissingParam))

	_, err = client.Checks.GetSuite(ctx, Repo("acme", "widgets"), 0, nil)
	assert.True(t, errors.Is(err, ErrMissingParam))

	_, err = client.Checks.ListRunsForRef(ctx, Repo("acme", "widgets"), " ", nil, nil)
	assert.True(t, errors.Is(err, ErrMissingParam))

	_, err = client.Checks.CreateRun(ctx, Repo("acme", "widgets"), CreateCheckRunOptions{Name: "lint"}, nil)
	assert.True(t, errors.Is(err, ErrMissingParam))

	ok, err := client.Checks.RerequestRun(ctx, Repo("acme", "widgets"), -1, nil)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrMissingParam))

	assert.Zero(t, fake.count(), "no request should be sent for invalid input")
}

func TestCheckConclusion_Failed(t *testing.T) {
	failed := []models.CheckConclusion{models.ConclusionFailure, models.ConclusionCancelled, models.ConclusionTimedOut, models.ConclusionActionRequired, models.ConclusionStale}
	for _, c := range failed {
		assert.True(t, c.Failed(), string(c))
	}
	passed := []models.CheckConclusion{models.ConclusionSuccess, models.ConclusionNeutral, models.ConclusionSkipped, ""}
	for _, c := range passed {
		assert.False(t, c.Failed(), string(c))
	}
}
