package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// ChecksService covers check runs and check suites of a repository
type ChecksService struct {
	client *Client
}

// CreateCheckRunOptions is the request body for CreateRun
type CreateCheckRunOptions struct {
	Name        string                  `json:"name"`
	HeadSHA     string                  `json:"head_sha"`
	DetailsURL  string                  `json:"details_url,omitempty"`
	ExternalID  string                  `json:"external_id,omitempty"`
	Status      models.CheckStatus      `json:"status,omitempty"`
	StartedAt   *time.Time              `json:"started_at,omitempty"`
	Conclusion  models.CheckConclusion  `json:"conclusion,omitempty"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Output      *CheckRunOutputOptions  `json:"output,omitempty"`
	Actions     []models.CheckRunAction `json:"actions,omitempty"`
}

// UpdateCheckRunOptions is the request body for UpdateRun
type UpdateCheckRunOptions struct {
	Name        string                  `json:"name,omitempty"`
	DetailsURL  string                  `json:"details_url,omitempty"`
	ExternalID  string                  `json:"external_id,omitempty"`
	Status      models.CheckStatus      `json:"status,omitempty"`
	StartedAt   *time.Time              `json:"started_at,omitempty"`
	Conclusion  models.CheckConclusion  `json:"conclusion,omitempty"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Output      *CheckRunOutputOptions  `json:"output,omitempty"`
	Actions     []models.CheckRunAction `json:"actions,omitempty"`
}

// CheckRunOutputOptions is the output sent with CreateRun and UpdateRun.
// Unset fields are left out of the request body.
type CheckRunOutputOptions struct {
	Title       string                   `json:"title"`
	Summary     string                   `json:"summary"`
	Text        string                   `json:"text,omitempty"`
	Annotations []CheckAnnotationOptions `json:"annotations,omitempty"`
	Images      []CheckRunImageOptions   `json:"images,omitempty"`
}

// CheckAnnotationOptions is an annotation attached through CheckRunOutputOptions
type CheckAnnotationOptions struct {
	Path            string `json:"path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	StartColumn     *int   `json:"start_column,omitempty"`
	EndColumn       *int   `json:"end_column,omitempty"`
	AnnotationLevel string `json:"annotation_level"`
	Message         string `json:"message"`
	Title           string `json:"title,omitempty"`
	RawDetails      string `json:"raw_details,omitempty"`
}

// CheckRunImageOptions is an image attached through CheckRunOutputOptions
type CheckRunImageOptions struct {
	Alt      string `json:"alt"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption,omitempty"`
}

// ListCheckRunsOptions filters check run listings. AppID is only sent by
// ListRunsForRef.
type ListCheckRunsOptions struct {
	CheckName string
	Status    models.CheckStatus
	// Filter is "latest" or "all"
	Filter string
	AppID  int64
	ListOptions
}

func (o *ListCheckRunsOptions) values(withApp bool) url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	setString(q, "check_name", o.CheckName)
	setString(q, "status", string(o.Status))
	setString(q, "filter", o.Filter)
	if withApp {
		setInt(q, "app_id", o.AppID)
	}
	o.ListOptions.apply(q)
	return q
}

// ListCheckSuitesOptions filters ListSuitesForRef
type ListCheckSuitesOptions struct {
	AppID     int64
	CheckName string
	ListOptions
}

func (o *ListCheckSuitesOptions) values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	setInt(q, "app_id", o.AppID)
	setString(q, "check_name", o.CheckName)
	o.ListOptions.apply(q)
	return q
}

func repoPath(repo RepositoryInfo, rest ...string) (string, error) {
	if repo == nil {
		return "", fmt.Errorf("%w: repository", ErrMissingParam)
	}
	if err := requireParams("owner", repo.GetOwner(), "repo", repo.GetName()); err != nil {
		return "", err
	}
	segments := append([]string{"repos", repo.GetOwner(), repo.GetName()}, rest...)
	return buildPath(segments...), nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// CreateRun creates a check run for a commit
func (s *ChecksService) CreateRun(ctx context.Context, repo RepositoryInfo, body CreateCheckRunOptions, opts *RequestOptions) (*Result[models.CheckRun], error) {
	if err := requireParams("name", body.Name, "head_sha", body.HeadSHA); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-runs")
	if err != nil {
		return nil, err
	}
	res, err := do[models.CheckRun](ctx, s.client, endpoint{method: http.MethodPost, path: path, body: body, want: http.StatusCreated}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create check run: %w", err)
	}
	return res, nil
}

// GetRun fetches a single check run
func (s *ChecksService) GetRun(ctx context.Context, repo RepositoryInfo, checkRunID int64, opts *RequestOptions) (*Result[models.CheckRun], error) {
	if err := requireID("check_run_id", checkRunID); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-runs", idString(checkRunID))
	if err != nil {
		return nil, err
	}
	res, err := do[models.CheckRun](ctx, s.client, endpoint{method: http.MethodGet, path: path, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check run %d: %w", checkRunID, err)
	}
	return res, nil
}

// UpdateRun updates a check run
func (s *ChecksService) UpdateRun(ctx context.Context, repo RepositoryInfo, checkRunID int64, body UpdateCheckRunOptions, opts *RequestOptions) (*Result[models.CheckRun], error) {
	if err := requireID("check_run_id", checkRunID); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-runs", idString(checkRunID))
	if err != nil {
		return nil, err
	}
	res, err := do[models.CheckRun](ctx, s.client, endpoint{method: http.MethodPatch, path: path, body: body, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to update check run %d: %w", checkRunID, err)
	}
	return res, nil
}

// ListRunAnnotations lists the annotations of a check run
func (s *ChecksService) ListRunAnnotations(ctx context.Context, repo RepositoryInfo, checkRunID int64, list ListOptions, opts *RequestOptions) (*Result[[]models.CheckAnnotation], error) {
	if err := requireID("check_run_id", checkRunID); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-runs", idString(checkRunID), "annotations")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	list.apply(q)
	res, err := do[[]models.CheckAnnotation](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: q, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations for check run %d: %w", checkRunID, err)
	}
	return res, nil
}

// RerequestRun triggers the check run's app to run it again
func (s *ChecksService) RerequestRun(ctx context.Context, repo RepositoryInfo, checkRunID int64, opts *RequestOptions) (bool, error) {
	if err := requireID("check_run_id", checkRunID); err != nil {
		return false, err
	}
	path, err := repoPath(repo, "check-runs", idString(checkRunID), "rerequest")
	if err != nil {
		return false, err
	}
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodPost, path: path, want: http.StatusCreated}, opts)
}

// ListRunsForSuite lists check runs in a check suite
func (s *ChecksService) ListRunsForSuite(ctx context.Context, repo RepositoryInfo, checkSuiteID int64, list *ListCheckRunsOptions, opts *RequestOptions) (*Result[models.CheckRunList], error) {
	if err := requireID("check_suite_id", checkSuiteID); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-suites", idString(checkSuiteID), "check-runs")
	if err != nil {
		return nil, err
	}
	res, err := do[models.CheckRunList](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: list.values(false), want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list check runs for suite %d: %w", checkSuiteID, err)
	}
	return res, nil
}

// ListRunsForRef lists check runs for a commit SHA, branch or tag
func (s *ChecksService) ListRunsForRef(ctx context.Context, repo RepositoryInfo, ref string, list *ListCheckRunsOptions, opts *RequestOptions) (*Result[models.CheckRunList], error) {
	if err := requireParams("ref", ref); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "commits")
	if err != nil {
		return nil, err
	}
	path += "/" + escapeRef(ref) + "/check-runs"
	res, err := do[models.CheckRunList](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: list.values(true), want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list check runs for %s: %w", ref, err)
	}
	return res, nil
}

// CreateSuite creates a check suite for a commit
func (s *ChecksService) CreateSuite(ctx context.Context, repo RepositoryInfo, headSHA string, opts *RequestOptions) (*Result[models.CheckSuite], error) {
	if err := requireParams("head_sha", headSHA); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-suites")
	if err != nil {
		return nil, err
	}
	body := map[string]string{"head_sha": headSHA}
	res, err := do[models.CheckSuite](ctx, s.client, endpoint{method: http.MethodPost, path: path, body: body, want: http.StatusCreated}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create check suite: %w", err)
	}
	return res, nil
}

// SetSuitesPreferences changes automatic suite creation for apps
func (s *ChecksService) SetSuitesPreferences(ctx context.Context, repo RepositoryInfo, autoTrigger []models.AutoTriggerCheck, opts *RequestOptions) (*Result[models.CheckSuitePreferences], error) {
	path, err := repoPath(repo, "check-suites", "preferences")
	if err != nil {
		return nil, err
	}
	body := map[string][]models.AutoTriggerCheck{"auto_trigger_checks": autoTrigger}
	res, err := do[models.CheckSuitePreferences](ctx, s.client, endpoint{method: http.MethodPatch, path: path, body: body, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to update check suite preferences: %w", err)
	}
	return res, nil
}

// GetSuite fetches a single check suite
func (s *ChecksService) GetSuite(ctx context.Context, repo RepositoryInfo, checkSuiteID int64, opts *RequestOptions) (*Result[models.CheckSuite], error) {
	if err := requireID("check_suite_id", checkSuiteID); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "check-suites", idString(checkSuiteID))
	if err != nil {
		return nil, err
	}
	res, err := do[models.CheckSuite](ctx, s.client, endpoint{method: http.MethodGet, path: path, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check suite %d: %w", checkSuiteID, err)
	}
	return res, nil
}

// RerequestSuite triggers the suite's app to run all its checks again
func (s *ChecksService) RerequestSuite(ctx context.Context, repo RepositoryInfo, checkSuiteID int64, opts *RequestOptions) (bool, error) {
	if err := requireID("check_suite_id", checkSuiteID); err != nil {
		return false, err
	}
	path, err := repoPath(repo, "check-suites", idString(checkSuiteID), "rerequest")
	if err != nil {
		return false, err
	}
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodPost, path: path, want: http.StatusCreated}, opts)
}

// ListSuitesForRef lists check suites for a commit SHA, branch or tag
func (s *ChecksService) ListSuitesForRef(ctx context.Context, repo RepositoryInfo, ref string, list *ListCheckSuitesOptions, opts *RequestOptions) (*Result[models.CheckSuiteList], error) {
	if err := requireParams("ref", ref); err != nil {
		return nil, err
	}
	path, err := repoPath(repo, "commits")
	if err != nil {
		return nil, err
	}
	path += "/" + escapeRef(ref) + "/check-suites"
	res, err := do[models.CheckSuiteList](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: list.values(), want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list check suites for %s: %w", ref, err)
	}
	return res, nil
}
