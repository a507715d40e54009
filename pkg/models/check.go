package models

import "time"

// CheckStatus is the lifecycle state of a check run or suite
type CheckStatus string

const (
	CheckStatusQueued     CheckStatus = "queued"
	CheckStatusInProgress CheckStatus = "in_progress"
	CheckStatusCompleted  CheckStatus = "completed"
	CheckStatusWaiting    CheckStatus = "waiting"
	CheckStatusRequested  CheckStatus = "requested"
	CheckStatusPending    CheckStatus = "pending"
)

// CheckConclusion is the final result of a completed check
type CheckConclusion string

const (
	ConclusionActionRequired CheckConclusion = "action_required"
	ConclusionCancelled      CheckConclusion = "cancelled"
	ConclusionFailure        CheckConclusion = "failure"
	ConclusionNeutral        CheckConclusion = "neutral"
	ConclusionSuccess        CheckConclusion = "success"
	ConclusionSkipped        CheckConclusion = "skipped"
	ConclusionStale          CheckConclusion = "stale"
	ConclusionTimedOut       CheckConclusion = "timed_out"
)

// Failed reports whether the conclusion is one a rerun could change
func (c CheckConclusion) Failed() bool {
	switch c {
	case ConclusionFailure, ConclusionCancelled, ConclusionTimedOut, ConclusionActionRequired, ConclusionStale:
		return true
	}
	return false
}

// CheckRun represents a single check run
type CheckRun struct {
	ID           int64            `json:"id"`
	HeadSHA      string           `json:"head_sha"`
	NodeID       string           `json:"node_id"`
	ExternalID   string           `json:"external_id"`
	URL          string           `json:"url"`
	HTMLURL      string           `json:"html_url"`
	DetailsURL   string           `json:"details_url"`
	Status       CheckStatus      `json:"status"`
	Conclusion   CheckConclusion  `json:"conclusion"`
	StartedAt    *time.Time       `json:"started_at"`
	CompletedAt  *time.Time       `json:"completed_at"`
	Output       CheckRunOutput   `json:"output"`
	Name         string           `json:"name"`
	CheckSuite   *CheckSuiteRef   `json:"check_suite"`
	App          *App             `json:"app"`
	PullRequests []PullRequestRef `json:"pull_requests"`
}

// CheckSuiteRef is the suite id embedded in a check run
type CheckSuiteRef struct {
	ID int64 `json:"id"`
}

// CheckRunOutput is the rendered output of a check run as returned by the API
type CheckRunOutput struct {
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	Text             string            `json:"text"`
	AnnotationsCount int               `json:"annotations_count"`
	AnnotationsURL   string            `json:"annotations_url"`
	Annotations      []CheckAnnotation `json:"annotations"`
	Images           []CheckRunImage   `json:"images"`
}

// CheckRunImage is an image attached to check run output
type CheckRunImage struct {
	Alt      string `json:"alt"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

// CheckRunAction is a button shown on a check run
type CheckRunAction struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Identifier  string `json:"identifier"`
}

// CheckAnnotation points at a line range of a file
type CheckAnnotation struct {
	Path            string `json:"path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	StartColumn     *int   `json:"start_column"`
	EndColumn       *int   `json:"end_column"`
	AnnotationLevel string `json:"annotation_level"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	RawDetails      string `json:"raw_details"`
	BlobHref        string `json:"blob_href"`
}

// CheckRunList is the envelope returned by check run listings
type CheckRunList struct {
	TotalCount int        `json:"total_count"`
	CheckRuns  []CheckRun `json:"check_runs"`
}

// CheckSuite represents a check suite
type CheckSuite struct {
	ID                   int64            `json:"id"`
	NodeID               string           `json:"node_id"`
	HeadBranch           string           `json:"head_branch"`
	HeadSHA              string           `json:"head_sha"`
	Status               CheckStatus      `json:"status"`
	Conclusion           CheckConclusion  `json:"conclusion"`
	URL                  string           `json:"url"`
	Before               string           `json:"before"`
	After                string           `json:"after"`
	PullRequests         []PullRequestRef `json:"pull_requests"`
	App                  *App             `json:"app"`
	Repository           *RepoRef         `json:"repository"`
	CreatedAt            *time.Time       `json:"created_at"`
	UpdatedAt            *time.Time       `json:"updated_at"`
	LatestCheckRunsCount int              `json:"latest_check_runs_count"`
	CheckRunsURL         string           `json:"check_runs_url"`
	Rerequestable        bool             `json:"rerequestable"`
	RunsRerequestable    bool             `json:"runs_rerequestable"`
}

// CheckSuiteList is the envelope returned by check suite listings
type CheckSuiteList struct {
	TotalCount  int          `json:"total_count"`
	CheckSuites []CheckSuite `json:"check_suites"`
}

// AutoTriggerCheck toggles automatic suite creation for one app
type AutoTriggerCheck struct {
	AppID   int64 `json:"app_id"`
	Setting bool  `json:"setting"`
}

// CheckSuitePreferences is returned after updating suite preferences
type CheckSuitePreferences struct {
	Preferences struct {
		AutoTriggerChecks []AutoTriggerCheck `json:"auto_trigger_checks"`
	} `json:"preferences"`
	Repository *RepoRef `json:"repository"`
}
