package models

// PullRequestRef represents a pull request attached to a check run or suite
type PullRequestRef struct {
	ID     int64     `json:"id"`
	Number int       `json:"number"`
	URL    string    `json:"url"`
	Head   BranchRef `json:"head"`
	Base   BranchRef `json:"base"`
}

// BranchRef is the head or base side of a pull request
type BranchRef struct {
	Ref  string  `json:"ref"`
	SHA  string  `json:"sha"`
	Repo RepoRef `json:"repo"`
}

// RepoRef is the minimal repository shape embedded in check payloads
type RepoRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	URL      string `json:"url"`
}

// User represents a GitHub account
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	SiteAdmin bool   `json:"site_admin"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
	NodeID    string `json:"node_id"`
}

// App is the GitHub App that owns a check run or suite
type App struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	NodeID  string `json:"node_id"`
	Name    string `json:"name"`
	Owner   *User  `json:"owner"`
	HTMLURL string `json:"html_url"`
}
