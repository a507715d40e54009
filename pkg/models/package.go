package models

import "time"

// PackageType is the registry a package lives in
type PackageType string

const (
	PackageTypeNpm       PackageType = "npm"
	PackageTypeMaven     PackageType = "maven"
	PackageTypeRubygems  PackageType = "rubygems"
	PackageTypeDocker    PackageType = "docker"
	PackageTypeNuget     PackageType = "nuget"
	PackageTypeContainer PackageType = "container"
)

// Valid reports whether t is one of the documented package types
func (t PackageType) Valid() bool {
	switch t {
	case PackageTypeNpm, PackageTypeMaven, PackageTypeRubygems, PackageTypeDocker, PackageTypeNuget, PackageTypeContainer:
		return true
	}
	return false
}

// PackageVisibility filters package listings
type PackageVisibility string

const (
	VisibilityPublic   PackageVisibility = "public"
	VisibilityPrivate  PackageVisibility = "private"
	VisibilityInternal PackageVisibility = "internal"
)

// PackageVersionState filters package version listings
type PackageVersionState string

const (
	VersionStateActive  PackageVersionState = "active"
	VersionStateDeleted PackageVersionState = "deleted"
)

// Package represents a GitHub Packages package
type Package struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	PackageType  PackageType       `json:"package_type"`
	Owner        *User             `json:"owner"`
	VersionCount int               `json:"version_count"`
	Visibility   PackageVisibility `json:"visibility"`
	URL          string            `json:"url"`
	HTMLURL      string            `json:"html_url"`
	CreatedAt    *time.Time        `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at"`
	Repository   *RepoRef          `json:"repository"`
}

// PackageVersion represents one published version of a package
type PackageVersion struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	URL            string           `json:"url"`
	PackageHTMLURL string           `json:"package_html_url"`
	HTMLURL        string           `json:"html_url"`
	License        string           `json:"license"`
	Description    string           `json:"description"`
	CreatedAt      *time.Time       `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at"`
	DeletedAt      *time.Time       `json:"deleted_at"`
	Metadata       *PackageMetadata `json:"metadata"`
}

// Tags returns the container or docker tags of the version, if any
func (v PackageVersion) Tags() []string {
	if v.Metadata == nil {
		return nil
	}
	if v.Metadata.Container != nil {
		return v.Metadata.Container.Tags
	}
	if v.Metadata.Docker != nil {
		return v.Metadata.Docker.Tag
	}
	return nil
}

// PackageMetadata holds registry specific version details
type PackageMetadata struct {
	PackageType PackageType        `json:"package_type"`
	Container   *ContainerMetadata `json:"container"`
	Docker      *DockerMetadata    `json:"docker"`
}

type ContainerMetadata struct {
	Tags []string `json:"tags"`
}

type DockerMetadata struct {
	Tag []string `json:"tag"`
}
