package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// RepositoryInfo defines repository information interface
type RepositoryInfo interface {
	GetOwner() string
	GetName() string
}

// Repository is a plain RepositoryInfo value
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) GetOwner() string { return r.Owner }
func (r Repository) GetName() string  { return r.Name }

// Repo builds a RepositoryInfo from owner and name
func Repo(owner, name string) Repository {
	return Repository{Owner: owner, Name: name}
}

// ParseRepo parses "OWNER/REPO"
func ParseRepo(s string) (Repository, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("expected OWNER/REPO, got %q", s)
	}
	return Repo(owner, name), nil
}

// CheckRunClient is the subset of ChecksService used to rerun failed checks
type CheckRunClient interface {
	ListRunsForRef(ctx context.Context, repo RepositoryInfo, ref string, list *ListCheckRunsOptions, opts *RequestOptions) (*Result[models.CheckRunList], error)
	RerequestRun(ctx context.Context, repo RepositoryInfo, checkRunID int64, opts *RequestOptions) (bool, error)
}

// PackageVersionClient is the subset of PackagesService used to prune versions
type PackageVersionClient interface {
	ListVersions(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, list ListPackageVersionsOptions, opts *RequestOptions) (*Result[[]models.PackageVersion], error)
	DeleteVersion(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, versionID int64, opts *RequestOptions) (bool, error)
}

// Ensure services implement the narrow interfaces
var (
	_ CheckRunClient       = (*ChecksService)(nil)
	_ PackageVersionClient = (*PackagesService)(nil)
	_ RepositoryInfo       = Repository{}
)
