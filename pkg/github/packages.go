package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

type ownerKind int

const (
	ownerAuthenticated ownerKind = iota
	ownerOrg
	ownerUser
)

// PackageOwner selects whose packages an endpoint addresses
type PackageOwner struct {
	kind ownerKind
	name string
}

// AuthenticatedUser addresses /user/packages
func AuthenticatedUser() PackageOwner {
	return PackageOwner{kind: ownerAuthenticated}
}

// Org addresses /orgs/{org}/packages
func Org(name string) PackageOwner {
	return PackageOwner{kind: ownerOrg, name: name}
}

// User addresses /users/{username}/packages
func User(name string) PackageOwner {
	return PackageOwner{kind: ownerUser, name: name}
}

func (o PackageOwner) String() string {
	switch o.kind {
	case ownerOrg:
		return "org " + o.name
	case ownerUser:
		return "user " + o.name
	}
	return "authenticated user"
}

func (o PackageOwner) path(rest ...string) (string, error) {
	var segments []string
	switch o.kind {
	case ownerAuthenticated:
		segments = []string{"user"}
	case ownerOrg:
		if err := requireParams("org", o.name); err != nil {
			return "", err
		}
		segments = []string{"orgs", o.name}
	case ownerUser:
		if err := requireParams("username", o.name); err != nil {
			return "", err
		}
		segments = []string{"users", o.name}
	default:
		return "", fmt.Errorf("unknown package owner kind %d", o.kind)
	}
	return buildPath(append(segments, rest...)...), nil
}

func (o PackageOwner) packagePath(packageType models.PackageType, packageName string, rest ...string) (string, error) {
	if err := requireParams("package_type", string(packageType), "package_name", packageName); err != nil {
		return "", err
	}
	return o.path(append([]string{"packages", string(packageType), packageName}, rest...)...)
}

// PackagesService covers GitHub Packages endpoints
type PackagesService struct {
	client *Client
}

// ListPackagesOptions filters List. PackageType is required.
type ListPackagesOptions struct {
	PackageType models.PackageType
	Visibility  models.PackageVisibility
	ListOptions
}

// ListPackageVersionsOptions filters ListVersions
type ListPackageVersionsOptions struct {
	State models.PackageVersionState
	ListOptions
}

// List lists packages of the given type owned by owner
func (s *PackagesService) List(ctx context.Context, owner PackageOwner, list ListPackagesOptions, opts *RequestOptions) (*Result[[]models.Package], error) {
	if err := requireParams("package_type", string(list.PackageType)); err != nil {
		return nil, err
	}
	path, err := owner.path("packages")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "package_type", string(list.PackageType))
	setString(q, "visibility", string(list.Visibility))
	list.ListOptions.apply(q)

	res, err := do[[]models.Package](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: q, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages for %s: %w", owner, err)
	}
	return res, nil
}

// Get fetches a single package
func (s *PackagesService) Get(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, opts *RequestOptions) (*Result[models.Package], error) {
	path, err := owner.packagePath(packageType, packageName)
	if err != nil {
		return nil, err
	}
	res, err := do[models.Package](ctx, s.client, endpoint{method: http.MethodGet, path: path, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package %s/%s: %w", packageType, packageName, err)
	}
	return res, nil
}

// Delete deletes a package. Packages with more than 5000 downloads cannot be deleted.
func (s *PackagesService) Delete(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, opts *RequestOptions) (bool, error) {
	path, err := owner.packagePath(packageType, packageName)
	if err != nil {
		return false, err
	}
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodDelete, path: path, want: http.StatusNoContent}, opts)
}

// Restore restores a deleted package. token is the optional restore token
// for packages whose name was reused.
func (s *PackagesService) Restore(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName, token string, opts *RequestOptions) (bool, error) {
	path, err := owner.packagePath(packageType, packageName, "restore")
	if err != nil {
		return false, err
	}
	q := url.Values{}
	setString(q, "token", token)
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodPost, path: path, query: q, want: http.StatusNoContent}, opts)
}

// ListVersions lists the versions of a package
func (s *PackagesService) ListVersions(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, list ListPackageVersionsOptions, opts *RequestOptions) (*Result[[]models.PackageVersion], error) {
	path, err := owner.packagePath(packageType, packageName, "versions")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "state", string(list.State))
	list.ListOptions.apply(q)

	res, err := do[[]models.PackageVersion](ctx, s.client, endpoint{method: http.MethodGet, path: path, query: q, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of %s/%s: %w", packageType, packageName, err)
	}
	return res, nil
}

// GetVersion fetches a single package version
func (s *PackagesService) GetVersion(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, versionID int64, opts *RequestOptions) (*Result[models.PackageVersion], error) {
	if err := requireID("package_version_id", versionID); err != nil {
		return nil, err
	}
	path, err := owner.packagePath(packageType, packageName, "versions", idString(versionID))
	if err != nil {
		return nil, err
	}
	res, err := do[models.PackageVersion](ctx, s.client, endpoint{method: http.MethodGet, path: path, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version %d of %s/%s: %w", versionID, packageType, packageName, err)
	}
	return res, nil
}

// DeleteVersion deletes a single package version
func (s *PackagesService) DeleteVersion(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, versionID int64, opts *RequestOptions) (bool, error) {
	if err := requireID("package_version_id", versionID); err != nil {
		return false, err
	}
	path, err := owner.packagePath(packageType, packageName, "versions", idString(versionID))
	if err != nil {
		return false, err
	}
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodDelete, path: path, want: http.StatusNoContent}, opts)
}

// RestoreVersion restores a deleted package version
func (s *PackagesService) RestoreVersion(ctx context.Context, owner PackageOwner, packageType models.PackageType, packageName string, versionID int64, opts *RequestOptions) (bool, error) {
	if err := requireID("package_version_id", versionID); err != nil {
		return false, err
	}
	path, err := owner.packagePath(packageType, packageName, "versions", idString(versionID), "restore")
	if err != nil {
		return false, err
	}
	return s.client.sendNoContent(ctx, endpoint{method: http.MethodPost, path: path, want: http.StatusNoContent}, opts)
}

// ListDockerConflicts lists docker packages that conflict with the container
// registry migration
func (s *PackagesService) ListDockerConflicts(ctx context.Context, owner PackageOwner, opts *RequestOptions) (*Result[[]models.Package], error) {
	path, err := owner.path("docker", "conflicts")
	if err != nil {
		return nil, err
	}
	res, err := do[[]models.Package](ctx, s.client, endpoint{method: http.MethodGet, path: path, want: http.StatusOK}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list docker conflicts for %s: %w", owner, err)
	}
	return res, nil
}
