package github

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// MockClient implements CheckRunClient and PackageVersionClient for testing
type MockClient struct {
	// Control test behavior
	CheckRuns       []models.CheckRun
	CheckRunsError  error
	RerequestOK     bool
	RerequestError  error
	Versions        []models.PackageVersion
	VersionsError   error
	DeleteVersionOK bool
	DeleteError     error

	// Track method calls
	ListRunsForRefCalled bool
	RerequestRunCalled   bool
	ListVersionsCalled   bool
	DeleteVersionCalled  bool

	// Store call arguments for verification
	LastRepo        RepositoryInfo
	LastRef         string
	LastCheckRunID  int64
	LastOwner       PackageOwner
	LastPackageType models.PackageType
	LastPackageName string
	LastVersionID   int64
}

var (
	_ CheckRunClient       = (*MockClient)(nil)
	_ PackageVersionClient = (*MockClient)(nil)
)

// ListRunsForRef mocks the check run listing
func (m *MockClient) ListRunsForRef(_ context.Context, repo RepositoryInfo, ref string, _ *ListCheckRunsOptions, _ *RequestOptions) (*Result[models.CheckRunList], error) {
	m.ListRunsForRefCalled = true
	m.LastRepo = repo
	m.LastRef = ref
	if m.CheckRunsError != nil {
		return nil, m.CheckRunsError
	}
	return &Result[models.CheckRunList]{
		Format:     FormatTyped,
		StatusCode: 200,
		Value:      models.CheckRunList{TotalCount: len(m.CheckRuns), CheckRuns: m.CheckRuns},
	}, nil
}

// RerequestRun mocks the rerequest call
func (m *MockClient) RerequestRun(_ context.Context, repo RepositoryInfo, checkRunID int64, _ *RequestOptions) (bool, error) {
	m.RerequestRunCalled = true
	m.LastRepo = repo
	m.LastCheckRunID = checkRunID
	return m.RerequestOK, m.RerequestError
}

// ListVersions mocks the package version listing
func (m *MockClient) ListVersions(_ context.Context, owner PackageOwner, packageType models.PackageType, packageName string, _ ListPackageVersionsOptions, _ *RequestOptions) (*Result[[]models.PackageVersion], error) {
	m.ListVersionsCalled = true
	m.LastOwner = owner
	m.LastPackageType = packageType
	m.LastPackageName = packageName
	if m.VersionsError != nil {
		return nil, m.VersionsError
	}
	return &Result[[]models.PackageVersion]{Format: FormatTyped, StatusCode: 200, Value: m.Versions}, nil
}

// DeleteVersion mocks the version deletion
func (m *MockClient) DeleteVersion(_ context.Context, owner PackageOwner, packageType models.PackageType, packageName string, versionID int64, _ *RequestOptions) (bool, error) {
	m.DeleteVersionCalled = true
	m.LastOwner = owner
	m.LastPackageType = packageType
	m.LastPackageName = packageName
	m.LastVersionID = versionID
	return m.DeleteVersionOK, m.DeleteError
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.ListRunsForRefCalled = false
	m.RerequestRunCalled = false
	m.ListVersionsCalled = false
	m.DeleteVersionCalled = false
	m.LastRepo = nil
	m.LastRef = ""
	m.LastCheckRunID = 0
	m.LastOwner = PackageOwner{}
	m.LastPackageType = ""
	m.LastPackageName = ""
	m.LastVersionID = 0
}

// MockRepository implements repository information for testing
type MockRepository struct {
	Owner string
	Name  string
}

func (m *MockRepository) GetOwner() string {
	return m.Owner
}

func (m *MockRepository) GetName() string {
	return m.Name
}

// Helper functions for creating test data
func CreateTestCheckRuns(count int) []models.CheckRun {
	runs := make([]models.CheckRun, count)
	for i := 0; i < count; i++ {
		conclusion := models.ConclusionSuccess
		if i%2 == 0 {
			conclusion = models.ConclusionFailure // Alternate between failed and passing
		}
		runs[i] = models.CheckRun{
			ID:         int64(i + 1),
			Name:       fmt.Sprintf("check-%d", i+1),
			HeadSHA:    "deadbeef",
			Status:     models.CheckStatusCompleted,
			Conclusion: conclusion,
		}
	}
	return runs
}

func CreateTestVersions(count int) []models.PackageVersion {
	versions := make([]models.PackageVersion, count)
	for i := 0; i < count; i++ {
		versions[i] = models.PackageVersion{
			ID:   int64(100 + i),
			Name: fmt.Sprintf("sha256:%04d", i),
			Metadata: &models.PackageMetadata{
				PackageType: models.PackageTypeContainer,
				Container:   &models.ContainerMetadata{Tags: []string{fmt.Sprintf("v%d", i)}},
			},
		}
	}
	return versions
}

// Error helpers for testing error conditions
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}

func NewNetworkError() error {
	return fmt.Errorf("network connection failed")
}
