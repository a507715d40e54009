package ui

import (
	"os"

	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// Prompter defines interface for user interaction
type Prompter interface {
	SelectCheckRun(runs []models.CheckRun) (int64, error)
	SelectPackageVersion(versions []models.PackageVersion) (int64, error)
	ConfirmSelection(label string) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectCheckRun prompts user to select a check run
func (p *DefaultPrompter) SelectCheckRun(runs []models.CheckRun) (int64, error) {
	return SelectCheckRun(runs)
}

// SelectPackageVersion prompts user to select a package version
func (p *DefaultPrompter) SelectPackageVersion(versions []models.PackageVersion) (int64, error) {
	return SelectPackageVersion(versions)
}

// ConfirmSelection prompts user to confirm selection
func (p *DefaultPrompter) ConfirmSelection(label string) (bool, error) {
	return ConfirmSelection(os.Stdin, os.Stdout, label)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedCheckRunID     int64
	CheckRunSelectionError error

	SelectedVersionID     int64
	VersionSelectionError error

	ConfirmedSelection bool
	ConfirmationError  error

	// Call tracking
	SelectCheckRunCalled       bool
	SelectPackageVersionCalled bool
	ConfirmSelectionCalled     bool
	LastOffered                int
	LastConfirmLabel           string
}

// SelectCheckRun mocks check run selection
func (m *MockPrompter) SelectCheckRun(runs []models.CheckRun) (int64, error) {
	m.SelectCheckRunCalled = true
	m.LastOffered = len(runs)
	return m.SelectedCheckRunID, m.CheckRunSelectionError
}

// SelectPackageVersion mocks version selection
func (m *MockPrompter) SelectPackageVersion(versions []models.PackageVersion) (int64, error) {
	m.SelectPackageVersionCalled = true
	m.LastOffered = len(versions)
	return m.SelectedVersionID, m.VersionSelectionError
}

// ConfirmSelection mocks confirmation
func (m *MockPrompter) ConfirmSelection(label string) (bool, error) {
	m.ConfirmSelectionCalled = true
	m.LastConfirmLabel = label
	return m.ConfirmedSelection, m.ConfirmationError
}
