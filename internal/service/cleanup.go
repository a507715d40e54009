package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ryo246912/gh-rest-bindings/internal/ui"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// PackageTarget names the package a cleanup operates on
type PackageTarget struct {
	Owner github.PackageOwner
	Type  models.PackageType
	Name  string
}

// CleanupService deletes package versions one at a time
type CleanupService struct {
	client   github.PackageVersionClient
	prompter ui.Prompter
}

// NewCleanupService creates a new service instance
func NewCleanupService(client github.PackageVersionClient, prompter ui.Prompter) *CleanupService {
	return &CleanupService{
		client:   client,
		prompter: prompter,
	}
}

// ProcessDeletion handles the complete workflow and returns the deleted version id
func (s *CleanupService) ProcessDeletion(ctx context.Context, target PackageTarget, args []string) (int64, error) {
	if err := s.ValidateTarget(target); err != nil {
		return 0, err
	}

	versionID, err := s.getVersionID(ctx, target, args)
	if err != nil {
		return 0, fmt.Errorf("failed to get package version: %w", err)
	}

	label := fmt.Sprintf("%s/%s version %d", target.Type, target.Name, versionID)
	confirmed, err := s.prompter.ConfirmSelection(label)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm selection: %w", err)
	}
	if !confirmed {
		return 0, fmt.Errorf("deletion cancelled")
	}

	ok, err := s.client.DeleteVersion(ctx, target.Owner, target.Type, target.Name, versionID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to delete version %d: %w", versionID, err)
	}
	if !ok {
		return 0, fmt.Errorf("version %d was not deleted", versionID)
	}
	return versionID, nil
}

// ValidateTarget checks the package coordinates before any request
func (s *CleanupService) ValidateTarget(target PackageTarget) error {
	if !target.Type.Valid() {
		return fmt.Errorf("unknown package type %q", target.Type)
	}
	if target.Name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	return nil
}

// getVersionID gets the version id from args or prompts user
func (s *CleanupService) getVersionID(ctx context.Context, target PackageTarget, args []string) (int64, error) {
	if len(args) >= 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid version id: %w", err)
		}
		if id <= 0 {
			return 0, fmt.Errorf("version id must be positive")
		}
		return id, nil
	}

	list := github.ListPackageVersionsOptions{
		State:       models.VersionStateActive,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	res, err := s.client.ListVersions(ctx, target.Owner, target.Type, target.Name, list, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list versions: %w", err)
	}
	if len(res.Value) == 0 {
		return 0, fmt.Errorf("no versions found for %s/%s", target.Type, target.Name)
	}

	return s.prompter.SelectPackageVersion(res.Value)
}
