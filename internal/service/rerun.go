package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ryo246912/gh-rest-bindings/internal/ui"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// RerunService re-requests failed check runs
type RerunService struct {
	client   github.CheckRunClient
	repo     github.RepositoryInfo
	prompter ui.Prompter
}

// NewRerunService creates a new service instance
func NewRerunService(client github.CheckRunClient, repo github.RepositoryInfo, prompter ui.Prompter) *RerunService {
	return &RerunService{
		client:   client,
		repo:     repo,
		prompter: prompter,
	}
}

// ProcessRerun handles the complete workflow and returns the rerun check run id
func (s *RerunService) ProcessRerun(ctx context.Context, ref string, args []string) (int64, error) {
	checkRunID, err := s.getCheckRunID(ctx, ref, args)
	if err != nil {
		return 0, fmt.Errorf("failed to get check run: %w", err)
	}

	confirmed, err := s.prompter.ConfirmSelection(fmt.Sprintf("check run #%d", checkRunID))
	if err != nil {
		return 0, fmt.Errorf("failed to confirm selection: %w", err)
	}
	if !confirmed {
		return 0, fmt.Errorf("rerun cancelled")
	}

	ok, err := s.client.RerequestRun(ctx, s.repo, checkRunID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to rerequest check run %d: %w", checkRunID, err)
	}
	if !ok {
		return 0, fmt.Errorf("check run %d was not rerequested", checkRunID)
	}
	return checkRunID, nil
}

// getCheckRunID gets the check run id from args or prompts user
func (s *RerunService) getCheckRunID(ctx context.Context, ref string, args []string) (int64, error) {
	if len(args) >= 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid check run id: %w", err)
		}
		if id <= 0 {
			return 0, fmt.Errorf("check run id must be positive")
		}
		return id, nil
	}

	if ref == "" {
		return 0, fmt.Errorf("a ref is required to list check runs")
	}

	runs, err := s.FailedRuns(ctx, ref)
	if err != nil {
		return 0, err
	}
	if len(runs) == 0 {
		return 0, fmt.Errorf("no failed check runs on %s", ref)
	}

	return s.prompter.SelectCheckRun(runs)
}

// FailedRuns returns the latest check runs on ref whose conclusion is a failure
func (s *RerunService) FailedRuns(ctx context.Context, ref string) ([]models.CheckRun, error) {
	list := &github.ListCheckRunsOptions{
		Filter:      "latest",
		Status:      models.CheckStatusCompleted,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	res, err := s.client.ListRunsForRef(ctx, s.repo, ref, list, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list check runs: %w", err)
	}

	failed := make([]models.CheckRun, 0, len(res.Value.CheckRuns))
	for _, run := range res.Value.CheckRuns {
		if run.Conclusion.Failed() {
			failed = append(failed, run)
		}
	}
	return failed, nil
}
