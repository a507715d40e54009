package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-rest-bindings/internal/output"
	"github.com/ryo246912/gh-rest-bindings/internal/service"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

type checkRunsListOptions struct {
	Ref     string
	Name    string
	Status  string
	Filter  string
	AppID   int64
	Page    int
	PerPage int
}

func newChecksCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checks",
		Short: "Inspect and rerequest check runs and suites",
	}
	cmd.AddCommand(newCheckRunsCommand(e))
	cmd.AddCommand(newCheckSuitesCommand(e))
	return cmd
}

func newCheckRunsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Work with check runs",
	}
	cmd.AddCommand(newCheckRunsListCommand(e))
	cmd.AddCommand(newCheckRunsGetCommand(e))
	cmd.AddCommand(newCheckRunsAnnotationsCommand(e))
	cmd.AddCommand(newCheckRunsRerequestCommand(e))
	return cmd
}

func newCheckRunsListCommand(e *env) *cobra.Command {
	opts := checkRunsListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List check runs for a commit SHA, branch or tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			list := &github.ListCheckRunsOptions{
				CheckName:   opts.Name,
				Status:      models.CheckStatus(opts.Status),
				Filter:      opts.Filter,
				AppID:       opts.AppID,
				ListOptions: github.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
			}
			res, err := client.Checks.ListRunsForRef(cmd.Context(), repo, opts.Ref, list, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.CheckRunRows)
		},
	}
	cmd.Flags().StringVar(&opts.Ref, "ref", "", "Commit SHA, branch name or tag")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Only runs with this check name")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Only runs with this status (queued, in_progress, completed)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "latest or all")
	cmd.Flags().Int64Var(&opts.AppID, "app-id", 0, "Only runs created by this GitHub App")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

func newCheckRunsGetCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <check-run-id>",
		Short: "Show a single check run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("check run id", args[0])
			if err != nil {
				return err
			}
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			res, err := client.Checks.GetRun(cmd.Context(), repo, id, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.CheckRunRow)
		},
	}
}

func newCheckRunsAnnotationsCommand(e *env) *cobra.Command {
	var page, perPage int
	cmd := &cobra.Command{
		Use:   "annotations <check-run-id>",
		Short: "List annotations of a check run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("check run id", args[0])
			if err != nil {
				return err
			}
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			list := github.ListOptions{Page: page, PerPage: perPage}
			res, err := client.Checks.ListRunAnnotations(cmd.Context(), repo, id, list, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.AnnotationRows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Results per page (max 100)")
	return cmd
}

func newCheckRunsRerequestCommand(e *env) *cobra.Command {
	var ref string
	cmd := &cobra.Command{
		Use:   "rerequest [<check-run-id>]",
		Short: "Rerequest a check run, picking among failed runs on --ref when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if _, err := parseID("check run id", args[0]); err != nil {
					return err
				}
			}
			client, repo, _, err := e.repoRequest()
			if err != nil {
				return err
			}
			rerun := service.NewRerunService(client.Checks, repo, e.prompter)
			id, err := rerun.ProcessRerun(cmd.Context(), ref, args)
			if err != nil {
				return err
			}
			e.printer().Status("Rerequested check run %d", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "Commit SHA, branch name or tag to pick failed runs from")
	return cmd
}

func newCheckSuitesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suites",
		Aliases: []string{"suite"},
		Short:   "Work with check suites",
	}
	cmd.AddCommand(newCheckSuitesListCommand(e))
	cmd.AddCommand(newCheckSuitesGetCommand(e))
	cmd.AddCommand(newCheckSuitesRerequestCommand(e))
	return cmd
}

func newCheckSuitesListCommand(e *env) *cobra.Command {
	var (
		ref     string
		name    string
		appID   int64
		page    int
		perPage int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List check suites for a commit SHA, branch or tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			list := &github.ListCheckSuitesOptions{
				AppID:       appID,
				CheckName:   name,
				ListOptions: github.ListOptions{Page: page, PerPage: perPage},
			}
			res, err := client.Checks.ListSuitesForRef(cmd.Context(), repo, ref, list, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.CheckSuiteRows)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "Commit SHA, branch name or tag")
	cmd.Flags().StringVar(&name, "name", "", "Only suites containing a run with this check name")
	cmd.Flags().Int64Var(&appID, "app-id", 0, "Only suites created by this GitHub App")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Results per page (max 100)")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

func newCheckSuitesGetCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <check-suite-id>",
		Short: "Show a single check suite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("check suite id", args[0])
			if err != nil {
				return err
			}
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			res, err := client.Checks.GetSuite(cmd.Context(), repo, id, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.CheckSuiteRow)
		},
	}
}

func newCheckSuitesRerequestCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rerequest <check-suite-id>",
		Short: "Rerequest every check run in a suite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("check suite id", args[0])
			if err != nil {
				return err
			}
			client, repo, reqOpts, err := e.repoRequest()
			if err != nil {
				return err
			}
			ok, err := client.Checks.RerequestSuite(cmd.Context(), repo, id, reqOpts)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("check suite %d was not rerequested", id)
			}
			e.printer().Status("Rerequested check suite %d", id)
			return nil
		},
	}
}

// repoRequest resolves the client, target repository and request options
// shared by every repository scoped command
func (e *env) repoRequest() (*github.Client, github.Repository, *github.RequestOptions, error) {
	reqOpts, err := e.requestOptions()
	if err != nil {
		return nil, github.Repository{}, nil, err
	}
	repo, err := e.repo()
	if err != nil {
		return nil, github.Repository{}, nil, err
	}
	client, err := e.client()
	if err != nil {
		return nil, github.Repository{}, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, repo, reqOpts, nil
}
