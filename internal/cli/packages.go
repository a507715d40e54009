package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-rest-bindings/internal/output"
	"github.com/ryo246912/gh-rest-bindings/internal/service"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

type ownerFlags struct {
	Org  string
	User string
}

func (f *ownerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Org, "org", "", "Organization that owns the package")
	cmd.Flags().StringVar(&f.User, "user", "", "User that owns the package (defaults to the authenticated user)")
	cmd.MarkFlagsMutuallyExclusive("org", "user")
}

func (f *ownerFlags) owner() github.PackageOwner {
	switch {
	case f.Org != "":
		return github.Org(f.Org)
	case f.User != "":
		return github.User(f.User)
	}
	return github.AuthenticatedUser()
}

func newPackagesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"package", "pkg"},
		Short:   "Work with GitHub Packages",
	}
	cmd.AddCommand(newPackagesListCommand(e))
	cmd.AddCommand(newPackagesGetCommand(e))
	cmd.AddCommand(newPackagesVersionsCommand(e))
	cmd.AddCommand(newPackagesDeleteVersionCommand(e))
	cmd.AddCommand(newPackagesRestoreCommand(e))
	return cmd
}

func newPackagesListCommand(e *env) *cobra.Command {
	var (
		owner       ownerFlags
		packageType string
		visibility  string
		page        int
		perPage     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages of a type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pt, err := parsePackageType(packageType)
			if err != nil {
				return err
			}
			client, reqOpts, err := e.request()
			if err != nil {
				return err
			}
			list := github.ListPackagesOptions{
				PackageType: pt,
				Visibility:  models.PackageVisibility(visibility),
				ListOptions: github.ListOptions{Page: page, PerPage: perPage},
			}
			res, err := client.Packages.List(cmd.Context(), owner.owner(), list, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.PackageRows)
		},
	}
	owner.register(cmd)
	cmd.Flags().StringVar(&packageType, "type", "", "Package type (npm, maven, rubygems, docker, nuget, container)")
	cmd.Flags().StringVar(&visibility, "visibility", "", "public, private or internal")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Results per page (max 100)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPackagesGetCommand(e *env) *cobra.Command {
	var owner ownerFlags
	cmd := &cobra.Command{
		Use:   "get <type> <name>",
		Short: "Show a single package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePackageType(args[0])
			if err != nil {
				return err
			}
			client, reqOpts, err := e.request()
			if err != nil {
				return err
			}
			res, err := client.Packages.Get(cmd.Context(), owner.owner(), pt, args[1], reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.PackageRow)
		},
	}
	owner.register(cmd)
	return cmd
}

func newPackagesVersionsCommand(e *env) *cobra.Command {
	var (
		owner   ownerFlags
		state   string
		page    int
		perPage int
	)
	cmd := &cobra.Command{
		Use:   "versions <type> <name>",
		Short: "List versions of a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePackageType(args[0])
			if err != nil {
				return err
			}
			client, reqOpts, err := e.request()
			if err != nil {
				return err
			}
			list := github.ListPackageVersionsOptions{
				State:       models.PackageVersionState(state),
				ListOptions: github.ListOptions{Page: page, PerPage: perPage},
			}
			res, err := client.Packages.ListVersions(cmd.Context(), owner.owner(), pt, args[1], list, reqOpts)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.VersionRows)
		},
	}
	owner.register(cmd)
	cmd.Flags().StringVar(&state, "state", "", "active or deleted")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Results per page (max 100)")
	return cmd
}

func newPackagesDeleteVersionCommand(e *env) *cobra.Command {
	var owner ownerFlags
	cmd := &cobra.Command{
		Use:   "delete-version <type> <name> [<version-id>]",
		Short: "Delete a package version, picking one interactively when no id is given",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 3 {
				if _, err := parseID("version id", args[2]); err != nil {
					return err
				}
			}
			client, err := e.client()
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}
			target := service.PackageTarget{
				Owner: owner.owner(),
				Type:  models.PackageType(args[0]),
				Name:  args[1],
			}
			cleanup := service.NewCleanupService(client.Packages, e.prompter)
			if err := cleanup.ValidateTarget(target); err != nil {
				return invalidArgument(err.Error())
			}
			id, err := cleanup.ProcessDeletion(cmd.Context(), target, args[2:])
			if err != nil {
				return err
			}
			e.printer().Status("Deleted version %d of %s/%s", id, target.Type, target.Name)
			return nil
		},
	}
	owner.register(cmd)
	return cmd
}

func newPackagesRestoreCommand(e *env) *cobra.Command {
	var (
		owner ownerFlags
		token string
	)
	cmd := &cobra.Command{
		Use:   "restore <type> <name> [<version-id>]",
		Short: "Restore a deleted package, or one of its versions",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePackageType(args[0])
			if err != nil {
				return err
			}
			client, err := e.client()
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}

			if len(args) == 3 {
				id, err := parseID("version id", args[2])
				if err != nil {
					return err
				}
				ok, err := client.Packages.RestoreVersion(cmd.Context(), owner.owner(), pt, args[1], id, nil)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("version %d was not restored", id)
				}
				e.printer().Status("Restored version %d of %s/%s", id, pt, args[1])
				return nil
			}

			ok, err := client.Packages.Restore(cmd.Context(), owner.owner(), pt, args[1], token, nil)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("package %s/%s was not restored", pt, args[1])
			}
			e.printer().Status("Restored %s/%s", pt, args[1])
			return nil
		},
	}
	owner.register(cmd)
	cmd.Flags().StringVar(&token, "token", "", "Package token returned when the package was deleted")
	return cmd
}

func parsePackageType(s string) (models.PackageType, error) {
	pt := models.PackageType(s)
	if !pt.Valid() {
		return "", invalidArgument(fmt.Sprintf("unknown package type %q", s))
	}
	return pt, nil
}

// request resolves the client and request options for owner scoped commands
func (e *env) request() (*github.Client, *github.RequestOptions, error) {
	reqOpts, err := e.requestOptions()
	if err != nil {
		return nil, nil, err
	}
	client, err := e.client()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, reqOpts, nil
}
