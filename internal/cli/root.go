package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryo246912/gh-rest-bindings/internal/config"
	"github.com/ryo246912/gh-rest-bindings/internal/output"
	"github.com/ryo246912/gh-rest-bindings/internal/ui"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
)

// version is set at build time via ldflags.
var version = "dev"

type rootOptions struct {
	ConfigFile string
	LogLevel   string
	Repo       string
	Hostname   string
	Format     string
	JQ         string
}

// env carries what subcommands need once flags and config are resolved
type env struct {
	v    *viper.Viper
	opts rootOptions
	cfg  config.Config

	logger      zerolog.Logger
	stdout      io.Writer
	logOut      io.Writer
	transport   http.RoundTripper
	prompter    ui.Prompter
	currentRepo func() (repository.Repository, error)
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(classify(err)))
	}
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&env{
		v:           config.New(),
		logOut:      os.Stderr,
		prompter:    &ui.DefaultPrompter{},
		currentRepo: repository.Current,
	})
}

func newRootCommandWith(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gh-rest-bindings",
		Short:        "Work with GitHub check runs and packages",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Read(e.v, e.opts.ConfigFile); err != nil {
				return err
			}
			e.cfg = config.Load(e.v)
			e.logger = config.SetupLogging(e.cfg.LogLevel, e.logOut)
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&e.opts.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&e.opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVarP(&e.opts.Repo, "repo", "R", "", "Repository as OWNER/REPO (defaults to the current repository)")
	flags.StringVar(&e.opts.Hostname, "hostname", "", "GitHub host (defaults to github.com)")
	flags.StringVar(&e.opts.Format, "format", "typed", "Response format (typed, json or raw)")
	flags.StringVarP(&e.opts.JQ, "jq", "q", "", "Filter output with a jq expression")
	_ = e.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = e.v.BindPFlag(config.KeyRepo, flags.Lookup("repo"))
	_ = e.v.BindPFlag(config.KeyHost, flags.Lookup("hostname"))
	_ = e.v.BindPFlag(config.KeyFormat, flags.Lookup("format"))

	cmd.AddCommand(newWhoamiCommand(e))
	cmd.AddCommand(newChecksCommand(e))
	cmd.AddCommand(newPackagesCommand(e))
	return cmd
}

func (e *env) client() (*github.Client, error) {
	logger := e.logger
	return github.NewClient(github.ClientOptions{
		Host:      e.cfg.Host,
		AuthToken: e.cfg.Token,
		Timeout:   e.cfg.Timeout,
		Transport: e.transport,
		Logger:    &logger,
	})
}

func (e *env) repo() (github.Repository, error) {
	if e.cfg.Repo != "" {
		r, err := github.ParseRepo(e.cfg.Repo)
		if err != nil {
			return github.Repository{}, invalidArgument(err.Error())
		}
		return r, nil
	}
	current, err := e.currentRepo()
	if err != nil {
		return github.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("could not determine repository; pass --repo OWNER/REPO").
			WithCause(err)
	}
	return github.Repo(current.Owner, current.Name), nil
}

func (e *env) requestOptions() (*github.RequestOptions, error) {
	format, err := github.ParseFormat(e.cfg.Format)
	if err != nil {
		return nil, invalidArgument(err.Error())
	}
	return &github.RequestOptions{Format: format}, nil
}

func (e *env) printer() *output.Printer {
	if e.stdout != nil {
		return output.NewWriter(e.stdout, false, 80, e.opts.JQ)
	}
	return output.New(term.FromEnv(), e.opts.JQ)
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidArgument(fmt.Sprintf("invalid %s %q", name, s))
	}
	return id, nil
}

func invalidArgument(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

// classify attaches an error code to API and validation failures
func classify(err error) error {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return err
	}

	var httpErr *api.HTTPError
	var statusErr *github.StatusError
	switch {
	case errors.Is(err, github.ErrMissingParam):
		return withCode(errbuilder.CodeInvalidArgument, err)
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return withCode(errbuilder.CodeNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return withCode(errbuilder.CodePermissionDenied, err)
		case http.StatusUnprocessableEntity:
			return withCode(errbuilder.CodeInvalidArgument, err)
		}
		return withCode(errbuilder.CodeInternal, err)
	case errors.As(err, &statusErr):
		return withCode(errbuilder.CodeInternal, err)
	}
	return err
}

func withCode(code errbuilder.ErrCode, err error) error {
	return errbuilder.New().
		WithCode(code).
		WithMsg(err.Error()).
		WithCause(err)
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeFailedPrecondition:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}
