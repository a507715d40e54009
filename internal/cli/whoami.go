package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-rest-bindings/internal/output"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqOpts, err := e.requestOptions()
			if err != nil {
				return err
			}
			client, err := e.client()
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}
			user, err := client.Viewer.Login(cmd.Context())
			if err != nil {
				return err
			}
			// The viewer comes from GraphQL, so --format applies to the user re-encoded as JSON
			body, err := json.Marshal(user)
			if err != nil {
				return fmt.Errorf("failed to encode user: %w", err)
			}
			res, err := github.NewResult[models.User](body, http.StatusOK, reqOpts.Format)
			if err != nil {
				return err
			}
			return output.Print(e.printer(), res, output.UserRow)
		},
	}
}
