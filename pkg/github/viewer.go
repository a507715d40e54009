package github

import (
	"context"
	"fmt"

	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

// ViewerService answers identity questions over GraphQL
type ViewerService struct {
	client *Client
}

// Login fetches the authenticated user
func (s *ViewerService) Login(ctx context.Context) (*models.User, error) {
	var q struct {
		Viewer struct {
			Login      string
			Name       string
			DatabaseID int64 `graphql:"databaseId"`
		}
	}
	if err := s.client.gql.QueryWithContext(ctx, "Viewer", &q, nil); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &models.User{
		Login: q.Viewer.Login,
		Name:  q.Viewer.Name,
		ID:    q.Viewer.DatabaseID,
	}, nil
}

// RepositoryID resolves the numeric id of a repository
func (s *ViewerService) RepositoryID(ctx context.Context, repo RepositoryInfo) (int64, error) {
	if repo == nil {
		return 0, fmt.Errorf("%w: repository", ErrMissingParam)
	}
	if err := requireParams("owner", repo.GetOwner(), "repo", repo.GetName()); err != nil {
		return 0, err
	}

	var q struct {
		Repository struct {
			DatabaseID int64 `graphql:"databaseId"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner": graphql.String(repo.GetOwner()),
		"name":  graphql.String(repo.GetName()),
	}
	if err := s.client.gql.QueryWithContext(ctx, "RepositoryID", &q, variables); err != nil {
		return 0, fmt.Errorf("failed to fetch repository %s/%s: %w", repo.GetOwner(), repo.GetName(), err)
	}
	return q.Repository.DatabaseID, nil
}
