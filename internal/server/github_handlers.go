package server

import (
	"context"
	"net/http"

	"devconnector/internal/cache"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-github/github"
)

// githubRepo is the trimmed repository view returned to clients.
type githubRepo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Watchers    int    `json:"watchers_count"`
}

// GetGithubRepos handles GET /api/profile/github/:username. Results are
// cached so bursts of profile views do not burn the GitHub API quota.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return respondError(c, models.NewValidationError("Username is required"))
	}

	var repos []githubRepo
	err := cache.Aside(c.UserContext(), cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := s.fetchGithubRepos(c.UserContext(), username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repos)
}

// fetchGithubRepos lists the user's five most recently created public repos.
func (s *Server) fetchGithubRepos(ctx context.Context, username string) ([]githubRepo, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 5},
	}

	fetched, resp, err := s.github.Repositories.List(ctx, username, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "No Github profile found."}
		}
		return nil, models.NewInternalError(err)
	}

	repos := make([]githubRepo, 0, len(fetched))
	for _, r := range fetched {
		repos = append(repos, githubRepo{
			Name:        r.GetName(),
			HTMLURL:     r.GetHTMLURL(),
			Description: r.GetDescription(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Watchers:    r.GetWatchersCount(),
		})
	}
	return repos, nil
}
