package config

import "github.com/urfave/cli/v3"

// GitHub holds release source configuration
type GitHub struct {
	Token   string
	BaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (classic or fine-grained)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELWATCH_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Value:       "https://api.github.com",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELWATCH_GITHUB_API_URL"),
		},
	}
}
