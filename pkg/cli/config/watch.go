package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
	"github.com/relwatchhq/relwatch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Watch holds the batch run configuration: the repository list sources and
// the run toggles
type Watch struct {
	Repos      []string
	ConfigPath string
	StatePath  string
	DryRun     bool
	Force      bool
	Timeout    time.Duration
}

// Flags returns CLI flags for the watch command
func (c *Watch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "repo",
			Aliases:     []string{"r"},
			Usage:       "Repository to watch as owner/name (repeatable)",
			Destination: &c.Repos,
			Sources:     cli.EnvVars("RELWATCH_REPOS"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "JSON config file with a repos array",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("RELWATCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "state",
			Usage:       "State file path",
			Value:       "relwatch-state.json",
			Destination: &c.StatePath,
			Sources:     cli.EnvVars("RELWATCH_STATE"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Decide and report but never send; state still updates",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("RELWATCH_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Bypass the cache validator and treat every fetched release as new",
			Destination: &c.Force,
			Sources:     cli.EnvVars("RELWATCH_FORCE"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-repository timeout for fetch and send",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("RELWATCH_TIMEOUT"),
		},
	}
}

// configFile is the JSON config document shape
type configFile struct {
	Repos []string `json:"repos"`
}

// RepoList assembles the ordered repository list: command-line entries
// first, config-file entries appended, no de-duplication. Returns
// types.ErrNoRepositories when both sources are empty.
func (c *Watch) RepoList() ([]model.RepoID, error) {
	specs := append([]string{}, c.Repos...)

	if c.ConfigPath != "" {
		data, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigPath))
		}

		var cf configFile
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigPath))
		}

		specs = append(specs, cf.Repos...)
	}

	if len(specs) == 0 {
		return nil, goerr.Wrap(types.ErrNoRepositories, "supply --repo or --config")
	}

	repos := make([]model.RepoID, 0, len(specs))
	for _, spec := range specs {
		repo, err := model.ParseRepoID(spec)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	return repos, nil
}
