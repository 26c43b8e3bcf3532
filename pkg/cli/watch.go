package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/cli/config"
	"github.com/relwatchhq/relwatch/pkg/domain/types"
	githubinfra "github.com/relwatchhq/relwatch/pkg/infra/github"
	"github.com/relwatchhq/relwatch/pkg/infra/mail"
	"github.com/relwatchhq/relwatch/pkg/infra/state"
	"github.com/relwatchhq/relwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var (
		watchCfg  config.Watch
		githubCfg config.GitHub
		mailCfg   config.Mail
	)

	flags := append(watchCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, mailCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Run one pass over the repository list",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString()))
			ctx = ctxlog.With(ctx, logger)

			repos, err := watchCfg.RepoList()
			if err != nil {
				if errors.Is(err, types.ErrNoRepositories) {
					_ = cli.ShowSubcommandHelp(c)
				}
				return err
			}

			if err := mailCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid mail configuration")
			}

			logger.Info("Starting watch pass",
				slog.Int("repos", len(repos)),
				slog.Bool("dry_run", watchCfg.DryRun),
				slog.Bool("force", watchCfg.Force),
			)

			source := githubinfra.NewClient(
				githubinfra.WithToken(githubCfg.Token),
				githubinfra.WithBaseURL(githubCfg.BaseURL),
			)

			notifier := mail.NewNotifier(newSender(&mailCfg), mailCfg.From, mailCfg.Recipients())

			reconciler := usecase.NewReconciler(source, notifier,
				usecase.WithDryRun(watchCfg.DryRun),
				usecase.WithForce(watchCfg.Force),
			)

			runner := usecase.NewRunner(
				state.NewFileStore(watchCfg.StatePath),
				reconciler,
				usecase.WithTimeout(watchCfg.Timeout),
			)

			summary, err := runner.Run(ctx, repos)
			if err != nil {
				return goerr.Wrap(err, "watch pass failed")
			}

			if summary.Errored > 0 {
				return goerr.New("completed with repository errors",
					goerr.V("errored", summary.Errored),
					goerr.V("total", summary.Total),
				)
			}

			return nil
		},
	}
}

// newSender resolves the provider variant once; SendGrid takes priority
// when both configurations are present
func newSender(cfg *config.Mail) mail.Sender {
	switch cfg.Provider() {
	case config.ProviderSendGrid:
		return mail.NewSendGrid(cfg.SendGridAPIKey)
	case config.ProviderSMTP:
		return mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Secure:   cfg.SMTPSecure,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
		})
	default:
		return mail.NewUnconfigured()
	}
}
