package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/interfaces"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// Summary aggregates the outcomes of one pass over the repository list
type Summary struct {
	Total    int
	Notified int
	Errored  int
}

// Runner visits each repository once, reconciles it, and persists the
// whole state document exactly once at the end of the pass.
type Runner struct {
	store      interfaces.StateStore
	reconciler interfaces.Reconciler
	timeout    time.Duration
	out        io.Writer
}

// RunnerOption is a functional option for Runner configuration
type RunnerOption func(*Runner)

// WithTimeout bounds each repository's fetch-and-send cycle. Zero disables
// the bound.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithOutput overrides where per-repository status lines are printed
func WithOutput(out io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = out
	}
}

// NewRunner creates a runner over the given store and reconciler
func NewRunner(store interfaces.StateStore, reconciler interfaces.Reconciler, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:      store,
		reconciler: reconciler,
		out:        os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run processes the repositories in input order. Duplicates are visited
// twice and the later outcome wins in persisted state. The returned error
// is reserved for losing the run's results (state load/save); per-repo
// failures are counted in the summary instead.
func (r *Runner) Run(ctx context.Context, repos []model.RepoID) (*Summary, error) {
	logger := ctxlog.From(ctx)

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load state")
	}

	summary := &Summary{Total: len(repos)}

	for _, repo := range repos {
		st := doc.Get(repo)

		repoCtx := ctx
		cancel := func() {}
		if r.timeout > 0 {
			repoCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}

		result := r.reconciler.Reconcile(repoCtx, repo, st)
		cancel()

		r.printStatus(result)

		switch result.Outcome {
		case model.OutcomeNotified, model.OutcomeWouldNotify:
			summary.Notified++
		case model.OutcomeError:
			summary.Errored++
			logger.Error("Repository reconciliation failed",
				"repo", repo.String(),
				"error", result.Err,
			)
		}
	}

	if err := r.store.Save(ctx, doc); err != nil {
		return summary, goerr.Wrap(err, "failed to save state")
	}

	fmt.Fprintf(r.out, "%d of %d repositories with a new release\n", summary.Notified, summary.Total)

	return summary, nil
}

// printStatus prints the one human-readable line per repository
func (r *Runner) printStatus(result model.Result) {
	tag := ""
	if result.Release != nil {
		tag = " " + result.Release.TagName
	}

	switch result.Outcome {
	case model.OutcomeNotified:
		fmt.Fprintf(r.out, "%s: %s%s\n", result.Repo, color.GreenString("notified"), tag)
	case model.OutcomeWouldNotify:
		fmt.Fprintf(r.out, "%s: %s%s\n", result.Repo, color.CyanString("would notify"), tag)
	case model.OutcomeError:
		fmt.Fprintf(r.out, "%s: %s: %v\n", result.Repo, color.RedString("error"), result.Err)
	default:
		fmt.Fprintf(r.out, "%s: %s%s\n", result.Repo, result.Outcome, tag)
	}
}
