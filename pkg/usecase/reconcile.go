package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/interfaces"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

type reconciler struct {
	source   interfaces.ReleaseSource
	notifier interfaces.Notifier
	dryRun   bool
	force    bool
	now      func() time.Time
}

// ReconcilerOption is a functional option for reconciler configuration
type ReconcilerOption func(*reconciler)

// WithDryRun makes the reconciler skip the actual send while still running
// all decision and state logic
func WithDryRun(dryRun bool) ReconcilerOption {
	return func(r *reconciler) {
		r.dryRun = dryRun
	}
}

// WithForce bypasses the cache validator and treats every fetched release
// as new
func WithForce(force bool) ReconcilerOption {
	return func(r *reconciler) {
		r.force = force
	}
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *reconciler) {
		r.now = now
	}
}

// NewReconciler creates the core reconciler combining fetch results with
// stored state
func NewReconciler(source interfaces.ReleaseSource, notifier interfaces.Notifier, opts ...ReconcilerOption) interfaces.Reconciler {
	r := &reconciler{
		source:   source,
		notifier: notifier,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile runs one fetch-decide-update cycle for a repository. The state
// record is mutated in place; errors are folded into the result so one
// failing repository never interrupts the batch.
func (r *reconciler) Reconcile(ctx context.Context, repo model.RepoID, st *model.RepoState) model.Result {
	logger := ctxlog.From(ctx)
	now := r.now()

	// Force always revalidates fully, so the stored validator is suppressed
	etag := st.ETag
	if r.force {
		etag = ""
	}

	fetched, err := r.source.LatestRelease(ctx, repo, model.FetchOptions{ETag: etag})
	if err != nil {
		st.Touch(now)
		return model.Result{
			Repo:    repo,
			Outcome: model.OutcomeError,
			Err:     goerr.Wrap(err, "fetch failed", goerr.V("repo", repo.String())),
		}
	}

	switch {
	case fetched.NotModified:
		logger.Debug("Release unchanged", "repo", repo.String())
		st.Touch(now)
		return model.Result{Repo: repo, Outcome: model.OutcomeUnchanged}

	case fetched.NoReleases:
		// The repository may publish its first release later; keep the
		// record otherwise untouched
		logger.Debug("No releases published", "repo", repo.String())
		st.Touch(now)
		return model.Result{Repo: repo, Outcome: model.OutcomeNoReleases}
	}

	rel := fetched.Release

	// Either an id or a tag change triggers a notification: the source may
	// rewrite a release under a new tag keeping the id, or reuse a tag
	// under a new id
	isNew := r.force ||
		st.LastNotifiedID == nil ||
		*st.LastNotifiedID != rel.ID ||
		st.LastNotifiedTag != rel.TagName

	if !isNew {
		// State still catches up on the validator, so a transient id/tag
		// edit without a real new release is not re-notified later
		st.CatchUp(fetched.ETag, now)
		return model.Result{Repo: repo, Outcome: model.OutcomeAlreadyTracked, Release: rel}
	}

	if r.dryRun {
		// A dry run consumes the novelty so the run is observable in state
		st.MarkNotified(rel, fetched.ETag, now)
		return model.Result{Repo: repo, Outcome: model.OutcomeWouldNotify, Release: rel}
	}

	if err := r.notifier.Notify(ctx, repo, rel); err != nil {
		// The notified triple is written only after a confirmed send; a
		// failed send leaves the release eligible for the next run
		st.Touch(now)
		return model.Result{
			Repo:    repo,
			Outcome: model.OutcomeError,
			Release: rel,
			Err:     goerr.Wrap(err, "send failed", goerr.V("repo", repo.String())),
		}
	}

	st.MarkNotified(rel, fetched.ETag, now)
	return model.Result{Repo: repo, Outcome: model.OutcomeNotified, Release: rel}
}
