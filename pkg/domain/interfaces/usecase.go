package interfaces

import (
	"context"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// Reconciler runs one reconciliation cycle for a repository: fetch, decide,
// and update the in-memory state record. Failures are folded into the
// returned result, never propagated.
type Reconciler interface {
	Reconcile(ctx context.Context, repo model.RepoID, st *model.RepoState) model.Result
}
