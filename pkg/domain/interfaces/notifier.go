package interfaces

import (
	"context"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// Notifier renders and dispatches a notification for a newly detected
// release
type Notifier interface {
	Notify(ctx context.Context, repo model.RepoID, rel *model.Release) error
}
