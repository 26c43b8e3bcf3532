package interfaces

import (
	"context"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// StateStore loads and saves the durable state document
type StateStore interface {
	// Load reads the state document. A missing or unreadable document
	// degrades to an empty one; Load never fails for that reason.
	Load(ctx context.Context) (*model.StateDocument, error)

	// Save persists the whole state document. A save failure loses the
	// run's results, so callers must treat it as fatal.
	Save(ctx context.Context, doc *model.StateDocument) error
}
