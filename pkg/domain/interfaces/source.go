package interfaces

import (
	"context"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// ReleaseSource defines operations for retrieving release metadata from the
// release-hosting API
type ReleaseSource interface {
	// LatestRelease fetches the latest release of a repository. When
	// opts.ETag is set it is sent as a conditional-request precondition,
	// and a validator match yields a NotModified result without a record.
	LatestRelease(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error)
}
