package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
	"github.com/relwatchhq/relwatch/pkg/usecase"
)

// mockStore is a mock implementation of interfaces.StateStore
type mockStore struct {
	loadFunc func(ctx context.Context) (*model.StateDocument, error)
	saveFunc func(ctx context.Context, doc *model.StateDocument) error
	saved    []*model.StateDocument
}

func (m *mockStore) Load(ctx context.Context) (*model.StateDocument, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return model.NewStateDocument(), nil
}

func (m *mockStore) Save(ctx context.Context, doc *model.StateDocument) error {
	m.saved = append(m.saved, doc)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, doc)
	}
	return nil
}

func mustRepo(t *testing.T, s string) model.RepoID {
	t.Helper()
	repo, err := model.ParseRepoID(s)
	gt.NoError(t, err)
	return repo
}

func TestRunner_ErrorIsolation(t *testing.T) {
	// Three repositories; the second one fails to fetch. The first and
	// third still get their normal outcome and all three end up with an
	// updated checked timestamp in the saved state.
	source := &mockSource{
		latestFunc: func(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error) {
			switch repo.Name {
			case "broken":
				return nil, errors.New("boom")
			default:
				return foundResult(&model.Release{ID: 10, TagName: "v1.0.0"}, `"e"`), nil
			}
		},
	}
	notifier := &mockNotifier{}
	store := &mockStore{}

	rec := usecase.NewReconciler(source, notifier, usecase.WithClock(fixedClock))

	var out bytes.Buffer
	runner := usecase.NewRunner(store, rec, usecase.WithOutput(&out))

	repos := []model.RepoID{
		mustRepo(t, "octo/first"),
		mustRepo(t, "octo/broken"),
		mustRepo(t, "octo/third"),
	}

	summary, err := runner.Run(context.Background(), repos)
	gt.NoError(t, err)

	gt.Value(t, summary.Total).Equal(3)
	gt.Value(t, summary.Notified).Equal(2)
	gt.Value(t, summary.Errored).Equal(1)

	gt.Number(t, len(notifier.calls)).Equal(2)

	// State saved exactly once, covering all three repositories
	gt.Number(t, len(store.saved)).Equal(1)
	doc := store.saved[0]
	for _, name := range []string{"octo/first", "octo/broken", "octo/third"} {
		st := doc.Repos[name]
		gt.Value(t, st).NotNil()
		gt.Value(t, st.LastCheckedAt).NotNil()
	}
	gt.Value(t, doc.Repos["octo/broken"].LastNotifiedID).Nil()
	gt.Value(t, *doc.Repos["octo/first"].LastNotifiedID).Equal(int64(10))

	gt.String(t, out.String()).Contains("octo/broken: error")
	gt.String(t, out.String()).Contains("2 of 3 repositories with a new release")
}

func TestRunner_DuplicatesProcessedTwice(t *testing.T) {
	source := &mockSource{
		latestFunc: func(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error) {
			return foundResult(&model.Release{ID: 10, TagName: "v1.0.0"}, `"e"`), nil
		},
	}
	notifier := &mockNotifier{}
	store := &mockStore{}

	rec := usecase.NewReconciler(source, notifier, usecase.WithClock(fixedClock))

	var out bytes.Buffer
	runner := usecase.NewRunner(store, rec, usecase.WithOutput(&out))

	repo := mustRepo(t, "octo/demo")
	summary, err := runner.Run(context.Background(), []model.RepoID{repo, repo})
	gt.NoError(t, err)

	// Both visits share the same state record: the second pass sees the
	// release already tracked
	gt.Value(t, summary.Total).Equal(2)
	gt.Value(t, summary.Notified).Equal(1)
	gt.Number(t, len(source.calls)).Equal(2)
	gt.Number(t, len(notifier.calls)).Equal(1)
}

func TestRunner_SaveFailureIsFatal(t *testing.T) {
	source := &mockSource{
		latestFunc: func(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error) {
			return &model.FetchResult{NoReleases: true}, nil
		},
	}
	store := &mockStore{
		saveFunc: func(ctx context.Context, doc *model.StateDocument) error {
			return errors.New("disk full")
		},
	}

	rec := usecase.NewReconciler(source, &mockNotifier{}, usecase.WithClock(fixedClock))

	var out bytes.Buffer
	runner := usecase.NewRunner(store, rec, usecase.WithOutput(&out))

	_, err := runner.Run(context.Background(), []model.RepoID{mustRepo(t, "octo/demo")})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to save state")
}

func TestRunner_StatusLines(t *testing.T) {
	source := &mockSource{
		latestFunc: func(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error) {
			switch repo.Name {
			case "quiet":
				return &model.FetchResult{NoReleases: true}, nil
			case "cached":
				return &model.FetchResult{NotModified: true}, nil
			default:
				return foundResult(&model.Release{ID: 10, TagName: "v1.0.0"}, `"e"`), nil
			}
		},
	}
	store := &mockStore{}

	rec := usecase.NewReconciler(source, &mockNotifier{}, usecase.WithClock(fixedClock))

	var out bytes.Buffer
	runner := usecase.NewRunner(store, rec, usecase.WithOutput(&out))

	repos := []model.RepoID{
		mustRepo(t, "octo/quiet"),
		mustRepo(t, "octo/cached"),
		mustRepo(t, "octo/fresh"),
	}

	_, err := runner.Run(context.Background(), repos)
	gt.NoError(t, err)

	gt.String(t, out.String()).Contains("octo/quiet: no-releases")
	gt.String(t, out.String()).Contains("octo/cached: unchanged")
	gt.String(t, out.String()).Contains("octo/fresh: notified v1.0.0")
}
