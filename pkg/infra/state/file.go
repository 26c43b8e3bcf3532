package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// FileStore persists the state document as a single human-readable JSON
// file
type FileStore struct {
	path string
}

// NewFileStore creates a state store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state document. A missing, unreadable, or corrupt file
// degrades to an empty document: prior state is recoverable on the next
// successful save, so losing it is never fatal.
func (s *FileStore) Load(ctx context.Context) (*model.StateDocument, error) {
	logger := ctxlog.From(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No state file, starting empty", "path", s.path)
		} else {
			logger.Warn("Failed to read state file, starting empty",
				"path", s.path,
				"error", err,
			)
		}
		return model.NewStateDocument(), nil
	}

	var doc model.StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Failed to parse state file, starting empty",
			"path", s.path,
			"error", err,
		)
		return model.NewStateDocument(), nil
	}

	if doc.Repos == nil {
		doc.Repos = make(map[string]*model.RepoState)
	}

	return &doc, nil
}

// Save writes the whole state document atomically via temp file + rename
func (s *FileStore) Save(ctx context.Context, doc *model.StateDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal state document")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create state directory", goerr.V("dir", dir))
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write state temp file", goerr.V("path", tmpPath))
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace state file", goerr.V("path", s.path))
	}

	return nil
}
