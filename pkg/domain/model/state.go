package model

import "time"

// RepoState is the persisted per-repository record. The last-notified
// fields form a triple that is only ever written together via MarkNotified,
// so the identifier and tag never disagree about which release was last
// notified.
type RepoState struct {
	ETag                    string     `json:"etag,omitempty"`
	LastNotifiedID          *int64     `json:"last_notified_id,omitempty"`
	LastNotifiedTag         string     `json:"last_notified_tag,omitempty"`
	LastNotifiedPublishedAt *time.Time `json:"last_notified_published_at,omitempty"`
	LastCheckedAt           *time.Time `json:"last_checked_at,omitempty"`
}

// Touch advances only the checked timestamp
func (s *RepoState) Touch(now time.Time) {
	s.LastCheckedAt = &now
}

// CatchUp replaces the cache validator and advances the checked timestamp,
// leaving the notified triple untouched. An empty etag clears the stored
// validator (the source stopped supplying one).
func (s *RepoState) CatchUp(etag string, now time.Time) {
	s.ETag = etag
	s.Touch(now)
}

// MarkNotified records a notified release: the notified triple, the new
// cache validator, and the checked timestamp replace the prior values as a
// single unit.
func (s *RepoState) MarkNotified(rel *Release, etag string, now time.Time) {
	id := rel.ID
	publishedAt := rel.PublishedAt

	s.LastNotifiedID = &id
	s.LastNotifiedTag = rel.TagName
	s.LastNotifiedPublishedAt = &publishedAt
	s.CatchUp(etag, now)
}

// StateDocument is the whole persisted state: one JSON object mapping
// repository identifiers to their state records.
type StateDocument struct {
	Repos map[string]*RepoState `json:"repos"`
}

// NewStateDocument returns an empty state document
func NewStateDocument() *StateDocument {
	return &StateDocument{
		Repos: make(map[string]*RepoState),
	}
}

// Get returns the state record for a repository, materializing an empty
// record in the document for repositories not seen before.
func (d *StateDocument) Get(repo RepoID) *RepoState {
	if d.Repos == nil {
		d.Repos = make(map[string]*RepoState)
	}

	key := repo.String()
	if st, ok := d.Repos[key]; ok {
		return st
	}

	st := &RepoState{}
	d.Repos[key] = st
	return st
}
