package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RepoID identifies a monitored repository as owner/name. It is the lookup
// key into the persisted state document.
type RepoID struct {
	Owner string
	Name  string
}

// ParseRepoID parses an "owner/name" string. Both segments must be non-empty.
func ParseRepoID(s string) (RepoID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoID{}, goerr.New("invalid repository identifier, expected owner/name",
			goerr.V("input", s),
		)
	}

	return RepoID{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the canonical owner/name form
func (r RepoID) String() string {
	return r.Owner + "/" + r.Name
}
