package model

import "time"

// Release represents the latest release record fetched from the release
// source. It is immutable once fetched.
type Release struct {
	ID          int64     // Numeric identifier, unique per repository
	TagName     string    // Release tag name
	Name        string    // Display name (optional)
	HTMLURL     string    // Canonical URL of the release page
	PublishedAt time.Time // Publication timestamp
	Body        string    // Release notes (optional)
	Author      string    // Author handle (optional)
}
