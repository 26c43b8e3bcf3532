package model

// FetchOptions carries the conditional-request inputs for one fetch.
type FetchOptions struct {
	// ETag is the cache validator from a prior fetch. When set, it is sent
	// as a precondition so the source can answer "not modified" cheaply.
	ETag string
}

// FetchResult is the outcome of one latest-release fetch. Exactly one of
// NotModified, NoReleases, or Release is set.
type FetchResult struct {
	NotModified bool     // The validator matched; no record follows
	NoReleases  bool     // The repository has never published a release
	Release     *Release // The latest release record
	ETag        string   // New cache validator (empty if the source omitted one)
}
