package model

// Outcome classifies the terminal result of one reconciliation cycle
type Outcome string

const (
	OutcomeUnchanged      Outcome = "unchanged"       // Validator matched, nothing fetched
	OutcomeNoReleases     Outcome = "no-releases"     // Repository has never published a release
	OutcomeAlreadyTracked Outcome = "already-tracked" // Fetched release matches the last notified one
	OutcomeNotified       Outcome = "notified"        // New release detected and notification sent
	OutcomeWouldNotify    Outcome = "would-notify"    // New release detected, send skipped (dry run)
	OutcomeError          Outcome = "error"           // Fetch or send failed for this repository
)

// Result is the per-repository reconciliation result consumed by the
// runner. Errors are carried here rather than propagated, so one failing
// repository never interrupts the batch.
type Result struct {
	Repo    RepoID
	Outcome Outcome
	Release *Release
	Err     error
}
