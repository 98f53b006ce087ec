package analysis

// Analysis lifecycle states for an outfit record. A record is created as
// pending by the upload path and moved to exactly one terminal state by the
// driver. Terminal states never transition again.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}
