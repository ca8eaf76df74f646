package diag

// Severity ranks diagnostics. The order is meaningful: comparisons like
// sev >= SevError drive exit codes and output filtering, so new levels must
// keep the ascending arrangement.
type Severity uint8

const (
	// SevInfo marks purely informational output, never a style violation.
	SevInfo Severity = iota
	// SevWarning marks a violation that does not fail the run (W-codes).
	SevWarning
	// SevError marks a violation that fails the run (E-codes, IO errors).
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
