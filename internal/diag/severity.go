package diag

// Severity grades a diagnostic. Nothing here is fatal: an error means the
// line degraded to its raw shape, a warning means the parse succeeded on a
// repaired input (an unterminated literal, a mismatched loop marker), and
// info carries advisory notes.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String renders the level the way the printer heads a diagnostic.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
