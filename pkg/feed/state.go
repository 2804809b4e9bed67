package feed

// LoadState tracks the loading indicator of an orchestrator.
type LoadState int

const (
	NotStarted LoadState = iota
	Loading
	Settled
)

// String returns the lowercase state name.
func (s LoadState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Loading:
		return "loading"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s LoadState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
