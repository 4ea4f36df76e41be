package engine

// Status represents the session state machine:
// Forming -> Drafting -> Active -> Finished (terminal).
type Status int

const (
	StatusForming Status = iota
	StatusDrafting
	StatusActive
	StatusFinished
)

var statusNames = map[Status]string{
	StatusForming:  "Forming",
	StatusDrafting: "Drafting",
	StatusActive:   "Active",
	StatusFinished: "Finished",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}
