package entity

// Mode selects which review pipeline an upload runs through.
type Mode string

const (
	ModeLegal   Mode = "legal"
	ModeCreator Mode = "creator"
)

func (m Mode) Valid() bool {
	return m == ModeLegal || m == ModeCreator
}

// Session is the per-browser-session state: whether the password gate was
// passed and which pipeline mode is active. Lives only in process memory.
type Session struct {
	ID       string
	LoggedIn bool
	Mode     Mode
}
