package action

// Mode selects how key presses are translated.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
)

func (m Mode) String() string {
	if m == ModeInput {
		return "input"
	}
	return "normal"
}
