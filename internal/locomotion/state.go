package locomotion

// State is the discrete movement classification for one character. Exactly
// one value is active at any time; zero value is Idling.
type State uint8

const (
	Idling State = iota
	Walking
	Running
	Sprinting
	Jumping
	Falling
	Strafing
)

func (s State) String() string {
	switch s {
	case Idling:
		return "idling"
	case Walking:
		return "walking"
	case Running:
		return "running"
	case Sprinting:
		return "sprinting"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	case Strafing:
		return "strafing"
	default:
		return "unknown"
	}
}
