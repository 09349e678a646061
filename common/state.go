package common

// Power is the reported power state of a controller.  The known firmware
// revision only identifies a single status byte as powered on, so any other
// value is reported as unknown rather than guessed.
type Power int

const (
	// PowerUnknown indicates the controller reported a status byte this
	// protocol revision does not recognise
	PowerUnknown Power = iota
	// PowerOff indicates the controller is powered off
	PowerOff
	// PowerOn indicates the controller is powered on
	PowerOn
)

func (p Power) String() string {
	switch p {
	case PowerOn:
		return `on`
	case PowerOff:
		return `off`
	}
	return `unknown`
}

// State is a full controller snapshot, pairing the power state with the
// color channels.
type State struct {
	Power Power
	Color ColorState
}

// On reports whether the controller is known to be powered on.
func (s State) On() bool {
	return s.Power == PowerOn
}
