package common

// Controller represents a single MagicHome device on the LAN
type Controller interface {
	// Addr returns the network address of the controller, which also acts
	// as its unique key
	Addr() string
	// ID returns the device id reported during discovery
	ID() string
	// Model returns the model string reported during discovery
	Model() string

	// TurnOn powers the controller on
	TurnOn() error
	// TurnOff powers the controller off
	TurnOff() error
	// PowerToggle flips the power state.  A controller whose state can not
	// be determined is treated as off, so toggling it turns it on
	PowerToggle() error
	// Power queries the controller and returns its reported power state
	Power() (Power, error)
	// SetColor changes the color output of the controller
	SetColor(color ColorState) error
	// State queries the controller for a full snapshot
	State() (State, error)
	// SetState pushes a desired snapshot to the controller.  A target state
	// that is not powered on turns the controller off without pushing color
	SetState(state State) error
}
