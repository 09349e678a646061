package common

// EventNewController is emitted by a Client when discovery finds a new
// Controller
type EventNewController struct {
	Controller Controller
}

// EventExpiredController is emitted by a Client when a Controller has not
// been seen by discovery for too long and is no longer known
type EventExpiredController struct {
	Controller Controller
}
