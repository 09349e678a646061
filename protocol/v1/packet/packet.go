// Package packet implements the fixed-format MagicHome command frames.
//
// Every frame is a short byte string: three of the four commands are
// literal constants, and the set-color command carries the four channel
// values followed by a single checksum byte.  The query-state reply is the
// only decoded frame.
package packet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lunixbochs/struc"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol/v1/shared"
)

const (
	setColorHead = 0x31
	setColorTail = 0x0f

	// statusOn is the only status byte the known firmware reports for a
	// powered on controller; anything else decodes as PowerUnknown
	statusOn = 0x23

	// minStateResponse is the smallest reply that carries the documented
	// status and channel offsets
	minStateResponse = 10
)

var (
	turnOnFrame  = []byte{0x71, 0x23, 0x94}
	turnOffFrame = []byte{0x71, 0x24, 0x95}
	queryFrame   = []byte{0x81, 0x8a, 0x8b, 0x96}
)

// payloadColor is the body of a set-color frame, before the checksum byte
type payloadColor struct {
	Head  uint8 `struc:"little"`
	Red   uint8 `struc:"little"`
	Green uint8 `struc:"little"`
	Blue  uint8 `struc:"little"`
	White uint8 `struc:"little"`
	Tail  uint8 `struc:"little"`
}

// stateResponse is the leading layout of a query-state reply
type stateResponse struct {
	Head   uint8 `struc:"little"`
	Model  uint8 `struc:"little"`
	Status uint8 `struc:"little"`
	Mode   uint8 `struc:"little"`
	Paused uint8 `struc:"little"`
	Speed  uint8 `struc:"little"`
	Red    uint8 `struc:"little"`
	Green  uint8 `struc:"little"`
	Blue   uint8 `struc:"little"`
	White  uint8 `struc:"little"`
}

// TurnOn returns the frame that powers a controller on
func TurnOn() []byte {
	return append([]byte(nil), turnOnFrame...)
}

// TurnOff returns the frame that powers a controller off
func TurnOff() []byte {
	return append([]byte(nil), turnOffFrame...)
}

// QueryState returns the frame that requests a state snapshot
func QueryState() []byte {
	return append([]byte(nil), queryFrame...)
}

// SetColor returns the frame that sets the four output channels.  Channel
// values outside [0,255] are clamped before encoding.  The final byte is
// the checksum of the six preceding bytes, making the frame 7 bytes long.
func SetColor(r, g, b, w int) []byte {
	color := common.NewColorState(r, g, b, w)
	p := payloadColor{
		Head:  setColorHead,
		Red:   color.R,
		Green: color.G,
		Blue:  color.B,
		White: color.W,
		Tail:  setColorTail,
	}
	buf := new(bytes.Buffer)
	// Pack can not fail here, payloadColor has only fixed-width fields
	_ = struc.Pack(buf, &p)
	frame := buf.Bytes()
	return append(frame, Checksum(frame))
}

// DecodeState parses a query-state reply into a controller snapshot.
// Replies shorter than the documented 10 byte layout fail with
// common.ErrMalformedResponse.  Only the single observed status byte maps
// to a powered on state; any other value reports PowerUnknown rather than
// guessing at off.  Incoming checksums are not validated.
func DecodeState(data []byte) (common.State, error) {
	if len(data) < minStateResponse {
		return common.State{}, fmt.Errorf(`%w: state reply is %d bytes, want at least %d`,
			common.ErrMalformedResponse, len(data), minStateResponse)
	}
	resp := stateResponse{}
	if err := struc.Unpack(bytes.NewReader(data), &resp); err != nil {
		return common.State{}, fmt.Errorf(`%w: %v`, common.ErrMalformedResponse, err)
	}
	state := common.State{
		Color: common.ColorState{R: resp.Red, G: resp.Green, B: resp.Blue, W: resp.White},
	}
	if resp.Status == statusOn {
		state.Power = common.PowerOn
	}
	return state, nil
}

// Checksum returns the single-byte modular sum of data: the sum of all
// bytes truncated to the low 8 bits.  Encoders append it after the frame
// body; it is exported so callers that want to validate incoming frames can
// recompute it the same way.
func Checksum(data []byte) byte {
	sum := 0
	for _, b := range data {
		sum += int(b)
	}
	return byte(sum & 0xff)
}

// Probe returns the discovery handshake message
func Probe() []byte {
	return []byte(shared.DiscoveryProbe)
}

// IsProbeEcho reports whether data is the discovery probe itself.  On some
// networks the sender receives its own broadcast back, and those datagrams
// must not be mistaken for controller replies.
func IsProbeEcho(data []byte) bool {
	return bytes.Equal(data, []byte(shared.DiscoveryProbe))
}

// ParseIdentity parses a discovery reply of the form "addr,id,model"
func ParseIdentity(data []byte) (addr, id, model string, err error) {
	fields := strings.Split(string(data), `,`)
	if len(fields) != 3 {
		return ``, ``, ``, fmt.Errorf(`%w: discovery reply %q has %d fields, want 3`,
			common.ErrMalformedResponse, data, len(fields))
	}
	return fields[0], fields[1], fields[2], nil
}
