// Package device implements a MagicHome protocol version 1 controller
// session.
//
// This package is not designed to be accessed by end users, all interaction
// should occur via the Client in the magichome package.
package device

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol/v1/packet"
	"github.com/magichome-go/magichome/protocol/v1/shared"
)

// Device is one addressable controller.  Every command opens a fresh TCP
// connection, writes a single frame, optionally waits for a reply, and
// closes the connection; there is no connection reuse and no pipelining.
type Device struct {
	addr    string
	id      string
	model   string
	port    int
	timeout *time.Duration
	seen    time.Time
	sync.RWMutex
}

// New returns a Device for the controller at addr.  The id and model are
// the values reported during discovery and may be empty when the controller
// was addressed directly.  A zero port selects the default control port.
func New(addr, id, model string, port int, timeout *time.Duration) *Device {
	if port == 0 {
		port = shared.DefaultControlPort
	}
	return &Device{
		addr:    addr,
		id:      id,
		model:   model,
		port:    port,
		timeout: timeout,
		seen:    time.Now(),
	}
}

// Addr returns the network address of the controller, its unique key
func (d *Device) Addr() string {
	return d.addr
}

// ID returns the device id reported during discovery
func (d *Device) ID() string {
	return d.id
}

// Model returns the model string reported during discovery
func (d *Device) Model() string {
	return d.model
}

// Send writes payload to the controller over a fresh TCP connection.  When
// expectResponse is set, up to shared.ResponseBufferSize bytes are read
// under the configured deadline; a read that times out yields no data and
// no error.  The connection is closed on every return path.
func (d *Device) Send(payload []byte, expectResponse bool) ([]byte, error) {
	target := net.JoinHostPort(d.addr, strconv.Itoa(d.port))
	conn, err := net.DialTimeout(`tcp`, target, d.waitTime())
	if err != nil {
		return nil, fmt.Errorf(`connecting to %v: %w`, target, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(d.waitTime())); err != nil {
		return nil, err
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf(`sending to %v: %w`, target, err)
	}
	if !expectResponse {
		return nil, nil
	}

	buf := make([]byte, shared.ResponseBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			common.Log.Debugf("No response from %v within %v\n", target, d.waitTime())
			return nil, nil
		}
		return nil, fmt.Errorf(`reading from %v: %w`, target, err)
	}
	common.Log.Debugf("Response from %v: %x\n", target, buf[:n])
	return buf[:n], nil
}

// TurnOn powers the controller on
func (d *Device) TurnOn() error {
	_, err := d.Send(packet.TurnOn(), false)
	return err
}

// TurnOff powers the controller off
func (d *Device) TurnOff() error {
	_, err := d.Send(packet.TurnOff(), false)
	return err
}

// SetColor changes the color output of the controller
func (d *Device) SetColor(color common.ColorState) error {
	_, err := d.Send(packet.SetColor(int(color.R), int(color.G), int(color.B), int(color.W)), false)
	return err
}

// State queries the controller for a full snapshot.  It fails with
// common.ErrNoResponse when the controller does not answer in time, and
// with common.ErrMalformedResponse when the reply is too short to decode.
func (d *Device) State() (common.State, error) {
	resp, err := d.Send(packet.QueryState(), true)
	if err != nil {
		return common.State{}, err
	}
	if resp == nil {
		return common.State{}, fmt.Errorf(`%w: %v did not answer the state query`, common.ErrNoResponse, d.addr)
	}
	state, err := packet.DecodeState(resp)
	if err != nil {
		return common.State{}, err
	}
	common.Log.Debugf("State of %v: %+v\n", d, state)
	return state, nil
}

// Power queries the controller and returns its reported power state
func (d *Device) Power() (common.Power, error) {
	state, err := d.State()
	if err != nil {
		return common.PowerUnknown, err
	}
	return state.Power, nil
}

// PowerToggle flips the power state.  A controller that reports an
// unrecognised status byte is treated as off, so toggling it turns it on.
func (d *Device) PowerToggle() error {
	state, err := d.State()
	if err != nil {
		return err
	}
	if state.Power == common.PowerOn {
		return d.TurnOff()
	}
	return d.TurnOn()
}

// SetState pushes a desired snapshot to the controller.  A target state
// that is not powered on turns the controller off without pushing color;
// off overrides color on the device.
func (d *Device) SetState(state common.State) error {
	if state.Power != common.PowerOn {
		return d.TurnOff()
	}
	return d.SetColor(state.Color)
}

// Seen returns the last time discovery heard from this controller
func (d *Device) Seen() time.Time {
	d.RLock()
	defer d.RUnlock()
	return d.seen
}

// SetSeen records that discovery heard from this controller at t
func (d *Device) SetSeen(t time.Time) {
	d.Lock()
	d.seen = t
	d.Unlock()
}

func (d *Device) String() string {
	var b strings.Builder
	b.WriteString(`Controller`)
	if d.id != `` {
		fmt.Fprintf(&b, `:%s`, d.id)
	}
	if d.model != `` {
		fmt.Fprintf(&b, `(%s)`, d.model)
	}
	fmt.Fprintf(&b, `@[%s]`, d.addr)
	return b.String()
}

func (d *Device) waitTime() time.Duration {
	if d.timeout == nil || *d.timeout == 0 {
		return common.DefaultTimeout
	}
	return *d.timeout
}
