package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol/v1/device"
	"github.com/magichome-go/magichome/protocol/v1/packet"
	"github.com/magichome-go/magichome/protocol/v1/shared"
)

// V1 implements the MagicHome LAN protocol, the single observed firmware
// revision.  Discovery is strictly request/response: every pass binds its
// own UDP socket, broadcasts the probe once and drains replies until the
// wait time elapses, so an exhausted pass is never restarted - a fresh pass
// gets a fresh socket and a fresh broadcast.
type V1 struct {
	// Port determines the UDP port discovery probes are sent to
	Port int
	// ListenPort determines the local port the discovery socket binds to,
	// defaulting to Port.  Set it when another process owns the default
	ListenPort int
	// BroadcastAddress overrides where Discover sends its probe
	BroadcastAddress string
	// ControlPort overrides the TCP control port on resolved controllers
	ControlPort int

	initialized   bool
	client        common.Client
	timeout       *time.Duration
	devices       map[string]*device.Device
	lastDiscovery time.Time
	sync.RWMutex
}

// SetClient sets the client on the protocol for bi-directional
// communication
func (p *V1) SetClient(client common.Client) {
	p.client = client
	p.timeout = client.GetTimeout()
}

func (p *V1) init() error {
	p.Lock()
	defer p.Unlock()
	if p.initialized {
		return nil
	}
	if p.Port == 0 {
		p.Port = shared.DefaultDiscoveryPort
	}
	if p.ListenPort == 0 {
		p.ListenPort = p.Port
	}
	if p.BroadcastAddress == `` {
		p.BroadcastAddress = shared.DefaultBroadcastAddress
	}
	p.devices = make(map[string]*device.Device)
	p.initialized = true
	return nil
}

// Discover runs one broadcast discovery pass.  The probe is broadcast once,
// then replies are collected until the wait time elapses with no further
// data.  Echoes of the probe are ignored, malformed replies are skipped
// with a warning, and duplicate replies collapse onto the first by address.
// Each well-formed reply registers a controller with the client as it
// arrives.  Controllers that have not answered for twice the time since the
// previous pass are expired first.
func (p *V1) Discover() error {
	if err := p.init(); err != nil {
		return err
	}
	p.expireControllers()

	conn, err := p.listen()
	if err != nil {
		return err
	}
	defer conn.Close()

	target := &net.UDPAddr{IP: net.ParseIP(p.BroadcastAddress), Port: p.Port}
	if _, err := conn.WriteTo(packet.Probe(), target); err != nil {
		return fmt.Errorf(`broadcasting discovery probe: %w`, err)
	}
	common.Log.Debugf("Discovery probe sent to %v\n", target)

	buf := make([]byte, shared.ResponseBufferSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(p.waitTime())); err != nil {
			return err
		}
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break
			}
			return fmt.Errorf(`reading discovery replies: %w`, err)
		}
		data := buf[:n]
		common.Log.Debugf("Discovery reply from %v: %q\n", from, data)
		if packet.IsProbeEcho(data) {
			common.Log.Debugf("Ignoring echoed probe from %v\n", from)
			continue
		}
		addr, id, model, err := packet.ParseIdentity(data)
		if err != nil {
			common.Log.Warnf("Invalid discovery reply from %v: %v", from, err)
			continue
		}
		p.addController(device.New(addr, id, model, p.ControlPort, p.timeout))
	}

	p.Lock()
	p.lastDiscovery = time.Now()
	p.Unlock()

	return nil
}

// Connect resolves a single controller by unicasting the discovery probe to
// addr.  It fails with common.ErrDeviceNotFound when no reply arrives
// before the wait time elapses, or when the reply is malformed.
func (p *V1) Connect(addr string) (common.Controller, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	conn, err := p.listen()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	target, err := net.ResolveUDPAddr(`udp4`, net.JoinHostPort(addr, strconv.Itoa(p.Port)))
	if err != nil {
		return nil, fmt.Errorf(`resolving %v: %w`, addr, err)
	}
	if _, err := conn.WriteTo(packet.Probe(), target); err != nil {
		return nil, fmt.Errorf(`sending discovery probe to %v: %w`, target, err)
	}
	common.Log.Debugf("Discovery probe sent to %v\n", target)

	if err := conn.SetReadDeadline(time.Now().Add(p.waitTime())); err != nil {
		return nil, err
	}
	buf := make([]byte, shared.ResponseBufferSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, fmt.Errorf(`%w: %v did not respond`, common.ErrDeviceNotFound, addr)
			}
			return nil, fmt.Errorf(`reading reply from %v: %w`, addr, err)
		}
		data := buf[:n]
		if packet.IsProbeEcho(data) {
			common.Log.Debugf("Ignoring echoed probe from %v\n", from)
			continue
		}
		devAddr, id, model, perr := packet.ParseIdentity(data)
		if perr != nil {
			common.Log.Warnf("Invalid reply from %v: %v", from, perr)
			return nil, fmt.Errorf(`%w: %v did not respond as expected`, common.ErrDeviceNotFound, addr)
		}
		dev := device.New(devAddr, id, model, p.ControlPort, p.timeout)
		p.addController(dev)
		return dev, nil
	}
}

// SetPower sets the power state on all known controllers.  Controllers are
// addressed one at a time, failures are logged and the sweep continues; the
// first failure is reported once the sweep completes.
func (p *V1) SetPower(state bool) error {
	var firstErr error
	for _, dev := range p.controllers() {
		var err error
		if state {
			err = dev.TurnOn()
		} else {
			err = dev.TurnOff()
		}
		if err != nil {
			common.Log.Errorf("Failed setting power on %v: %v\n", dev, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SetColor changes the color on all known controllers, with the same sweep
// semantics as SetPower
func (p *V1) SetColor(color common.ColorState) error {
	var firstErr error
	for _, dev := range p.controllers() {
		if err := dev.SetColor(color); err != nil {
			common.Log.Errorf("Failed setting color on %v: %v\n", dev, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close closes the protocol driver.  V1 holds no long-lived sockets, every
// discovery pass owns and releases its own, so closing only discards the
// controller registry.
func (p *V1) Close() error {
	p.Lock()
	defer p.Unlock()
	p.devices = nil
	p.initialized = false
	return nil
}

func (p *V1) listen() (net.PacketConn, error) {
	lc := net.ListenConfig{Control: discoverySockopts}
	conn, err := lc.ListenPacket(context.Background(), `udp4`, fmt.Sprintf(`:%d`, p.ListenPort))
	if err != nil {
		return nil, fmt.Errorf(`binding discovery socket: %w`, err)
	}
	return conn, nil
}

func (p *V1) addController(dev *device.Device) {
	p.RLock()
	known, ok := p.devices[dev.Addr()]
	p.RUnlock()
	if ok {
		known.SetSeen(time.Now())
		common.Log.Debugf("Controller already known: %v\n", known)
		return
	}
	p.Lock()
	p.devices[dev.Addr()] = dev
	p.Unlock()
	common.Log.Debugf("Adding controller to client: %v\n", dev)
	if err := p.client.AddController(dev); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			common.Log.Debugf("Controller exists on client: %v\n", dev)
		} else {
			common.Log.Errorf("Error adding controller to client: %v\n", err)
		}
	}
}

func (p *V1) expireControllers() {
	p.RLock()
	last := p.lastDiscovery
	p.RUnlock()
	if !last.After(time.Time{}) {
		return
	}
	var expired []string
	p.RLock()
	for addr, dev := range p.devices {
		// Not heard from in twice the time since the previous pass
		if dev.Seen().Before(time.Now().Add(time.Since(last) * -2)) {
			expired = append(expired, addr)
		}
	}
	p.RUnlock()
	for _, addr := range expired {
		p.Lock()
		delete(p.devices, addr)
		p.Unlock()
		if err := p.client.RemoveControllerByAddr(addr); err != nil {
			common.Log.Warnf("Failed removing expired controller '%v' from client: %v", addr, err)
		}
	}
}

func (p *V1) controllers() []*device.Device {
	p.RLock()
	defer p.RUnlock()
	devices := make([]*device.Device, 0, len(p.devices))
	for _, dev := range p.devices {
		devices = append(devices, dev)
	}
	return devices
}

func (p *V1) waitTime() time.Duration {
	if p.timeout == nil || *p.timeout == 0 {
		return common.DefaultTimeout
	}
	return *p.timeout
}
