package device_test

import (
	"net"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol/v1/device"
)

// fakeController accepts control connections on loopback, records every
// received frame, and answers each with the configured reply.
type fakeController struct {
	ln     net.Listener
	reply  []byte
	mu     sync.Mutex
	frames [][]byte
}

func newFakeController(reply []byte) *fakeController {
	ln, err := net.Listen(`tcp4`, `127.0.0.1:0`)
	Expect(err).NotTo(HaveOccurred())
	f := &fakeController{ln: ln, reply: reply}
	go f.serve()
	return f
}

func (f *fakeController) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go func(conn net.Conn) {
			defer conn.Close()
			buf := make([]byte, 1024)
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			f.mu.Lock()
			f.frames = append(f.frames, append([]byte(nil), buf[:n]...))
			f.mu.Unlock()
			if f.reply != nil {
				_, _ = conn.Write(f.reply)
			}
		}(conn)
	}
}

func (f *fakeController) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeController) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.frames...)
}

func (f *fakeController) close() {
	_ = f.ln.Close()
}

var _ = Describe("Device", func() {
	var (
		timeout = 200 * time.Millisecond

		// 14 byte reply as sent by real controllers; status 0x23, channels
		// 10,20,30,40
		onReply = []byte{0x81, 0x33, 0x23, 0x61, 0x21, 0x10, 10, 20, 30, 40, 0x01, 0x00, 0x0f, 0x37}
	)

	newDevice := func(f *fakeController) *device.Device {
		return device.New(`127.0.0.1`, `F0FE6B2333D9`, `AK001-ZJ200`, f.port(), &timeout)
	}

	It("sends the turn on frame", func() {
		fake := newFakeController(nil)
		defer fake.close()
		Expect(newDevice(fake).TurnOn()).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x71, 0x23, 0x94}))
	})

	It("sends the turn off frame", func() {
		fake := newFakeController(nil)
		defer fake.close()
		Expect(newDevice(fake).TurnOff()).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x71, 0x24, 0x95}))
	})

	It("encodes the color channels with a trailing checksum", func() {
		fake := newFakeController(nil)
		defer fake.close()
		Expect(newDevice(fake).SetColor(common.ColorState{R: 1, G: 2, B: 3, W: 4})).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x31, 1, 2, 3, 4, 0x0f, 0x31 + 1 + 2 + 3 + 4 + 0x0f}))
	})

	It("decodes a state reply", func() {
		fake := newFakeController(onReply)
		defer fake.close()
		state, err := newDevice(fake).State()
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Power).To(Equal(common.PowerOn))
		Expect(state.Color).To(Equal(common.ColorState{R: 10, G: 20, B: 30, W: 40}))
	})

	It("reports no response for a silent controller", func() {
		fake := newFakeController(nil)
		defer fake.close()
		_, err := newDevice(fake).State()
		Expect(err).To(MatchError(common.ErrNoResponse))
	})

	It("reports a malformed response for a short state reply", func() {
		fake := newFakeController([]byte{0x81, 0x33, 0x23})
		defer fake.close()
		_, err := newDevice(fake).State()
		Expect(err).To(MatchError(common.ErrMalformedResponse))
	})

	It("propagates connection failures", func() {
		fake := newFakeController(nil)
		port := fake.port()
		fake.close()
		dev := device.New(`127.0.0.1`, ``, ``, port, &timeout)
		Expect(dev.TurnOn()).NotTo(Succeed())
	})

	It("toggles a powered on controller off", func() {
		fake := newFakeController(onReply)
		defer fake.close()
		Expect(newDevice(fake).PowerToggle()).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x71, 0x24, 0x95}))
	})

	It("toggles a controller with an unrecognised status on", func() {
		reply := append([]byte(nil), onReply...)
		reply[2] = 0x99
		fake := newFakeController(reply)
		defer fake.close()
		Expect(newDevice(fake).PowerToggle()).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x71, 0x23, 0x94}))
	})

	It("turns off without pushing color when the target state is not on", func() {
		fake := newFakeController(nil)
		defer fake.close()
		target := common.State{Power: common.PowerOff, Color: common.ColorState{R: 200}}
		Expect(newDevice(fake).SetState(target)).To(Succeed())
		Eventually(fake.received).Should(Equal([][]byte{{0x71, 0x24, 0x95}}))
	})

	It("pushes color when the target state is on", func() {
		fake := newFakeController(nil)
		defer fake.close()
		target := common.State{Power: common.PowerOn, Color: common.ColorState{R: 5, G: 6, B: 7, W: 8}}
		Expect(newDevice(fake).SetState(target)).To(Succeed())
		Eventually(fake.received).Should(ContainElement([]byte{0x31, 5, 6, 7, 8, 0x0f, 0x31 + 5 + 6 + 7 + 8 + 0x0f}))
	})

	It("renders its identity", func() {
		dev := device.New(`10.0.0.1`, `F0FE6B2333D9`, `AK001-ZJ200`, 0, &timeout)
		Expect(dev.String()).To(Equal(`Controller:F0FE6B2333D9(AK001-ZJ200)@[10.0.0.1]`))
		Expect(device.New(`10.0.0.1`, ``, ``, 0, &timeout).String()).To(Equal(`Controller@[10.0.0.1]`))
	})
})
