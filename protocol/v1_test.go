package protocol_test

import (
	"net"
	"sort"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol"
)

// stubClient satisfies common.Client, recording the controllers a protocol
// registers with it.
type stubClient struct {
	mu          sync.Mutex
	timeout     time.Duration
	controllers map[string]common.Controller
}

func newStubClient(timeout time.Duration) *stubClient {
	return &stubClient{
		timeout:     timeout,
		controllers: make(map[string]common.Controller),
	}
}

func (c *stubClient) AddController(ctrl common.Controller) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.controllers[ctrl.Addr()]; ok {
		return common.ErrDuplicate
	}
	c.controllers[ctrl.Addr()] = ctrl
	return nil
}

func (c *stubClient) RemoveControllerByAddr(addr string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.controllers[addr]; !ok {
		return common.ErrNotFound
	}
	delete(c.controllers, addr)
	return nil
}

func (c *stubClient) GetTimeout() *time.Duration {
	return &c.timeout
}

func (c *stubClient) addrs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	addrs := make([]string, 0, len(c.controllers))
	for addr := range c.controllers {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// fakeResponder plays the controller side of the discovery handshake: it
// answers each received probe with the configured reply datagrams.
type fakeResponder struct {
	conn    net.PacketConn
	replies [][]byte
}

func newFakeResponder(replies ...[]byte) *fakeResponder {
	conn, err := net.ListenPacket(`udp4`, `127.0.0.1:0`)
	Expect(err).NotTo(HaveOccurred())
	f := &fakeResponder{conn: conn, replies: replies}
	go f.serve()
	return f
}

func (f *fakeResponder) serve() {
	buf := make([]byte, 1024)
	for {
		n, from, err := f.conn.ReadFrom(buf)
		if err != nil {
			return
		}
		if string(buf[:n]) != `HF-A11ASSISTHREAD` {
			continue
		}
		for _, reply := range f.replies {
			_, _ = f.conn.WriteTo(reply, from)
		}
	}
}

func (f *fakeResponder) port() int {
	return f.conn.LocalAddr().(*net.UDPAddr).Port
}

func (f *fakeResponder) close() {
	_ = f.conn.Close()
}

// freeUDPPort reserves an ephemeral port and releases it for the discovery
// socket to bind.
func freeUDPPort() int {
	conn, err := net.ListenPacket(`udp4`, `127.0.0.1:0`)
	Expect(err).NotTo(HaveOccurred())
	port := conn.LocalAddr().(*net.UDPAddr).Port
	Expect(conn.Close()).To(Succeed())
	return port
}

var _ = Describe("V1", func() {
	var timeout = 200 * time.Millisecond

	Describe("Discover", func() {
		It("collects unique controllers, skipping echoes and malformed replies", func() {
			fake := newFakeResponder(
				[]byte(`HF-A11ASSISTHREAD`), // echoed probe
				[]byte(`10.0.0.1,F0FE6B2333D9,AK001-ZJ200`),
				[]byte(`10.0.0.1,F0FE6B2333D9,AK001-ZJ200`), // duplicate
				[]byte(`not a controller reply`),
				[]byte(`10.0.0.2,F0FE6B2100AA,AK001-ZJ100`),
			)
			defer fake.close()

			client := newStubClient(timeout)
			p := &protocol.V1{Port: fake.port(), ListenPort: freeUDPPort(), BroadcastAddress: `127.0.0.1`}
			p.SetClient(client)

			Expect(p.Discover()).To(Succeed())
			Expect(client.addrs()).To(Equal([]string{`10.0.0.1`, `10.0.0.2`}))
		})

		It("finds nothing on a silent network", func() {
			client := newStubClient(timeout)
			p := &protocol.V1{Port: freeUDPPort(), ListenPort: freeUDPPort(), BroadcastAddress: `127.0.0.1`}
			p.SetClient(client)

			Expect(p.Discover()).To(Succeed())
			Expect(client.addrs()).To(BeEmpty())
		})
	})

	Describe("Connect", func() {
		It("resolves a controller by address", func() {
			fake := newFakeResponder([]byte(`10.0.0.9,F0FE6B2333D9,AK001-ZJ200`))
			defer fake.close()

			client := newStubClient(timeout)
			p := &protocol.V1{Port: fake.port(), ListenPort: freeUDPPort()}
			p.SetClient(client)

			ctrl, err := p.Connect(`127.0.0.1`)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Addr()).To(Equal(`10.0.0.9`))
			Expect(ctrl.ID()).To(Equal(`F0FE6B2333D9`))
			Expect(ctrl.Model()).To(Equal(`AK001-ZJ200`))
			Expect(client.addrs()).To(Equal([]string{`10.0.0.9`}))
		})

		It("fails with DeviceNotFound when nothing answers", func() {
			client := newStubClient(timeout)
			p := &protocol.V1{Port: freeUDPPort(), ListenPort: freeUDPPort()}
			p.SetClient(client)

			_, err := p.Connect(`127.0.0.1`)
			Expect(err).To(MatchError(common.ErrDeviceNotFound))
		})

		It("fails with DeviceNotFound on a malformed reply", func() {
			fake := newFakeResponder([]byte(`not a controller reply`))
			defer fake.close()

			client := newStubClient(timeout)
			p := &protocol.V1{Port: fake.port(), ListenPort: freeUDPPort()}
			p.SetClient(client)

			_, err := p.Connect(`127.0.0.1`)
			Expect(err).To(MatchError(common.ErrDeviceNotFound))
		})
	})
})
