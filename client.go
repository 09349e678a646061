package magichome

import (
	"sync"
	"time"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol"
)

// Client provides a simple interface for interacting with MagicHome
// controllers.  Client can not be instantiated manually or it will not
// function - always use NewClient() to obtain a Client instance.
type Client struct {
	discoveryInterval     time.Duration
	quitChan              chan bool
	protocol              protocol.Protocol
	timeout               time.Duration
	internalRetryInterval time.Duration
	controllers           map[string]common.Controller
	subscriptions         map[string]*common.Subscription
	sync.RWMutex
}

// AddController is for use by protocols only.
// Adds ctrl to the client's known controllers, keyed by address, and
// publishes a common.EventNewController.  Returns common.ErrDuplicate if
// the controller is already known.
func (c *Client) AddController(ctrl common.Controller) error {
	addr := ctrl.Addr()
	c.RLock()
	_, ok := c.controllers[addr]
	c.RUnlock()
	if ok {
		return common.ErrDuplicate
	}

	c.Lock()
	c.controllers[addr] = ctrl
	c.Unlock()

	c.publish(common.EventNewController{Controller: ctrl})
	return nil
}

// RemoveControllerByAddr is for use by protocols only.
// Looks up a controller by its address and removes it from the client's
// list of known controllers, publishing a common.EventExpiredController, or
// returns common.ErrNotFound if the controller is not known at this time.
func (c *Client) RemoveControllerByAddr(addr string) error {
	c.RLock()
	ctrl, ok := c.controllers[addr]
	c.RUnlock()
	if !ok {
		return common.ErrNotFound
	}

	c.Lock()
	delete(c.controllers, addr)
	c.Unlock()

	c.publish(common.EventExpiredController{Controller: ctrl})
	return nil
}

// GetControllers returns a slice of all controllers known to the client, or
// common.ErrNotFound if no controllers are currently known.
func (c *Client) GetControllers() ([]common.Controller, error) {
	c.RLock()
	controllers := make([]common.Controller, 0, len(c.controllers))
	for _, ctrl := range c.controllers {
		controllers = append(controllers, ctrl)
	}
	c.RUnlock()
	if len(controllers) == 0 {
		return controllers, common.ErrNotFound
	}
	return controllers, nil
}

// GetControllerByAddr looks up a controller by its network address.  May
// return a common.ErrNotFound error if the lookup times out without finding
// the controller.
func (c *Client) GetControllerByAddr(addr string) (common.Controller, error) {
	tick := time.Tick(c.internalRetryInterval)
	timeout := time.After(c.timeout)
	for {
		select {
		case <-tick:
			c.RLock()
			ctrl, ok := c.controllers[addr]
			c.RUnlock()
			if ok {
				return ctrl, nil
			}
		case <-timeout:
			return nil, common.ErrNotFound
		}
	}
}

// GetControllerByID looks up a controller by its reported device id.  May
// return a common.ErrNotFound error if the lookup times out without finding
// the controller.
func (c *Client) GetControllerByID(id string) (common.Controller, error) {
	tick := time.Tick(c.internalRetryInterval)
	timeout := time.After(c.timeout)
	for {
		select {
		case <-tick:
			controllers, _ := c.GetControllers()
			for _, ctrl := range controllers {
				if ctrl.ID() == id {
					return ctrl, nil
				}
			}
		case <-timeout:
			return nil, common.ErrNotFound
		}
	}
}

// Connect resolves the controller at addr directly, without broadcasting,
// and registers it with the client.
func (c *Client) Connect(addr string) (common.Controller, error) {
	return c.protocol.Connect(addr)
}

// SetPower requests a power state change on every controller known to the
// client.  A state of true requests power on, and a state of false requests
// power off.
func (c *Client) SetPower(state bool) error {
	return c.protocol.SetPower(state)
}

// SetColor requests a color change on every controller known to the client.
func (c *Client) SetColor(color common.ColorState) error {
	return c.protocol.SetColor(color)
}

// SetDiscoveryInterval causes the client to discover controllers every
// interval.  You should set this to a non-zero value for any long-running
// process, otherwise controllers will only be discovered once.
func (c *Client) SetDiscoveryInterval(interval time.Duration) error {
	c.Lock()
	if c.discoveryInterval != 0 {
		c.quitChan <- true
	}
	c.discoveryInterval = interval
	c.Unlock()
	common.Log.Infof("Starting discovery with interval %v", interval)
	return c.discover()
}

// SetTimeout sets the time that client operations wait for results before
// returning an error
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// GetTimeout returns the currently configured timeout period for operations
// on this client
func (c *Client) GetTimeout() *time.Duration {
	return &c.timeout
}

// NewSubscription returns a new *common.Subscription for receiving events
// from this client.
func (c *Client) NewSubscription() (*common.Subscription, error) {
	sub := common.NewSubscription(c)
	c.Lock()
	c.subscriptions[sub.ID()] = sub
	c.Unlock()
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of
// subscriptions.
func (c *Client) CloseSubscription(sub *common.Subscription) error {
	c.RLock()
	_, ok := c.subscriptions[sub.ID()]
	c.RUnlock()
	if !ok {
		return common.ErrNotFound
	}
	c.Lock()
	delete(c.subscriptions, sub.ID())
	c.Unlock()

	return nil
}

// Close signals the termination of this client, and cleans up resources
func (c *Client) Close() error {
	c.Lock()
	defer c.Unlock()
	c.quitChan <- true
	return c.protocol.Close()
}

func (c *Client) publish(event interface{}) {
	c.RLock()
	subs := make([]*common.Subscription, 0, len(c.subscriptions))
	for _, sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	c.RUnlock()
	for _, sub := range subs {
		if err := sub.Write(event); err != nil {
			common.Log.Warnf("Failed publishing event to subscription %v: %v", sub.ID(), err)
		}
	}
}

func (c *Client) discover() error {
	if c.discoveryInterval == 0 {
		common.Log.Debugf("Discovery interval is zero, discovery will only be performed once")
		return c.protocol.Discover()
	}

	go func() {
		tick := time.Tick(c.discoveryInterval)
		for {
			select {
			case <-c.quitChan:
				common.Log.Debugf("Quitting discovery loop")
				return
			case <-tick:
				common.Log.Debugf("Performing discovery")
				_ = c.protocol.Discover()
			}
		}
	}()

	return nil
}
