package config

import (
	"log"
	"os"
	"sync"
	"time"
)

const defaultHostnameRefresh = time.Minute

// HostnameCache holds the detected hostname for the agent_hostname label.
// A lookup failure keeps the last known name.
type HostnameCache struct {
	sync.RWMutex
	name   string
	lookup func() (string, error)
	stop   chan struct{}
}

var Hostname *HostnameCache

func newHostnameCache(lookup func() (string, error)) (*HostnameCache, error) {
	name, err := lookup()
	if err != nil {
		return nil, err
	}
	return &HostnameCache{name: name, lookup: lookup, stop: make(chan struct{})}, nil
}

func (c *HostnameCache) Get() string {
	c.RLock()
	defer c.RUnlock()
	return c.name
}

// refresh looks the name up again and reports whether it changed.
func (c *HostnameCache) refresh() bool {
	name, err := c.lookup()
	if err != nil {
		log.Println("E! failed to get hostname:", err)
		return false
	}

	c.Lock()
	defer c.Unlock()
	if name == c.name {
		return false
	}
	log.Printf("I! hostname changed: %s -> %s", c.name, name)
	c.name = name
	return true
}

func (c *HostnameCache) loop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

// Stop ends the background refresh.
func (c *HostnameCache) Stop() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
}

// InitHostname detects the hostname once and refreshes it every
// `every`. A negative interval disables the refresh.
func InitHostname(every time.Duration) error {
	if Hostname != nil {
		return nil
	}

	c, err := newHostnameCache(os.Hostname)
	if err != nil {
		return err
	}
	Hostname = c

	if every == 0 {
		every = defaultHostnameRefresh
	}
	if every > 0 {
		go c.loop(every)
	}
	return nil
}
