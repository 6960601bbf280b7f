package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHostnames struct {
	names []string
	err   error
}

func (f *fakeHostnames) lookup() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	name := f.names[0]
	if len(f.names) > 1 {
		f.names = f.names[1:]
	}
	return name, nil
}

func TestHostnameCacheRefresh(t *testing.T) {
	f := &fakeHostnames{names: []string{"a", "a", "b"}}
	c, err := newHostnameCache(f.lookup)
	require.NoError(t, err)
	assert.Equal(t, "a", c.Get())

	assert.False(t, c.refresh())
	assert.True(t, c.refresh())
	assert.Equal(t, "b", c.Get())

	// a failed lookup keeps the last known name
	f.err = errors.New("boom")
	assert.False(t, c.refresh())
	assert.Equal(t, "b", c.Get())
}

func TestHostnameCacheInitError(t *testing.T) {
	f := &fakeHostnames{err: errors.New("boom")}
	_, err := newHostnameCache(f.lookup)
	assert.Error(t, err)
}

func TestHostnameCacheLoop(t *testing.T) {
	f := &fakeHostnames{names: []string{"a", "b"}}
	c, err := newHostnameCache(f.lookup)
	require.NoError(t, err)

	go c.loop(time.Millisecond)
	defer c.Stop()

	assert.Eventually(t, func() bool { return c.Get() == "b" }, time.Second, time.Millisecond)

	c.Stop()
	c.Stop()
}
