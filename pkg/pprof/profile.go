package pprof

import (
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
	"sync/atomic"
)

var (
	started uint32
	addr    string
)

// Go serves net/http/pprof on a random loopback port. Only the first call
// starts a listener.
func Go() {
	if !atomic.CompareAndSwapUint32(&started, 0, 1) {
		log.Println("I! pprof already started at", addr)
		return
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Println("E! failed to start pprof:", err)
		return
	}

	addr = fmt.Sprintf("http://127.0.0.1:%d/debug/pprof", listener.Addr().(*net.TCPAddr).Port)
	log.Println("I! pprof started at", addr)

	if err := http.Serve(listener, nil); err != nil {
		log.Println("E! pprof stopped:", err)
	}
}
