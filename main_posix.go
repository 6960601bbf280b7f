//go:build linux

package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/oklog/run"
	"golang.org/x/sys/unix"
	"gopkg.in/natefinch/lumberjack.v2"

	"flashcat.cloud/nfsmon/agent"
	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/pkg/pprof"
)

func initLog(c config.Log) {
	var w io.Writer
	switch c.FileName {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		w = &lumberjack.Logger{
			Filename:   c.FileName,
			MaxSize:    c.MaxSize,
			MaxAge:     c.MaxAge,
			MaxBackups: c.MaxBackups,
			LocalTime:  c.LocalTime,
			Compress:   c.Compress,
		}
	}
	log.SetOutput(w)
}

// serve blocks until a terminating signal arrives. SIGHUP reloads the
// agent, SIGUSR2 starts pprof.
func serve(ag *agent.Agent) error {
	var g run.Group

	{
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGPIPE)
		stop := make(chan struct{})

		g.Add(func() error {
			sdNotify(daemon.SdNotifyReady)
			for {
				select {
				case <-stop:
					return nil
				case sig := <-sc:
					log.Println("I! received signal:", sig.String())
					switch sig {
					case syscall.SIGHUP:
						sdNotify(daemon.SdNotifyReloading)
						ag.Reload()
						sdNotify(daemon.SdNotifyReady)
					case syscall.SIGPIPE:
						// stdout went away in test mode
					default:
						return nil
					}
				}
			}
		}, func(error) {
			signal.Stop(sc)
			close(stop)
		})
	}

	{
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGUSR2)
		stop := make(chan struct{})

		g.Add(func() error {
			for {
				select {
				case <-stop:
					return nil
				case <-sc:
					go pprof.Go()
				}
			}
		}, func(error) {
			signal.Stop(sc)
			close(stop)
		})
	}

	if os.Getpid() == 1 {
		stop := make(chan struct{})
		g.Add(func() error {
			reapDaemon(stop)
			return nil
		}, func(error) {
			close(stop)
		})
	}

	err := g.Run()
	sdNotify(daemon.SdNotifyStopping)
	return err
}

func sdNotify(state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		log.Println("W! failed to notify systemd:", err)
	}
}

type exit struct {
	pid    int
	status int
}

func exitStatus(status unix.WaitStatus) int {
	if status.Signaled() {
		return 128 + int(status.Signal())
	}
	return status.ExitStatus()
}

func reap() (exits []exit, err error) {
	var (
		ws  unix.WaitStatus
		rus unix.Rusage
	)
	for {
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, &rus)
		if err != nil {
			if err == unix.ECHILD {
				return exits, nil
			}
			return nil, err
		}
		if pid <= 0 {
			return exits, nil
		}
		exits = append(exits, exit{pid: pid, status: exitStatus(ws)})
	}
}

// reapDaemon collects orphaned children when nfsmon runs as pid 1 of a
// container.
func reapDaemon(stop <-chan struct{}) {
	unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0)

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, unix.SIGCHLD)
	defer signal.Stop(signals)

	for {
		select {
		case <-stop:
			return
		case <-signals:
			exits, err := reap()
			if err != nil {
				log.Printf("E! reaping children failed: %v", err)
				continue
			}
			for _, e := range exits {
				log.Printf("I! reaped pid: %d, status: %d", e.pid, e.status)
			}
		}
	}
}
