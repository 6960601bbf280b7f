package nfs

import (
	"log"
	"os"
	"time"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/inputs"
	"flashcat.cloud/nfsmon/pkg/osx"
	"flashcat.cloud/nfsmon/types"
)

const inputName = "nfs"

type NFS struct {
	config.PluginConfig

	ReportMountstats bool               `toml:"report_mountstats"`
	MountstatsPath   string             `toml:"mountstats_path"`
	ReportRPC        bool               `toml:"report_rpc"`
	ProcPath         string             `toml:"proc_path"`
	Mountpoints      []MountpointConfig `toml:"mountpoints"`

	filters   *FilterConfig
	available bool
}

func init() {
	inputs.Add(inputName, func() inputs.Input {
		return &NFS{}
	})
}

func (n *NFS) Name() string {
	return inputName
}

func (n *NFS) Init() error {
	if !n.ReportMountstats && !n.ReportRPC {
		return types.ErrInstancesEmpty
	}

	if err := n.InitInternalConfig(); err != nil {
		return err
	}

	if n.ProcPath == "" {
		n.ProcPath = osx.HostProc()
	}

	if !n.ReportMountstats {
		return nil
	}

	filters, err := NewFilterConfig(n.Mountpoints)
	if err != nil {
		n.filters = nil
		return err
	}
	n.filters = filters

	n.MountstatsPath = mountstatsPath(n.MountstatsPath)

	if err := probeMountstats(n.MountstatsPath); err != nil {
		n.available = false
		if unavailableExpected(err) {
			log.Println("I! nfs:", err)
		} else {
			log.Println("W! nfs:", err)
		}
		return nil
	}

	n.available = true
	log.Printf("I! nfs: reading %s, %d mountpoint policies", n.MountstatsPath, filters.Len())
	return nil
}

// mountstatsPath prefers the configured path, then $MOUNT_PROC, then
// self/mountstats under the host proc.
func mountstatsPath(configured string) string {
	if configured != "" {
		return configured
	}
	if p := os.Getenv("MOUNT_PROC"); p != "" {
		return p
	}
	return osx.HostProc("self", "mountstats")
}

func (n *NFS) Drop() {
	n.available = false
	n.filters = nil
}

func (n *NFS) Gather(slist *types.SampleList) {
	start := time.Now()
	defer func() {
		gatherDuration.Observe(time.Since(start).Seconds())
	}()

	sink := NewSampleSink(slist)

	if n.ReportRPC {
		if err := newRPCReader(n.ProcPath, sink).Read(); err != nil {
			log.Println("E! nfs: failed to read rpc counters:", err)
		}
	}

	if n.ReportMountstats && n.available && n.filters != nil {
		n.gatherMountstats(sink)
	}
}

func (n *NFS) gatherMountstats(sink Sink) {
	f, err := os.Open(n.MountstatsPath)
	if err != nil {
		log.Println("W! nfs: failed to open mountstats:", err)
		return
	}
	defer f.Close()

	d := NewDispatcher(n.filters, sink)
	err = ParseMountstats(f, func(rec *MountRecord) {
		if config.Config != nil && config.Config.DebugMode {
			log.Printf("D! nfs: mount %s age=%d transport=%s ops=%d", rec.Mountpoint, rec.Age, rec.Transport, len(rec.Ops))
		}
		if err := d.Dispatch(rec); err != nil {
			log.Printf("E! nfs: failed to dispatch mount %s: %v", rec.Mountpoint, err)
		}
	})
	if err != nil {
		parseErrors.Inc()
		log.Printf("E! nfs: failed to parse %s: %v", n.MountstatsPath, err)
	}
}
