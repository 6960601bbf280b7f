package nfs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs/nfs"
	"go.uber.org/multierr"
)

const typeProcedure = "nfs_procedure"

// rpcReader reads the per-procedure call counters the kernel keeps in
// net/rpc/nfs (client) and net/rpc/nfsd (server).
type rpcReader struct {
	procPath string
	sink     Sink
}

func newRPCReader(procPath string, sink Sink) *rpcReader {
	return &rpcReader{procPath: procPath, sink: sink}
}

// Read submits the counters of every file that exists. A missing file
// means the client or server side is not loaded and is not an error.
func (r *rpcReader) Read() error {
	var err error
	err = multierr.Append(err, r.readClient())
	err = multierr.Append(err, r.readServer())
	return err
}

func (r *rpcReader) readClient() error {
	f, err := os.Open(filepath.Join(r.procPath, "net", "rpc", "nfs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	stats, err := nfs.ParseClientRPCStats(f)
	if err != nil {
		return errors.Wrap(err, "parse client rpc stats")
	}

	return multierr.Combine(
		r.submit("v2client", "v2", "client", NFSv2Procedures, v2Counts(stats.V2Stats)),
		r.submit("v3client", "v3", "client", NFSv3Procedures, v3Counts(stats.V3Stats)),
		r.submit("v4client", "v4", "client", NFSv4Procedures, v4ClientCounts(stats.ClientV4Stats)),
	)
}

func (r *rpcReader) readServer() error {
	f, err := os.Open(filepath.Join(r.procPath, "net", "rpc", "nfsd"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	stats, err := nfs.ParseServerRPCStats(f)
	if err != nil {
		return errors.Wrap(err, "parse server rpc stats")
	}

	return multierr.Combine(
		r.submit("v2server", "v2", "server", NFSv2Procedures, v2Counts(stats.V2Stats)),
		r.submit("v3server", "v3", "server", NFSv3Procedures, v3Counts(stats.V3Stats)),
	)
}

func (r *rpcReader) submit(instance, version, role string, procedures []string, counts []uint64) error {
	labels := map[string]string{
		"version": version,
		"role":    role,
	}

	var err error
	for i, proc := range procedures {
		if i >= len(counts) {
			break
		}
		err = multierr.Append(err, r.sink.Submit(&ValueList{
			Plugin:         pluginName,
			PluginInstance: instance,
			Type:           typeProcedure,
			TypeInstance:   proc,
			Names:          []string{""},
			Values:         []Value{DeriveValue(counts[i])},
			Labels:         labels,
		}))
	}
	return err
}

func v2Counts(s nfs.V2Stats) []uint64 {
	return []uint64{
		s.Null, s.GetAttr, s.SetAttr, s.Root, s.Lookup, s.ReadLink,
		s.Read, s.WrCache, s.Write, s.Create, s.Remove, s.Rename,
		s.Link, s.SymLink, s.MkDir, s.RmDir, s.ReadDir, s.FsStat,
	}
}

func v3Counts(s nfs.V3Stats) []uint64 {
	return []uint64{
		s.Null, s.GetAttr, s.SetAttr, s.Lookup, s.Access, s.ReadLink,
		s.Read, s.Write, s.Create, s.MkDir, s.SymLink, s.MkNod,
		s.Remove, s.RmDir, s.Rename, s.Link, s.ReadDir, s.ReadDirPlus,
		s.FsStat, s.FsInfo, s.PathConf, s.Commit,
	}
}

func v4ClientCounts(s nfs.ClientV4Stats) []uint64 {
	return []uint64{
		s.Null, s.Read, s.Write, s.Commit, s.Open, s.OpenConfirm,
		s.OpenNoattr, s.OpenDowngrade, s.Close, s.Setattr, s.FsInfo,
		s.Renew, s.SetClientID, s.SetClientIDConfirm, s.Lock, s.Lockt,
		s.Locku, s.Access, s.Getattr, s.Lookup, s.LookupRoot, s.Remove,
		s.Rename, s.Link, s.Symlink, s.Create, s.Pathconf, s.StatFs,
		s.ReadLink, s.ReadDir, s.ServerCaps, s.DelegReturn, s.GetACL,
		s.SetACL, s.FsLocations, s.ReleaseLockowner, s.Secinfo,
		s.FsidPresent, s.ExchangeID, s.CreateSession,
		s.DestroySession, s.Sequence, s.GetLeaseTime,
		s.ReclaimComplete, s.LayoutGet, s.GetDeviceInfo,
		s.LayoutCommit, s.LayoutReturn, s.SecinfoNoName,
		s.TestStateID, s.FreeStateID, s.GetDeviceList,
		s.BindConnToSession, s.DestroyClientID, s.Seek, s.Allocate,
		s.DeAllocate, s.LayoutStats, s.Clone,
	}
}
