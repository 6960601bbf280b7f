package nfs

import "fmt"

// EventCounters names the values of the "events:" line in kernel order.
var EventCounters = []string{
	"inoderevalidates",
	"dentryrevalidates",
	"datainvalidates",
	"attrinvalidates",
	"vfsopen",
	"vfslookup",
	"vfspermission",
	"vfsupdatepage",
	"vfsreadpage",
	"vfsreadpages",
	"vfswritepage",
	"vfswritepages",
	"vfsreaddir",
	"vfssetattr",
	"vfsflush",
	"vfsfsync",
	"vfslock",
	"vfsrelease",
	"congestionwait",
	"setattrtrunc",
	"extendwrite",
	"sillyrenames",
	"shortreads",
	"shortwrites",
	"delay",
}

// ByteCounters names the values of the "bytes:" line.
var ByteCounters = []string{
	"normalreadbytes",
	"normalwritebytes",
	"directreadbytes",
	"directwritebytes",
	"serverreadbytes",
	"serverwritebytes",
	"readpages",
	"writepages",
}

// Transport counters, see net/sunrpc/xprtsock.c and xprtrdma in the kernel.
var (
	XprtUDPCounters = []string{
		"port",
		"bind_count",
		"rpcsends",
		"rpcreceives",
		"badxids",
		"inflightsends",
		"backlogutil",
	}

	XprtTCPCounters = []string{
		"port",
		"bind_count",
		"connect_count",
		"connect_time",
		"idle_time",
		"rpcsends",
		"rpcreceives",
		"badxids",
		"inflightsends",
		"backlogutil",
	}

	XprtRDMACounters = []string{
		"port",
		"bind_count",
		"connect_count",
		"connect_time",
		"idle_time",
		"rpcsends",
		"rpcreceives",
		"badxids",
		"backlogutil",
		"read_chunks",
		"write_chunks",
		"reply_chunks",
		"total_rdma_req",
		"total_rdma_rep",
		"pullup",
		"fixup",
		"hardway",
		"failed_marshal",
		"bad_reply",
	}
)

// PerOpCounters names the eight values of a per-op statistics line. The
// three times are in milliseconds.
var PerOpCounters = []string{
	"ops",
	"ntrans",
	"timeouts",
	"bytes_sent",
	"bytes_recv",
	"queue",
	"rtt",
	"execute",
}

const (
	NumEvents        = 25
	NumBytes         = 8
	NumPerOpCounters = 8
	MaxXprtCounters  = 19
)

// TransportKind is the RPC transport a mount uses.
type TransportKind int

const (
	TransportTCP TransportKind = iota
	TransportUDP
	TransportRDMA
)

func (k TransportKind) String() string {
	switch k {
	case TransportTCP:
		return "tcp"
	case TransportUDP:
		return "udp"
	case TransportRDMA:
		return "rdma"
	}
	return fmt.Sprintf("TransportKind(%d)", int(k))
}

// Counters returns the catalog of the "xprt:" line for k.
func (k TransportKind) Counters() []string {
	switch k {
	case TransportUDP:
		return XprtUDPCounters
	case TransportRDMA:
		return XprtRDMACounters
	default:
		return XprtTCPCounters
	}
}

// TypeName is the type the transport counters are emitted under.
func (k TransportKind) TypeName() string {
	return "nfsclient_xprt" + k.String()
}

func ParseTransportKind(s string) (TransportKind, bool) {
	switch s {
	case "tcp":
		return TransportTCP, true
	case "udp":
		return TransportUDP, true
	case "rdma":
		return TransportRDMA, true
	}
	return 0, false
}

// Procedure names of the NFS versions, in the order the kernel prints the
// "procN" lines of /proc/net/rpc/nfs and /proc/net/rpc/nfsd.
var (
	NFSv2Procedures = []string{
		"null", "getattr", "setattr", "root", "lookup", "readlink",
		"read", "wrcache", "write", "create", "remove", "rename",
		"link", "symlink", "mkdir", "rmdir", "readdir", "fsstat",
	}

	NFSv3Procedures = []string{
		"null", "getattr", "setattr", "lookup", "access", "readlink",
		"read", "write", "create", "mkdir", "symlink", "mknod",
		"remove", "rmdir", "rename", "link", "readdir", "readdirplus",
		"fsstat", "fsinfo", "pathconf", "commit",
	}

	NFSv4Procedures = []string{
		"null", "read", "write", "commit", "open", "open_confirm",
		"open_noattr", "open_downgrade", "close", "setattr", "fsinfo",
		"renew", "setclientid", "setclientid_confirm", "lock", "lockt",
		"locku", "access", "getattr", "lookup", "lookup_root", "remove",
		"rename", "link", "symlink", "create", "pathconf", "statfs",
		"readlink", "readdir", "server_caps", "delegreturn", "getacl",
		"setacl", "fs_locations", "release_lockowner", "secinfo",
		"fsid_present", "exchange_id", "create_session",
		"destroy_session", "sequence", "get_lease_time",
		"reclaim_complete", "layoutget", "getdeviceinfo",
		"layoutcommit", "layoutreturn", "secinfo_no_name",
		"test_stateid", "free_stateid", "getdevicelist",
		"bind_conn_to_session", "destroy_clientid", "seek", "allocate",
		"deallocate", "layoutstats", "clone",
	}
)
