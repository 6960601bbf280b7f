package nfs

import "unicode/utf8"

// MaxOpNameLen bounds the length in bytes of a per-op statistics name.
const MaxOpNameLen = 127

// OpStat is one line of the per-op statistics table.
type OpStat struct {
	Name    string
	Metrics [NumPerOpCounters]uint64
}

// MountRecord holds everything parsed from one NFS device block. An empty
// Mountpoint means no record is in progress.
type MountRecord struct {
	Mountpoint string
	Device     string
	Age        uint64
	Events     [NumEvents]uint64
	Bytes      [NumBytes]uint64
	Transport  TransportKind
	Xprt       [MaxXprtCounters]uint64
	Ops        []OpStat
}

func (r *MountRecord) Pending() bool {
	return r.Mountpoint != ""
}

// XprtValues returns the transport counters that are meaningful for the
// record's transport kind.
func (r *MountRecord) XprtValues() []uint64 {
	return r.Xprt[:len(r.Transport.Counters())]
}

// Reset clears the record. The Ops backing array is kept for the next
// block.
func (r *MountRecord) Reset() {
	ops := r.Ops[:0]
	*r = MountRecord{Ops: ops}
}

func (r *MountRecord) addOp(name string, metrics []uint64) {
	op := OpStat{Name: truncateName(name, MaxOpNameLen)}
	copy(op.Metrics[:], metrics)
	r.Ops = append(r.Ops, op)
}

// truncateName cuts s to at most max bytes without splitting a UTF-8
// sequence.
func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
