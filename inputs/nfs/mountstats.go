package nfs

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	fstypeMarker  = " with fstype "
	mountedMarker = " mounted on "

	maxLineSize = 1024 * 1024
)

type parseState int

const (
	stateStart parseState = iota
	stateDeviceNFS
	stateDeviceNFSPerOp
)

func (s parseState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateDeviceNFS:
		return "device-nfs"
	case stateDeviceNFSPerOp:
		return "device-nfs-per-op"
	}
	return "unknown"
}

// DispatchFunc receives every completed record. The record is reset after
// the call returns, so it must not be retained.
type DispatchFunc func(rec *MountRecord)

// Parser turns /proc/self/mountstats into MountRecords one line at a
// time. A "device" line always closes the record in progress, so the
// parser resynchronizes on every block boundary.
type Parser struct {
	state    parseState
	line     int
	rec      MountRecord
	dispatch DispatchFunc
}

func NewParser(dispatch DispatchFunc) *Parser {
	return &Parser{dispatch: dispatch}
}

// Reset drops the record in progress without dispatching it.
func (p *Parser) Reset() {
	p.state = stateStart
	p.line = 0
	p.rec.Reset()
}

// Feed processes one line. On error the record in progress is discarded
// and the caller is expected to stop feeding this input.
func (p *Parser) Feed(line string) error {
	p.line++

	if isDeviceLine(line) {
		p.flush()
		p.state = stateStart
	}

	var err error
	switch p.state {
	case stateStart:
		err = p.onStart(line)
	case stateDeviceNFS:
		err = p.onDeviceNFS(line)
	case stateDeviceNFSPerOp:
		err = p.onPerOp(line)
	}

	if err != nil {
		perr := &ParseError{Line: p.line, State: p.state, Text: line, Err: err}
		p.Reset()
		return perr
	}
	return nil
}

// Finish dispatches the last record at end of input.
func (p *Parser) Finish() {
	p.flush()
	p.state = stateStart
}

func (p *Parser) flush() {
	if !p.rec.Pending() {
		return
	}
	if p.dispatch != nil {
		p.dispatch(&p.rec)
	}
	p.rec.Reset()
}

func isDeviceLine(line string) bool {
	return strings.HasPrefix(line, "device ") || strings.HasPrefix(line, "device\t")
}

func (p *Parser) onStart(line string) error {
	if !isDeviceLine(line) {
		return nil
	}

	body := strings.TrimLeft(line[len("device"):], " \t")

	fi := strings.Index(body, fstypeMarker)
	if fi < 0 {
		return errors.Wrap(errMissingMarker, strings.TrimSpace(fstypeMarker))
	}

	fstype := strings.TrimLeft(body[fi+len(fstypeMarker):], " \t")
	if !isNFSType(fstype) {
		return nil
	}

	mi := strings.Index(body, mountedMarker)
	if mi < 0 {
		return errors.Wrap(errMissingMarker, strings.TrimSpace(mountedMarker))
	}

	var mountpoint string
	rest := body[mi+len(mountedMarker):]
	if mi < fi {
		mountpoint = strings.TrimSpace(body[mi+len(mountedMarker) : fi])
	} else if fields := strings.Fields(rest); len(fields) > 0 {
		mountpoint = fields[0]
	}
	if mountpoint == "" {
		return errors.New("empty mountpoint")
	}

	device := body[:mi]
	if fi < mi {
		device = body[:fi]
	}

	p.rec.Mountpoint = mountpoint
	p.rec.Device = strings.TrimSpace(device)
	p.state = stateDeviceNFS
	return nil
}

// isNFSType accepts "nfs", "nfs2", "nfs3" and "nfs4" followed by a
// separator or the end of the line. "nfsd" and the like are not client
// mounts.
func isNFSType(s string) bool {
	if !strings.HasPrefix(s, "nfs") {
		return false
	}
	if len(s) == 3 {
		return true
	}
	switch s[3] {
	case '2', '3', '4', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (p *Parser) onDeviceNFS(line string) error {
	str := strings.TrimLeft(line, " \t")

	switch {
	case strings.HasPrefix(str, "age:"):
		v, err := parseNumericSequence(str[len("age:"):], 1)
		if err != nil {
			return err
		}
		if len(v) != 1 {
			return errors.Wrap(errCountMismatch, "age")
		}
		p.rec.Age = v[0]

	case strings.HasPrefix(str, "events:"):
		return fillCounters("events", str[len("events:"):], p.rec.Events[:])

	case strings.HasPrefix(str, "bytes:"):
		return fillCounters("bytes", str[len("bytes:"):], p.rec.Bytes[:])

	case strings.HasPrefix(str, "xprt:"):
		rest := strings.TrimLeft(str[len("xprt:"):], " \t")
		name := rest
		if i := strings.IndexAny(rest, " \t\r\n"); i >= 0 {
			name = rest[:i]
		}
		kind, ok := ParseTransportKind(name)
		if !ok {
			return errors.Errorf("unknown transport %q", name)
		}
		n := len(kind.Counters())
		if err := fillCounters("xprt "+name, rest[len(name):], p.rec.Xprt[:n]); err != nil {
			return err
		}
		p.rec.Transport = kind

	case strings.HasPrefix(str, "per-op statistics"):
		p.state = stateDeviceNFSPerOp
	}

	return nil
}

func (p *Parser) onPerOp(line string) error {
	str := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(str) == "" {
		return nil
	}

	i := strings.IndexByte(str, ':')
	if i < 0 {
		return errors.Wrap(errMissingMarker, ":")
	}

	name := strings.TrimRight(str[:i], " \t")
	if name == "" {
		return errors.Wrap(errMissingMarker, "operation name")
	}

	v, err := parseNumericSequence(str[i+1:], NumPerOpCounters)
	if err != nil {
		return err
	}
	if len(v) != NumPerOpCounters {
		return errors.Wrapf(errCountMismatch, "per-op %s: got %d, want %d", name, len(v), NumPerOpCounters)
	}

	p.rec.addOp(name, v)
	return nil
}

// fillCounters requires text to hold at least len(dst) integers and copies
// the first len(dst) of them.
func fillCounters(what, text string, dst []uint64) error {
	v, err := parseNumericSequence(text, len(dst))
	if err != nil {
		return errors.Wrap(err, what)
	}
	if len(v) != len(dst) {
		return errors.Wrapf(errCountMismatch, "%s: got %d, want %d", what, len(v), len(dst))
	}
	copy(dst, v)
	return nil
}

// ParseMountstats runs a fresh Parser over r. Each completed record is
// passed to dispatch. The first malformed line stops the pass and is
// returned as a *ParseError.
func ParseMountstats(r io.Reader, dispatch DispatchFunc) error {
	p := NewParser(dispatch)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		if err := p.Feed(scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		p.Reset()
		return errors.Wrap(err, "reading mountstats")
	}

	p.Finish()
	return nil
}
