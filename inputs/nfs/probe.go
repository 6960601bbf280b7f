package nfs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mountstats exists since Linux 2.6.17.
var mountstatsSince = kernelVersion{2, 6, 17}

type kernelVersion [3]int

func (v kernelVersion) less(o kernelVersion) bool {
	for i := range v {
		if v[i] != o[i] {
			return v[i] < o[i]
		}
	}
	return false
}

func (v kernelVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// parseKernelVersion reads the leading major.minor.patch of a kernel
// release such as "5.15.0-91-generic". Missing components are zero.
func parseKernelVersion(release string) (kernelVersion, bool) {
	var v kernelVersion

	end := strings.IndexFunc(release, func(r rune) bool {
		return r != '.' && (r < '0' || r > '9')
	})
	if end >= 0 {
		release = release[:end]
	}

	parts := strings.Split(release, ".")
	if len(parts) < 2 {
		return v, false
	}

	for i := 0; i < len(parts) && i < len(v); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return v, false
		}
		v[i] = n
	}
	return v, true
}

func kernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}

// unavailableReason explains a missing mountstats file. expected is true
// when the running kernel is too old to provide it.
func unavailableReason(release string) (reason string, expected bool) {
	v, ok := parseKernelVersion(release)
	if !ok {
		return fmt.Sprintf("unknown kernel release %q", release), false
	}
	if v.less(mountstatsSince) {
		return fmt.Sprintf("kernel %s predates %s", v, mountstatsSince), true
	}
	return fmt.Sprintf("kernel %s should provide it", v), false
}

// unavailableError is returned by probeMountstats. It wraps ErrUnavailable.
type unavailableError struct {
	path     string
	reason   string
	expected bool
	err      error
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrUnavailable, e.path, e.reason, e.err)
}

func (e *unavailableError) Unwrap() error { return ErrUnavailable }

// probeMountstats checks that path can be opened.
func probeMountstats(path string) error {
	return probeMountstatsWith(path, kernelRelease)
}

func probeMountstatsWith(path string, release func() string) error {
	f, err := os.Open(path)
	if err == nil {
		f.Close()
		return nil
	}

	reason, expected := unavailableReason(release())
	return &unavailableError{path: path, reason: reason, expected: expected, err: err}
}

// unavailableExpected reports whether err is an unavailability the
// running kernel explains.
func unavailableExpected(err error) bool {
	var uerr *unavailableError
	return errors.As(err, &uerr) && uerr.expected
}
