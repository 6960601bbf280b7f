package config

import (
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration that accepts plain seconds ("15", "1.5")
// as well as Go duration strings ("15s", "1m") in config files.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.Trim(strings.TrimSpace(string(text)), `'"`)
	if s == "" {
		*d = 0
		return nil
	}

	if sI, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Second * time.Duration(sI))
		return nil
	}

	if sF, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(sF * float64(time.Second))
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	*d = Duration(dur)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
