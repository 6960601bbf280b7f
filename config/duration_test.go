package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "15", want: 15 * time.Second},
		{in: "1.5", want: 1500 * time.Millisecond},
		{in: `"30s"`, want: 30 * time.Second},
		{in: "'1m'", want: time.Minute},
		{in: "", want: 0},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
