package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    float64
		wantErr bool
	}{
		{name: "uint64 counter", in: uint64(18446744073709551615), want: 18446744073709551615},
		{name: "float gauge", in: 1.5, want: 1.5},
		{name: "bool", in: true, want: 1},
		{name: "string", in: "42", want: 42},
		{name: "bad string", in: "x", wantErr: true},
		{name: "nil", in: nil, wantErr: true},
		{name: "struct", in: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat64(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
