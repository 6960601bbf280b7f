package prom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMetric(t *testing.T) {
	assert.Equal(t, "nfsmon_gather_count", BuildMetric("nfsmon", "gather", "count"))
	assert.Equal(t, "gather", BuildMetric("", "gather", ""))
	assert.Equal(t, "", BuildMetric())
}
