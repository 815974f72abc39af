package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPositive(t *testing.T) {
	i, f := Split(545.4, 1)
	assert.Equal(t, int64(545), i)
	assert.Equal(t, int64(4), f)
}

func TestSplitNegative(t *testing.T) {
	i, f := Split(-12.345, 2)
	assert.Equal(t, int64(-12), i)
	assert.Equal(t, int64(35), f)
}

func TestSplitClampsDecimals(t *testing.T) {
	i, f := Split(1.123456789123, 20)
	assert.Equal(t, int64(1), i)
	assert.Equal(t, int64(123456789), f)
}
