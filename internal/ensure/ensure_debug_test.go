//go:build !shipping

package ensure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThat(t *testing.T) {
	assert.True(t, That(true, "unused"))
	assert.PanicsWithValue(t, "entry 7 is missing", func() { That(false, "entry %d is missing", 7) })
}
