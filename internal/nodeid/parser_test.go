package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "simple address",
			raw:          "offset.shoulder",
			expectedAddr: Address{Type: "offset", Name: "shoulder"},
		},
		{
			name:         "underscores and dashes",
			raw:          "boom_arm.main-2",
			expectedAddr: Address{Type: "boom_arm", Name: "main-2"},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - missing name",
			raw:       "lens",
			expectErr: true,
		},
		{
			name:      "error - empty name",
			raw:       "lens.",
			expectErr: true,
		},
		{
			name:      "error - too many segments",
			raw:       "lens.main.FieldOfView",
			expectErr: true,
		},
		{
			name:      "error - leading digit",
			raw:       "lens.1main",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, raw := range []string{"offset.shoulder", "array_blend.main", "rig_ref.inner-1"} {
		t.Run(raw, func(t *testing.T) {
			addr, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())
		})
	}
}

func TestAddress_Zero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.Equal(t, "", Address{}.String())
	assert.Equal(t, "lens.main", New("lens", "main").String())
}
