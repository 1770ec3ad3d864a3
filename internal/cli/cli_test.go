package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/camrig/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *app.Config
	}{
		{
			name: "positional path",
			args: []string{"rigs/"},
			want: &app.Config{RigPath: "rigs/", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "long flag wins over positional",
			args: []string{"-rig", "a.hcl", "b.hcl"},
			want: &app.Config{RigPath: "a.hcl", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "shorthand",
			args: []string{"-r", "a.hcl"},
			want: &app.Config{RigPath: "a.hcl", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "all options",
			args: []string{"-log-format", "JSON", "-log-level", "Debug", "-include-stray-nodes", "rigs"},
			want: &app.Config{RigPath: "rigs", LogFormat: "json", LogLevel: "debug", IncludeStrayNodes: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, exit)
			assert.Equal(t, tc.want, cfg)
		})
	}
}

func TestParse_ExitsCleanly(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}} {
		var out bytes.Buffer
		cfg, exit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"-nope"}, want: "flag provided but not defined"},
		{name: "bad format", args: []string{"-log-format", "xml", "rigs"}, want: "invalid log-format"},
		{name: "bad level", args: []string{"-log-level", "trace", "rigs"}, want: "invalid log-level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
