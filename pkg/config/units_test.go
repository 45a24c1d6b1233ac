package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"", 0, false},
		{"10s", 10 * time.Second, false},
		{"1.5h", 90 * time.Minute, false},
		{"1d", 24 * time.Hour, false},
		{"1w", 168 * time.Hour, false},
		{"2d2h", 50 * time.Hour, false},
		{"invalid", 0, true},
		{"3y", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDuration_YAML(t *testing.T) {
	var v struct {
		Keep Duration `yaml:"keep"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("keep: 2w\n"), &v))
	assert.Equal(t, 2*Week, time.Duration(v.Keep))

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "keep: 336h0m0s\n", string(out))
}
