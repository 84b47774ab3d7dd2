package depot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Options
		wantErr string
	}{
		{
			name:  "empty document keeps defaults",
			input: "",
			want:  DefaultOptions(),
		},
		{
			name:  "both fields",
			input: "max_timestep: 100ms\nfixed_timestep: 10ms\n",
			want:  Options{MaxTimestep: 100 * time.Millisecond, FixedTimestep: 10 * time.Millisecond},
		},
		{
			name:  "partial document",
			input: "fixed_timestep: 20ms\n",
			want:  Options{MaxTimestep: DefaultOptions().MaxTimestep, FixedTimestep: 20 * time.Millisecond},
		},
		{
			name:    "negative timestep",
			input:   "max_timestep: -1s\n",
			wantErr: "max_timestep",
		},
		{
			name:    "malformed yaml",
			input:   "max_timestep: [\n",
			wantErr: "failed to decode engine options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadOptions(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	err := Options{FixedTimestep: time.Millisecond}.Validate()
	var optErr OptionsError
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, "max_timestep", optErr.Field)
}
