package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Metadata(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the formmap version", versionCmd.Short)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"release", "1.4.2", "formmap version 1.4.2\n"},
		{"development build", "dev", "formmap version dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)
			original := version
			version = tt.version
			defer func() { version = original }()

			out, err := execute(t, "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "version", "extra")

	assert.Error(t, err)
}
