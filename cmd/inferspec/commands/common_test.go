package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferspec/inferspec/spec"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestParseTargetVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    spec.Version
		wantErr bool
	}{
		{in: "3.0", want: spec.Version300},
		{in: "3.1", want: spec.Version310},
		{in: "3.0.3", want: spec.Version303},
		{in: "3.1.2", want: spec.Version312},
		{in: "2.0", wantErr: true},
		{in: "nonsense", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTargetVersion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "openapi.json", FormatSpecPath("openapi.json"))
}

func TestRejectSymlinkOutput(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, RejectSymlinkOutput(filepath.Join(dir, "new.json")))

	regular := filepath.Join(dir, "regular.json")
	require.NoError(t, os.WriteFile(regular, []byte("{}"), 0o600))
	assert.NoError(t, RejectSymlinkOutput(regular))

	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(regular, link))
	assert.Error(t, RejectSymlinkOutput(link))
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := ReadInput(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
