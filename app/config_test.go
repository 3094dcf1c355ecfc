package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigAndMigrateCommands(t *testing.T) {
	dir := t.TempDir()

	toml := `
[auth]
adminpassword = "s3cret"

[db]
gormengine = "sqlite"
name = "` + filepath.ToSlash(filepath.Join(dir, "mediboard.db")) + `"
extras = ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(toml), 0o600))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "toml dump", args: []string{"config", "-c", dir}, want: []string{"***", "sqlite"}},
		{name: "json dump", args: []string{"config", "-c", dir, "--json"}, want: []string{`"AdminPassword": "***"`}},
		{name: "migrate", args: []string{"migrate", "-c", dir}, want: []string{"database is up to date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			dumpJSON = false

			require.NoError(t, rootCmd.Execute())

			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}

			assert.NotContains(t, out.String(), "s3cret")
		})
	}
}
