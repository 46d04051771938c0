package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	creds, err := LoadCredentials(writeFile(t, "client-abc\r\nsecret-xyz\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, Credentials{ClientID: "client-abc", ClientSecret: "secret-xyz"}, creds)
}

func TestLoadCredentialsIncomplete(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"only id":      "client-abc\n",
		"blank secret": "client-abc\n   \n",
		"blank first":  "\nsecret\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCredentials(writeFile(t, content))
			assert.ErrorIs(t, err, errs.ErrConfiguration)
			assert.Contains(t, err.Error(), "could not detect client id or secret")
		})
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, errs.ErrConfiguration)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "couldn't find credentials file")
}

func TestResolveCredentialsPath(t *testing.T) {
	existing := writeFile(t, "a\nb\n")

	assert.Equal(t, existing, ResolveCredentialsPath(existing))
	assert.Equal(t, DefaultCredentialsPath, ResolveCredentialsPath(""))
	assert.Equal(t, DefaultCredentialsPath, ResolveCredentialsPath(filepath.Join(t.TempDir(), "missing")))
}
