package config

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
)

// DefaultCredentialsPath is used when no credentials file is given, or the
// given one does not exist.
const DefaultCredentialsPath = "credentials"

// Credentials is the client id / secret pair for the payout provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// ResolveCredentialsPath returns path when it names an existing file and the
// default path otherwise.
func ResolveCredentialsPath(path string) string {
	if path == "" {
		return DefaultCredentialsPath
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultCredentialsPath
	}
	return path
}

// LoadCredentials reads the client id from the first line of path and the
// secret from the second. A missing file or empty line is a
// *errs.ConfigurationError.
func LoadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		msg := "cannot open credentials file"
		if errors.Is(err, os.ErrNotExist) {
			msg = "couldn't find credentials file, make sure it is specified or named 'credentials'"
		}
		return Credentials{}, &errs.ConfigurationError{Field: path, Message: msg, Err: err}
	}
	defer f.Close()

	var lines [2]string
	sc := bufio.NewScanner(f)
	for i := 0; i < len(lines) && sc.Scan(); i++ {
		lines[i] = strings.TrimSpace(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Credentials{}, &errs.ConfigurationError{Field: path, Message: "cannot read credentials file", Err: err}
	}

	creds := Credentials{ClientID: lines[0], ClientSecret: lines[1]}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, errs.Configf(path, "could not detect client id or secret (line 1: client id, line 2: secret)")
	}
	return creds, nil
}
