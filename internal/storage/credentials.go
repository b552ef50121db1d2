package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

// CredentialFile holds the login entries loaded from the credentials
// JSON file. The collection is read-only reference data, so it is loaded
// once and never rewritten.
type CredentialFile struct {
	credentials []core.Credential
}

func OpenCredentialFile(path string) (*CredentialFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds []core.Credential
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials file %s: %w", path, err)
	}

	slog.Info("Credentials loaded", "file", path, "count", len(creds))
	return &CredentialFile{credentials: creds}, nil
}

// Authenticate matches username and password exactly, case-sensitive.
// The error never reveals which of the two fields was wrong.
func (cf *CredentialFile) Authenticate(_ context.Context, username, password string) (core.Credential, error) {
	for _, c := range cf.credentials {
		if c.Username == username && c.Password == password {
			return c, nil
		}
	}
	return core.Credential{}, core.ErrBadCredentials
}
