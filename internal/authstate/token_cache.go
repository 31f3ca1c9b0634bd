package authstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hirelink/internal/apiclient"
)

// FileTokenCache stores tokens as JSON in a single file readable only by the
// current user.
type FileTokenCache struct {
	Path string
}

// DefaultTokenCache returns a cache under the user config directory.
func DefaultTokenCache() (*FileTokenCache, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return &FileTokenCache{Path: filepath.Join(dir, "hirelink", "tokens.json")}, nil
}

// Load returns the cached tokens, or zero tokens when the file is missing.
func (c *FileTokenCache) Load() (apiclient.Tokens, error) {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return apiclient.Tokens{}, nil
	}
	if err != nil {
		return apiclient.Tokens{}, fmt.Errorf("read token cache: %w", err)
	}
	var tokens apiclient.Tokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return apiclient.Tokens{}, fmt.Errorf("decode token cache: %w", err)
	}
	return tokens, nil
}

// Save writes tokens, creating the directory when needed.
func (c *FileTokenCache) Save(tokens apiclient.Tokens) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("create token cache dir: %w", err)
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}
	return os.WriteFile(c.Path, data, 0o600)
}

// Clear removes the cache file.
func (c *FileTokenCache) Clear() error {
	if err := os.Remove(c.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}
