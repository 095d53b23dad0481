package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// Ensure TokenStore implements the interfaces.
var (
	_ driven.TokenStore   = (*TokenStore)(nil)
	_ driven.TokenWatcher = (*TokenStore)(nil)
)

// tokenFileName is the token file inside the config directory.
const tokenFileName = "token"

// TokenStore persists the bearer token as a single file with owner-only
// permissions. It also implements TokenWatcher so long-running sessions
// pick up a re-login from another terminal.
type TokenStore struct {
	dir  string
	path string
}

// NewTokenStore creates a token store. If configDir is empty, defaults
// to ~/.arsip.
func NewTokenStore(configDir string) (*TokenStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".arsip")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &TokenStore{
		dir:  configDir,
		path: filepath.Join(configDir, tokenFileName),
	}, nil
}

// Save stores the token.
func (s *TokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the token file path.
func (s *TokenStore) Path() string {
	return s.path
}

// Watch emits the token value whenever the stored file changes. The
// directory is watched rather than the file, since Save and Clear
// replace or remove the file itself.
func (s *TokenStore) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	tokens := make(chan string, 1)
	go func() {
		defer close(tokens)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != tokenFileName {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}

				token, err := s.Load()
				if err != nil {
					logger.Debug("token reload failed: %v", err)
					continue
				}
				// Keep only the newest value when the consumer lags.
				select {
				case <-tokens:
				default:
				}
				select {
				case tokens <- token:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("token watcher error: %v", err)
			}
		}
	}()

	return tokens, nil
}
