package config

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"coinburst/internal/assets"
)

// FileName is the per-user config file looked up in ConfigDir.
const FileName = "coinburst.toml"

// Source names reported by Resolve when no file was used.
const SourceEmbedded = "embedded"

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "default"
	}
	return s
}

// profileID picks a per-binary profile:
// 1) COINBURST_PROFILE env (e.g., "dev", "kiosk")
// 2) <exeBase>-<hash8 of full exe path>
func profileID() string {
	if p := strings.TrimSpace(os.Getenv("COINBURST_PROFILE")); p != "" {
		return sanitize(p)
	}
	exe, _ := os.Executable()
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	sum := sha1.Sum([]byte(exe))
	return sanitize(base) + "-" + hex.EncodeToString(sum[:])[:8]
}

// ConfigDir = OS config dir / CoinBurst / profileID()
//
//	Windows: %APPDATA%\CoinBurst\<profile>\
//	macOS:   ~/Library/Application Support/CoinBurst/<profile>/
//	Linux:   ~/.config/CoinBurst/<profile>/
//
// Empty when neither a config nor a home dir is known (browser builds).
func ConfigDir() string {
	root, _ := os.UserConfigDir()
	if root == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return ""
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "CoinBurst", profileID())
}

func ConfigPath(name string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// Resolve finds the active configuration:
// 1) the file named by COINBURST_CONFIG (must exist)
// 2) ConfigPath(FileName) if present
// 3) the embedded defaults
//
// The second return value names where the config came from.
func Resolve() (*Config, string, error) {
	if p := strings.TrimSpace(os.Getenv("COINBURST_CONFIG")); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	if p := ConfigPath(FileName); p != "" {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	cfg, err := Embedded()
	return cfg, SourceEmbedded, err
}

// Embedded parses the defaults shipped inside the binary.
func Embedded() (*Config, error) {
	return Parse(assets.DefaultConfig(), SourceEmbedded)
}

// WriteDefault writes the embedded default file to path unless something is
// already there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfig(), 0o644); err != nil {
		return false, fmt.Errorf("write default config %s: %w", path, err)
	}
	return true, nil
}
