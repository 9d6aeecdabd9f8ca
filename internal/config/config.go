package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for worklog, stored in
// ~/.worklog/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	// Backend selects where entries are stored: "file" or "hosted".
	Backend string `json:"backend"`
	// UserName identifies the person logging; required by the hosted
	// backend, ignored by the file backend.
	UserName string `json:"user_name"`
	// Hosted holds the hosted work-log service settings.
	Hosted HostedConfig `json:"hosted"`
}

// HostedConfig holds the hosted work-log service settings.
type HostedConfig struct {
	// ServiceURL is the base URL of the hosted service.
	ServiceURL string `json:"service_url"`
	// AccessKey authenticates requests to the hosted service.
	AccessKey string `json:"access_key"`
}

const (
	// BackendFile stores entries in a local CSV log.
	BackendFile = "file"
	// BackendHosted stores entries in the shared hosted table.
	BackendHosted = "hosted"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{Backend: BackendFile}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// worklog configuration – ~/.worklog/config.json
//
// The defaults below keep entries in a local CSV file
// (~/.worklog/work_log.csv). Switch the backend to "hosted" to log into
// a shared table partitioned by user name.
{
  // Storage backend: "file" (local CSV log) or "hosted" (shared table).
  "backend": "file",

  // Your name, used to partition hosted entries.
  // Can be overridden with --user or the WORKLOG_USER environment variable.
  "user_name": "",

  // ── Hosted backend ───────────────────────────────────────────────────────
  "hosted": {
    // Base URL of the hosted work-log service.
    // Also read from WORKLOG_SERVICE_URL.
    "service_url": "",

    // Service access key. Also read from WORKLOG_ACCESS_KEY; prefer the
    // environment variable over keeping the key in this file.
    "access_key": ""
  }
}
`

// configFilePath returns the path to ~/.worklog/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".worklog", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content
// starts with //. Only full-line comments are handled; inline comments are
// not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// applyEnv overlays environment overrides onto cfg. The environment wins
// over the file so secrets never need to live on disk.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKLOG_SERVICE_URL"); v != "" {
		cfg.Hosted.ServiceURL = v
	}
	if v := os.Getenv("WORKLOG_ACCESS_KEY"); v != "" {
		cfg.Hosted.AccessKey = v
	}
	if v := os.Getenv("WORKLOG_USER"); v != "" {
		cfg.UserName = v
	}
}

// Load reads ~/.worklog/config.json, creating it with annotated defaults
// on first run, then applies environment overrides. Lines starting with //
// are treated as comments and stripped before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		cleaned := stripLineComments(data)
		if err := json.Unmarshal(cleaned, &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		if cfg.Backend == "" {
			cfg.Backend = BackendFile
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks that the selected backend can actually be used. Missing
// hosted secrets fail here, before any store operation is attempted.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		return nil
	case BackendHosted:
		if c.Hosted.ServiceURL == "" {
			return errors.New("hosted backend selected but no service URL configured (set hosted.service_url or WORKLOG_SERVICE_URL)")
		}
		if c.Hosted.AccessKey == "" {
			return errors.New("hosted backend selected but no access key configured (set hosted.access_key or WORKLOG_ACCESS_KEY)")
		}
		return nil
	}
	return fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendFile, BackendHosted)
}

// writeDefault creates the config directory and writes the annotated
// default config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
