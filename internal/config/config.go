// Package config loads the optional dashlaunch settings file that ships
// next to the launcher binary.
//
// Two formats are accepted: dashlaunch.jsonc (JSONC — JSON with comments,
// stripped via github.com/tidwall/jsonc before parsing with the standard
// encoding/json library) and dashlaunch.yaml / dashlaunch.yml (parsed with
// gopkg.in/yaml.v3). When both exist, the JSONC file wins. When neither
// exists, built-in defaults are used — a missing settings file is not an
// error.
//
// The settings only shape the launch invocation (entry module, script,
// headless flag, directory names); they never change the resolution
// precedence itself (bundled libs first, embedded interpreter first).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// Default values applied when the settings file is absent or omits a key.
const (
	// DefaultEntryModule is the module run via `-m`. The dashboard is a
	// Streamlit app, so the conventional target is the streamlit module.
	DefaultEntryModule = "streamlit"

	// DefaultScript is the dashboard entry script passed to `run`.
	DefaultScript = "main.py"

	// DefaultInterpreter is the system interpreter name resolved through
	// the OS PATH search when no embedded interpreter exists. The generic
	// name is used deliberately, not a versioned one (python3/python3.11);
	// hosts without a generic alias can override it in the settings file.
	DefaultInterpreter = "python"

	// DefaultLibsDir is the bundled-dependencies directory name checked
	// under the anchor.
	DefaultLibsDir = "libs"

	// DefaultEmbeddedDir is the embedded-interpreter directory name
	// checked under the anchor.
	DefaultEmbeddedDir = "py311_emb"

	// DefaultServerPort is the port the dashboard serves on when nothing
	// overrides it. It is only used for diagnostics (doctor, the
	// already-running probe) — it is NOT passed to the child unless
	// serverPort is set explicitly in the settings file.
	DefaultServerPort = 8501
)

// DefaultHeadless is the value emitted for the server's headless switch.
//
// The historical launcher invocation passes --server.headless=false even
// though the launcher's purpose is server-style operation: with headless
// disabled, the server opens the operator's browser on startup, which is
// the desired behavior for this single-operator tool. The flag is always
// emitted explicitly so the dashboard never falls back to its own default.
const DefaultHeadless = false

// Settings file names probed under the anchor directory, in precedence
// order.
var fileNames = []string{"dashlaunch.jsonc", "dashlaunch.yaml", "dashlaunch.yml"}

// Config holds the launcher settings. Field tags cover both supported
// file formats; zero values mean "use the default".
type Config struct {
	// EntryModule is the module executed via the interpreter's `-m` flag.
	EntryModule string `json:"entryModule,omitempty" yaml:"entryModule,omitempty"`

	// Script is the dashboard script passed after the `run` argument.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`

	// Headless is the value for the --server.headless flag. A pointer so
	// that "key absent" (default) and "explicitly false" are distinguishable.
	Headless *bool `json:"headless,omitempty" yaml:"headless,omitempty"`

	// Interpreter is the system interpreter name used when no embedded
	// interpreter exists under the anchor.
	Interpreter string `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`

	// LibsDir is the bundled-dependencies directory name under the anchor.
	// Must be a relative path without traversal.
	LibsDir string `json:"libsDir,omitempty" yaml:"libsDir,omitempty"`

	// EmbeddedDir is the embedded-interpreter directory name under the
	// anchor. Must be a relative path without traversal.
	EmbeddedDir string `json:"embeddedDir,omitempty" yaml:"embeddedDir,omitempty"`

	// ServerPort, when non-zero, is passed to the dashboard as
	// --server.port and used for the pre-launch availability probe.
	// Zero means: emit no port flag, probe the conventional default.
	ServerPort int `json:"serverPort,omitempty" yaml:"serverPort,omitempty"`

	// ExtraArgs are appended verbatim after the fixed startup flags.
	ExtraArgs []string `json:"extraArgs,omitempty" yaml:"extraArgs,omitempty"`

	// Path is the settings file the values were loaded from.
	// Empty when defaults are in effect. Not part of the file format.
	Path string `json:"-" yaml:"-"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	headless := DefaultHeadless
	return &Config{
		EntryModule: DefaultEntryModule,
		Script:      DefaultScript,
		Headless:    &headless,
		Interpreter: DefaultInterpreter,
		LibsDir:     DefaultLibsDir,
		EmbeddedDir: DefaultEmbeddedDir,
	}
}

// Load reads the settings file from the anchor directory, if one exists,
// and merges it over the defaults.
//
// File precedence is dashlaunch.jsonc, then dashlaunch.yaml, then
// dashlaunch.yml — the first one found is used and the rest are ignored.
// A missing file yields the defaults with no error. A file that exists but
// cannot be parsed or validated yields a CLIError with ExitConfigInvalid:
// silently launching with half-applied settings would be worse than
// stopping.
func Load(anchorDir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(anchorDir, name)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to read settings file %s", path), err)
		}

		cfg := Default()
		if parseErr := parse(name, data, cfg); parseErr != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse settings file %s", path), parseErr)
		}
		cfg.Path = path

		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("invalid settings in %s", path), validateErr)
		}
		return cfg, nil
	}

	// No settings file — defaults apply.
	return Default(), nil
}

// parse unmarshals the raw file contents into cfg based on the file name's
// format. For JSONC, comments and trailing commas are stripped first so
// the standard library JSON decoder can handle the rest.
func parse(name string, data []byte, cfg *Config) error {
	if filepath.Ext(name) == ".jsonc" {
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the merged settings for values the launcher cannot work
// with. It is called after every load; the defaults themselves always pass.
func (c *Config) Validate() error {
	if err := model.ValidateEntryModule(c.EntryModule); err != nil {
		return err
	}
	if c.Script == "" {
		return fmt.Errorf("script must not be empty")
	}
	if c.Interpreter == "" {
		return fmt.Errorf("interpreter must not be empty")
	}
	if err := validateRelativeDir("libsDir", c.LibsDir); err != nil {
		return err
	}
	if err := validateRelativeDir("embeddedDir", c.EmbeddedDir); err != nil {
		return err
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("serverPort %d out of range (1-65535, or 0 for unset)", c.ServerPort)
	}
	return nil
}

// validateRelativeDir rejects directory names that would escape the anchor.
// All lookups are anchored at the launcher's own directory; absolute paths
// or traversal would silently break the location-independence invariant.
func validateRelativeDir(key, dir string) error {
	if dir == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("%s %q must be relative to the launcher directory", key, dir)
	}
	clean := filepath.Clean(dir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s %q must not traverse outside the launcher directory", key, dir)
	}
	return nil
}

// HeadlessValue returns the effective headless flag value, falling back to
// the documented default when the key was absent.
func (c *Config) HeadlessValue() bool {
	if c.Headless == nil {
		return DefaultHeadless
	}
	return *c.Headless
}

// ProbePort returns the port used by diagnostics: the configured server
// port when set, otherwise the conventional dashboard default.
func (c *Config) ProbePort() int {
	if c.ServerPort != 0 {
		return c.ServerPort
	}
	return DefaultServerPort
}
