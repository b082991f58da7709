package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gomission/gomission/internal/app"
	"github.com/gomission/gomission/internal/backend"
	"github.com/gomission/gomission/internal/transmission"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// Path is the config file consulted. FileLoaded reports whether it
	// existed.
	Path       string
	FileLoaded bool
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig      = "GOMISSION_CONFIG"
	envURL         = "GOMISSION_URL"
	envUsername    = "GOMISSION_USERNAME"
	envPassword    = "GOMISSION_PASSWORD"
	envDownloadDir = "GOMISSION_DOWNLOAD_DIR"
	envLogFile     = "GOMISSION_LOG_FILE"
	envTrace       = "GOMISSION_TRACE"
)

const (
	DefaultURL = "http://localhost:9091/transmission/rpc"
	redacted   = "********"
)

// DefaultFile is written on first run.
const DefaultFile = `[connection]
username = ""
password = ""
url = "http://localhost:9091/transmission/rpc"

[fetch]
torrents = "1s"
stats = "2s"
free_space = "10s"
# download_dir = "/srv/torrents"

[logging]
# file = "/tmp/gomission.log"
trace = false
`

// ErrInvalidURL reports a daemon URL that cannot be used.
var ErrInvalidURL = errors.New("invalid rpc url")

// ConfigError is a fatal configuration problem.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Duration accepts Go duration strings such as "1s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// fileConfig mirrors the on-disk layout.
type fileConfig struct {
	Connection struct {
		URL      string `toml:"url" yaml:"url"`
		Username string `toml:"username" yaml:"username"`
		Password string `toml:"password" yaml:"password"`
	} `toml:"connection" yaml:"connection"`
	Fetch struct {
		Torrents    Duration `toml:"torrents" yaml:"torrents"`
		Stats       Duration `toml:"stats" yaml:"stats"`
		FreeSpace   Duration `toml:"free_space" yaml:"free_space"`
		DownloadDir string   `toml:"download_dir" yaml:"download_dir"`
	} `toml:"fetch" yaml:"fetch"`
	Logging struct {
		File  string `toml:"file" yaml:"file"`
		Trace bool   `toml:"trace" yaml:"trace"`
	} `toml:"logging" yaml:"logging"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		App: app.Config{
			Connection: transmission.Connection{URL: DefaultURL},
			Intervals:  backend.DefaultIntervals(),
		},
	}
}

// DefaultPath is config.toml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "gomission", "config.toml"), nil
}

// Options holds the command-line flags bound by Bind.
type Options struct {
	fs *pflag.FlagSet

	configPath  string
	url         string
	username    string
	password    string
	downloadDir string
	logFile     string
	trace       bool
	torrents    time.Duration
	stats       time.Duration
	freeSpace   time.Duration
}

// Bind registers the configuration flags on flags.
func Bind(flags *pflag.FlagSet) *Options {
	o := &Options{fs: flags}
	defaults := backend.DefaultIntervals()
	flags.StringVarP(&o.configPath, "config", "c", "", "path to the config file (TOML or YAML)")
	flags.StringVar(&o.url, "url", "", "transmission RPC url")
	flags.StringVarP(&o.username, "username", "u", "", "RPC username")
	flags.StringVarP(&o.password, "password", "p", "", "RPC password")
	flags.StringVar(&o.downloadDir, "download-dir", "", "directory used for the free space indicator")
	flags.StringVar(&o.logFile, "log-file", "", "path to the log file")
	flags.BoolVar(&o.trace, "trace", false, "enable verbose JSON trace logging")
	flags.DurationVar(&o.torrents, "torrents-interval", defaults.Torrents, "torrent list refresh interval")
	flags.DurationVar(&o.stats, "stats-interval", defaults.Stats, "session statistics refresh interval")
	flags.DurationVar(&o.freeSpace, "free-space-interval", defaults.FreeSpace, "free space refresh interval")
	return o
}

// ConfigPath returns the file to consult and whether the user named it
// explicitly.
func (o *Options) ConfigPath(environ []string) (string, bool, error) {
	if o.fs.Changed("config") {
		return o.configPath, true, nil
	}
	if v, ok := parseEnv(environ)[envConfig]; ok && strings.TrimSpace(v) != "" {
		return v, true, nil
	}
	path, err := DefaultPath()
	return path, false, err
}

// Resolve layers defaults, the config file, the environment and parsed
// flags, in that order.
func (o *Options) Resolve(environ []string) (Config, error) {
	cfg := Defaults()
	env := parseEnv(environ)

	path, explicit, err := o.ConfigPath(environ)
	if err != nil {
		return Config{}, &ConfigError{Err: err}
	}
	cfg.Path = path
	if err := loadFile(&cfg, path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return Config{}, &ConfigError{Path: path, Err: err}
		}
	} else {
		cfg.FileLoaded = true
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	o.applyFlags(&cfg)
	cfg.Flags = o.flagValues()
	return cfg, nil
}

// LoadArgs parses args on a fresh flag set and resolves against environ.
func LoadArgs(args []string, environ []string) (Config, error) {
	flags := pflag.NewFlagSet("gomission", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	o := Bind(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, &ConfigError{Err: err}
	}
	cfg, err := o.Resolve(environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = toml.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	conn := &cfg.App.Connection
	setString(&conn.URL, fc.Connection.URL)
	setString(&conn.Username, fc.Connection.Username)
	setString(&conn.Password, fc.Connection.Password)
	setDuration(&cfg.App.Intervals.Torrents, fc.Fetch.Torrents)
	setDuration(&cfg.App.Intervals.Stats, fc.Fetch.Stats)
	setDuration(&cfg.App.Intervals.FreeSpace, fc.Fetch.FreeSpace)
	setString(&cfg.App.DownloadDir, fc.Fetch.DownloadDir)
	setString(&cfg.Logging.FilePath, fc.Logging.File)
	if fc.Logging.Trace {
		cfg.Logging.Trace = true
	}
	return nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	conn := &cfg.App.Connection
	setString(&conn.URL, env[envURL])
	setString(&conn.Username, env[envUsername])
	if v, ok := env[envPassword]; ok {
		conn.Password = v
	}
	setString(&cfg.App.DownloadDir, env[envDownloadDir])
	setString(&cfg.Logging.FilePath, env[envLogFile])
	if v := strings.TrimSpace(env[envTrace]); v != "" {
		trace, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Err: fmt.Errorf("%s: %w", envTrace, err)}
		}
		cfg.Logging.Trace = trace
	}
	return nil
}

func (o *Options) applyFlags(cfg *Config) {
	conn := &cfg.App.Connection
	if o.fs.Changed("url") {
		conn.URL = o.url
	}
	if o.fs.Changed("username") {
		conn.Username = o.username
	}
	if o.fs.Changed("password") {
		conn.Password = o.password
	}
	if o.fs.Changed("download-dir") {
		cfg.App.DownloadDir = o.downloadDir
	}
	if o.fs.Changed("log-file") {
		cfg.Logging.FilePath = o.logFile
	}
	if o.fs.Changed("trace") {
		cfg.Logging.Trace = o.trace
	}
	if o.fs.Changed("torrents-interval") {
		cfg.App.Intervals.Torrents = o.torrents
	}
	if o.fs.Changed("stats-interval") {
		cfg.App.Intervals.Stats = o.stats
	}
	if o.fs.Changed("free-space-interval") {
		cfg.App.Intervals.FreeSpace = o.freeSpace
	}
}

// flagValues records every flag for the startup trace. Secrets are masked.
func (o *Options) flagValues() map[string]string {
	values := map[string]string{}
	o.fs.VisitAll(func(f *pflag.Flag) {
		v := f.Value.String()
		if f.Name == "password" && v != "" {
			v = redacted
		}
		values[f.Name] = v
	})
	return values
}

// Validate ensures the configuration can reach a daemon.
func Validate(cfg Config) error {
	raw := strings.TrimSpace(cfg.App.Connection.URL)
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{Path: cfg.Path, Err: fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Path: cfg.Path, Err: fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidURL, raw)}
	}
	if u.Host == "" {
		return &ConfigError{Path: cfg.Path, Err: fmt.Errorf("%w %q: missing host", ErrInvalidURL, raw)}
	}
	iv := cfg.App.Intervals
	for name, d := range map[string]time.Duration{
		"torrents":   iv.Torrents,
		"stats":      iv.Stats,
		"free_space": iv.FreeSpace,
	} {
		if d <= 0 {
			return &ConfigError{Path: cfg.Path, Err: fmt.Errorf("fetch.%s must be positive (got %s)", name, d)}
		}
	}
	return nil
}

// Redacted returns a copy of cfg safe to log.
func Redacted(cfg Config) Config {
	if cfg.App.Connection.Password != "" {
		cfg.App.Connection.Password = redacted
	}
	return cfg
}

// WriteDefault creates the default config file at path unless one exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultFile), 0o600); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v Duration) {
	if v != 0 {
		*dst = time.Duration(v)
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}
