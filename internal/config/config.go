package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/rtc-menu/internal/app"
	"github.com/atomicstack/rtc-menu/internal/menu"
	"github.com/atomicstack/rtc-menu/internal/store"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

// Layout is the optional TOML file describing the menu.
type Layout struct {
	Title    string   `toml:"title"`
	Items    []string `toml:"items"`
	Editable *int     `toml:"editable"`
	PageSize int      `toml:"page_size"`
	Footer   *bool    `toml:"footer"`
}

const (
	envPrefix     = "RTC_MENU_"
	envConfig     = envPrefix + "CONFIG"
	envStore      = envPrefix + "STORE"
	envBackend    = envPrefix + "BACKEND"
	envSlot       = envPrefix + "SLOT"
	envPageSize   = envPrefix + "PAGE_SIZE"
	envFPS        = envPrefix + "FPS"
	envWidth      = envPrefix + "WIDTH"
	envHeight     = envPrefix + "HEIGHT"
	envShowFooter = envPrefix + "FOOTER"
	envTrace      = envPrefix + "TRACE"
	envLogFile    = envPrefix + "LOG_FILE"
	envLogLevel   = envPrefix + "LOG_LEVEL"
	envIOTimeout  = envPrefix + "IO_TIMEOUT"
)

const (
	DefaultStorePath = "rtc.txt"
	DefaultSlot      = "rtc"
	DefaultPageSize  = 12
	DefaultFPS       = 30
	DefaultTitle     = menu.DefaultTitle
	DefaultLogLevel  = "info"
	DefaultIOTimeout = time.Second
)

// Flags holds the values bound onto a flag set by BindFlags.
type Flags struct {
	Config    *string
	Store     *string
	Backend   *string
	Slot      *string
	PageSize  *int
	FPS       *int
	Width     *int
	Height    *int
	Footer    *bool
	Trace     *bool
	LogFile   *string
	LogLevel  *string
	IOTimeout *time.Duration
}

// BindFlags registers every configuration flag on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	return &Flags{
		Config:    fs.String("config", "", "path to a TOML menu layout file"),
		Store:     fs.String("store", DefaultStorePath, "path to the value file or sqlite database"),
		Backend:   fs.String("backend", store.KindFile, "storage backend: file or sqlite"),
		Slot:      fs.String("slot", DefaultSlot, "setting name used by the sqlite backend"),
		PageSize:  fs.Int("page-size", DefaultPageSize, "maximum number of items per page"),
		FPS:       fs.Int("fps", DefaultFPS, "render rate in frames per second"),
		Width:     fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)"),
		Height:    fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)"),
		Footer:    fs.Bool("footer", false, "enable footer hint row (disabled by default)"),
		Trace:     fs.Bool("trace", false, "enable verbose JSON trace logging"),
		LogFile:   fs.String("log-file", "", "path to the log file"),
		LogLevel:  fs.String("log-level", DefaultLogLevel, "minimum log level (debug, info, warn, error)"),
		IOTimeout: fs.Duration("io-timeout", DefaultIOTimeout, "time limit for each store read or write"),
	}
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("rtc-menu", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return Resolve(fs, flags, environ, args)
}

// Resolve merges parsed flags with the environment and the layout file.
// Precedence is flag, then environment, then file, then default. argv is kept
// for tracing only.
func Resolve(fs *pflag.FlagSet, flags *Flags, environ []string, argv []string) (Config, error) {
	env := parseEnv(environ)
	r := resolver{fs: fs, env: env}

	configPath := r.str("config", envConfig, *flags.Config)
	layout, err := LoadLayout(configPath)
	if err != nil {
		return Config{}, err
	}

	pageSize := r.integer("page-size", envPageSize, *flags.PageSize)
	if !r.fromFlagOrEnv("page-size", envPageSize) && layout.PageSize != 0 {
		pageSize = layout.PageSize
	}
	footer := r.boolean("footer", envShowFooter, *flags.Footer)
	if !r.fromFlagOrEnv("footer", envShowFooter) && layout.Footer != nil {
		footer = *layout.Footer
	}
	title := layout.Title
	if title == "" {
		title = DefaultTitle
	}
	editable := 0
	if layout.Editable != nil {
		editable = *layout.Editable
	}

	cfg := Config{
		App: app.Config{
			StorePath:     r.str("store", envStore, *flags.Store),
			Backend:       strings.ToLower(strings.TrimSpace(r.str("backend", envBackend, *flags.Backend))),
			Slot:          r.str("slot", envSlot, *flags.Slot),
			PageSize:      pageSize,
			FPS:           r.integer("fps", envFPS, *flags.FPS),
			Width:         r.integer("width", envWidth, *flags.Width),
			Height:        r.integer("height", envHeight, *flags.Height),
			ShowFooter:    footer,
			Title:         title,
			Items:         append([]string(nil), layout.Items...),
			EditableIndex: editable,
			IOTimeout:     r.duration("io-timeout", envIOTimeout, *flags.IOTimeout),
		},
		Logging: Logging{
			FilePath: r.str("log-file", envLogFile, *flags.LogFile),
			Level:    r.str("log-level", envLogLevel, *flags.LogLevel),
			Trace:    r.boolean("trace", envTrace, *flags.Trace),
		},
		Args: append([]string(nil), argv...),
	}
	cfg.Flags = map[string]string{
		"config":    configPath,
		"store":     cfg.App.StorePath,
		"backend":   cfg.App.Backend,
		"slot":      cfg.App.Slot,
		"pageSize":  strconv.Itoa(cfg.App.PageSize),
		"fps":       strconv.Itoa(cfg.App.FPS),
		"width":     strconv.Itoa(cfg.App.Width),
		"height":    strconv.Itoa(cfg.App.Height),
		"footer":    strconv.FormatBool(cfg.App.ShowFooter),
		"trace":     strconv.FormatBool(cfg.Logging.Trace),
		"logFile":   cfg.Logging.FilePath,
		"logLevel":  cfg.Logging.Level,
		"ioTimeout": cfg.App.IOTimeout.String(),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadLayout reads a TOML layout file. An empty path yields an empty layout.
func LoadLayout(path string) (Layout, error) {
	var layout Layout
	if path == "" {
		return layout, nil
	}
	meta, err := toml.DecodeFile(path, &layout)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Layout{}, fmt.Errorf("layout %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return layout, nil
}

type resolver struct {
	fs  *pflag.FlagSet
	env map[string]string
}

func (r resolver) changed(name string) bool {
	return r.fs != nil && r.fs.Changed(name)
}

func (r resolver) fromFlagOrEnv(name, envKey string) bool {
	if r.changed(name) {
		return true
	}
	v, ok := r.env[envKey]
	return ok && strings.TrimSpace(v) != ""
}

func (r resolver) str(name, envKey, flagValue string) string {
	if r.changed(name) {
		return flagValue
	}
	return envOrDefault(r.env, envKey, flagValue)
}

func (r resolver) integer(name, envKey string, flagValue int) int {
	if r.changed(name) {
		return flagValue
	}
	return envOrInt(r.env, envKey, flagValue)
}

func (r resolver) boolean(name, envKey string, flagValue bool) bool {
	if r.changed(name) {
		return flagValue
	}
	return envOrBool(r.env, envKey, flagValue)
}

func (r resolver) duration(name, envKey string, flagValue time.Duration) time.Duration {
	if r.changed(name) {
		return flagValue
	}
	return envOrDuration(r.env, envKey, flagValue)
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

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects settings the program cannot start with.
func Validate(cfg Config) error {
	var errs []error
	a := cfg.App
	if a.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", a.Width))
	}
	if a.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", a.Height))
	}
	if a.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be >= 1 (got %d)", a.PageSize))
	}
	if a.FPS < 1 || a.FPS > 120 {
		errs = append(errs, fmt.Errorf("fps must be between 1 and 120 (got %d)", a.FPS))
	}
	if a.IOTimeout <= 0 {
		errs = append(errs, fmt.Errorf("io timeout must be positive (got %s)", a.IOTimeout))
	}
	if strings.TrimSpace(a.StorePath) == "" {
		errs = append(errs, errors.New("store path must not be empty"))
	}
	switch a.Backend {
	case store.KindFile, "":
	case store.KindSQLite:
		if strings.TrimSpace(a.Slot) == "" {
			errs = append(errs, errors.New("sqlite backend needs a slot name"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want %s or %s)", a.Backend, store.KindFile, store.KindSQLite))
	}
	if n := len(a.Items); n > 0 && a.EditableIndex >= n {
		errs = append(errs, fmt.Errorf("editable index %d outside 0..%d", a.EditableIndex, n-1))
	}
	if cfg.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(cfg.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("log level: %w", err))
		}
	}
	return errors.Join(errs...)
}
