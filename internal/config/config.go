package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/dotview/internal/app"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the configuration file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig    = "DOTVIEW_CONFIG"
	envLogFile   = "DOTVIEW_LOG_FILE"
	envTrace     = "DOTVIEW_TRACE"
	envExportDir = "DOTVIEW_EXPORT_DIR"
	envViewer    = "DOTVIEW_VIEWER"
	envFooter    = "DOTVIEW_FOOTER"
	envVerbose   = "DOTVIEW_VERBOSE"
	envWidth     = "DOTVIEW_WIDTH"
	envHeight    = "DOTVIEW_HEIGHT"
)

const (
	flagConfig    = "config"
	flagLogFile   = "log-file"
	flagTrace     = "trace"
	flagExportDir = "export-dir"
	flagViewer    = "viewer"
	flagFooter    = "footer"
	flagVerbose   = "verbose"
	flagWidth     = "width"
	flagHeight    = "height"
)

const (
	DefaultExportDir = "exports"
	DefaultViewer    = "xdot"
)

// fileConfig mirrors the YAML configuration file. Unset keys stay nil so
// they do not shadow defaults.
type fileConfig struct {
	LogFile   *string `yaml:"log-file"`
	Trace     *bool   `yaml:"trace"`
	ExportDir *string `yaml:"export-dir"`
	Viewer    *string `yaml:"viewer"`
	Footer    *bool   `yaml:"footer"`
	Verbose   *bool   `yaml:"verbose"`
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
}

// BindFlags registers every setting on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "path to a YAML config file (default $XDG_CONFIG_HOME/dotview/config.yaml)")
	fs.String(flagLogFile, "", "path to the log file")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	fs.String(flagExportDir, DefaultExportDir, "directory receiving exported .dot files")
	fs.String(flagViewer, DefaultViewer, "command that opens the current export")
	fs.Bool(flagFooter, false, "enable footer hint row (disabled by default)")
	fs.Bool(flagVerbose, false, "print success messages for actions")
	fs.Int(flagWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(flagHeight, 0, "desired viewport height in rows (0 uses terminal height)")
}

// LoadArgs parses args on a fresh flag set and resolves them against
// environ.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("dotview", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fs, fs.Args(), environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve merges parsed flags, the environment and the config file. A flag
// set on the command line wins over the environment, which wins over the
// file, which wins over the flag default.
func Resolve(fs *pflag.FlagSet, positional []string, environ []string) (Config, error) {
	if len(positional) != 1 {
		return Config{}, fmt.Errorf("expected exactly one graph file, got %d arguments", len(positional))
	}
	env := parseEnv(environ)

	path, explicit := configPath(fs, env)
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	r := resolver{fs: fs, env: env}

	logFile := r.str(flagLogFile, envLogFile, file.LogFile)
	trace := r.boolean(flagTrace, envTrace, file.Trace)
	exportDir := r.str(flagExportDir, envExportDir, file.ExportDir)
	viewer := r.str(flagViewer, envViewer, file.Viewer)
	footer := r.boolean(flagFooter, envFooter, file.Footer)
	verbose := r.boolean(flagVerbose, envVerbose, file.Verbose)
	width := r.integer(flagWidth, envWidth, file.Width)
	height := r.integer(flagHeight, envHeight, file.Height)

	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}
	if strings.TrimSpace(viewer) == "" {
		return Config{}, errors.New("viewer must not be empty")
	}
	if exportDir == "" {
		exportDir = DefaultExportDir
	}

	cfg := Config{
		App: app.Config{
			GraphPath:  positional[0],
			Width:      width,
			Height:     height,
			ShowFooter: footer,
			Verbose:    verbose,
			ExportDir:  exportDir,
			Viewer:     viewer,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Flags: map[string]string{
			"graph":     positional[0],
			"exportDir": exportDir,
			"viewer":    viewer,
			"width":     strconv.Itoa(width),
			"height":    strconv.Itoa(height),
			"footer":    strconv.FormatBool(footer),
			"trace":     strconv.FormatBool(trace),
			"verbose":   strconv.FormatBool(verbose),
			"logFile":   logFile,
		},
		Args: append([]string(nil), positional...),
	}
	if file.present {
		cfg.File = path
	}
	return cfg, nil
}

// configPath picks the config file. explicit reports whether the user
// named it, in which case it must exist.
func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if fs.Changed(flagConfig) {
		v, _ := fs.GetString(flagConfig)
		return v, true
	}
	if v := env[envConfig]; v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dotview", "config.yaml"), false
}

type loadedFile struct {
	fileConfig
	present bool
}

func readFile(path string, explicit bool) (loadedFile, error) {
	if path == "" {
		return loadedFile{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return loadedFile{}, nil
		}
		return loadedFile{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var out loadedFile
	if err := yaml.Unmarshal(data, &out.fileConfig); err != nil {
		return loadedFile{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	out.present = true
	return out, nil
}

type resolver struct {
	fs  *pflag.FlagSet
	env map[string]string
}

func (r resolver) str(flag, envKey string, file *string) string {
	v, _ := r.fs.GetString(flag)
	if r.fs.Changed(flag) {
		return v
	}
	if e, ok := r.env[envKey]; ok {
		return e
	}
	if file != nil {
		return *file
	}
	return v
}

func (r resolver) boolean(flag, envKey string, file *bool) bool {
	v, _ := r.fs.GetBool(flag)
	if r.fs.Changed(flag) {
		return v
	}
	if e, ok := r.env[envKey]; ok && strings.TrimSpace(e) != "" {
		if parsed, err := strconv.ParseBool(e); err == nil {
			return parsed
		}
	}
	if file != nil {
		return *file
	}
	return v
}

func (r resolver) integer(flag, envKey string, file *int) int {
	v, _ := r.fs.GetInt(flag)
	if r.fs.Changed(flag) {
		return v
	}
	if e, ok := r.env[envKey]; ok && strings.TrimSpace(e) != "" {
		if parsed, err := strconv.Atoi(e); err == nil {
			return parsed
		}
	}
	if file != nil {
		return *file
	}
	return v
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
