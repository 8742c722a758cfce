package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Output formats for one-shot parsing
	OutputJSON = "json"
	OutputYAML = "yaml"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// EnvPrefix prefixes every environment variable, e.g. EXAM_META_DIR
	EnvPrefix = "EXAM_META"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// ErrVersionRequested is returned by Load when --version was passed
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the exam metadata server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Papers configuration
	PapersDirectory string

	// One-shot mode: filenames given as positional arguments are parsed and
	// printed instead of starting the server
	Filenames []string
	Output    string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio,
		Host:            DefaultHost,
		Port:            DefaultPort,
		PapersDirectory: currentDir,
		Output:          OutputJSON,
		Version:         "1.0.0",
		ServerName:      "exam-meta",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags loads configuration from os.Args, the environment and .env
func LoadFromFlags() (*Config, error) {
	// A missing .env file is fine; variables already set win over it.
	_ = godotenv.Load()
	return Load(os.Args[1:])
}

// Load builds a configuration from args and the environment. Flags take
// precedence over environment variables, which take precedence over defaults.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setupViperEnvironment(v, cfg)

	fs := pflag.NewFlagSet("exam-meta", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	defineCommandLineFlags(fs, cfg)
	fs.Usage = usage(fs)

	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return nil, ErrVersionRequested
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fs.SetOutput(os.Stderr)
			fs.Usage()
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := bindFlagsToViper(v, fs); err != nil {
		return nil, err
	}

	populateConfigFromViper(v, cfg)
	cfg.Filenames = fs.Args()

	if cfg.PapersDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PapersDirectory); err == nil {
			cfg.PapersDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("dir", cfg.PapersDirectory)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("maxfilesize", cfg.MaxFileSize)
	v.SetDefault("output", cfg.Output)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for SSE over HTTP")
	fs.String("host", cfg.Host, "Server host address (server mode only)")
	fs.Int("port", cfg.Port, "Server port (server mode only)")
	fs.String("dir", cfg.PapersDirectory, "Directory containing question papers")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.StringP("output", "o", cfg.Output, "Output format for parsed filenames (json, yaml)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, name := range []string{"mode", "host", "port", "dir", "loglevel", "maxfilesize", "output"} {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// usage returns the custom usage message
func usage(fs *pflag.FlagSet) func() {
	return func() {
		out := os.Stderr
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "\nexam-meta - exam paper filename metadata over MCP\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  %s                                   # stdio MCP server, current directory\n", os.Args[0])
		fmt.Fprintf(out, "  %s --dir=/srv/papers                 # stdio MCP server over a papers directory\n", os.Args[0])
		fmt.Fprintf(out, "  %s --mode=server --port=8081         # SSE MCP server\n", os.Args[0])
		fmt.Fprintf(out, "  %s -o yaml 9702_s23_qp_41.pdf        # parse filenames and exit\n", os.Args[0])
		fmt.Fprintf(out, "\nEnvironment Variables (also read from .env):\n")
		fmt.Fprintf(out, "  EXAM_META_MODE         Server mode\n")
		fmt.Fprintf(out, "  EXAM_META_HOST         Server host\n")
		fmt.Fprintf(out, "  EXAM_META_PORT         Server port\n")
		fmt.Fprintf(out, "  EXAM_META_DIR          Papers directory\n")
		fmt.Fprintf(out, "  EXAM_META_LOGLEVEL     Log level\n")
		fmt.Fprintf(out, "  EXAM_META_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(out, "  EXAM_META_OUTPUT       Output format\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.PapersDirectory = v.GetString("dir")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
	cfg.Output = v.GetString("output")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// One-shot parsing never touches the papers directory
	if !c.IsOneShot() {
		if err := c.validatePapersDirectory(); err != nil {
			return err
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.Output != OutputJSON && c.Output != OutputYAML {
		return fmt.Errorf("invalid output format: %s (must be one of: json, yaml)", c.Output)
	}

	return nil
}

// validatePapersDirectory checks the papers directory, creating it if missing
func (c *Config) validatePapersDirectory() error {
	if c.PapersDirectory == "" {
		return errors.New("papers directory cannot be empty")
	}

	if _, err := os.Stat(c.PapersDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.PapersDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create papers directory %s: %w", c.PapersDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access papers directory %s: %w", c.PapersDirectory, err)
	}
	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsOneShot returns true when filenames were passed on the command line
func (c *Config) IsOneShot() bool {
	return len(c.Filenames) > 0
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PapersDirectory: %s, LogLevel: %s, MaxFileSize: %d, Output: %s}",
		c.Mode, c.Host, c.Port, c.PapersDirectory, c.LogLevel, c.MaxFileSize, c.Output)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
