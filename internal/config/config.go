package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectRoot string // explicit root; empty means discover by walking upward
	TestDir     string
	LibDir      string

	// Classification settings
	TestSuffix     string
	SourceSuffixes []string
	WalkSuffixes   []string

	// Execution settings
	Runner         string
	DefaultPackage string

	// Command flags
	Flags Flags

	// Cached discovered root
	rootCache string
}

// Flags holds command-line flags
type Flags struct {
	DryRun   bool
	Root     string
	Runner   string
	JSON     bool
	Output   string
	FromFile string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		TestDir:        DefaultTestDir,
		LibDir:         DefaultLibDir,
		TestSuffix:     DefaultTestSuffix,
		Runner:         DefaultRunner,
		DefaultPackage: DefaultPackage,
	}
	// Copy default suffix sets so callers can override without touching the defaults
	cfg.SourceSuffixes = make([]string, len(DefaultSourceSuffixes))
	copy(cfg.SourceSuffixes, DefaultSourceSuffixes)
	cfg.WalkSuffixes = make([]string, len(DefaultWalkSuffixes))
	copy(cfg.WalkSuffixes, DefaultWalkSuffixes)
	return cfg
}

// LoadEnv loads a .env file from the working directory when present.
// A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// Debug reports whether debug tracing is enabled via the environment.
func Debug() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// ResolveRoot returns the project root: the --root flag, the explicit
// ProjectRoot, or the first ancestor of the working directory containing
// the test directory. The result is cached for the lifetime of the Config.
func (c *Config) ResolveRoot() (string, error) {
	if c.rootCache != "" {
		return c.rootCache, nil
	}

	if explicit := c.explicitRoot(); explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve project root %s: %w", explicit, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project root %s: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project root is not a directory: %s", abs)
		}
		c.rootCache = abs
		return abs, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, c.TestDir))
		if err == nil && info.IsDir() {
			c.rootCache = dir
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found walking up from the current directory", c.TestDir)
		}
		dir = parent
	}
}

func (c *Config) explicitRoot() string {
	if c.Flags.Root != "" {
		return c.Flags.Root
	}
	return c.ProjectRoot
}

// TestPath returns the absolute path of the test-script directory.
func (c *Config) TestPath() (string, error) {
	root, err := c.ResolveRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, c.TestDir), nil
}

// LibPath returns the absolute path of the library subdirectory.
func (c *Config) LibPath() (string, error) {
	root, err := c.ResolveRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, c.LibDir), nil
}

// RunnerCommand returns the external test runner, using the flag if provided.
func (c *Config) RunnerCommand() string {
	if c.Flags.Runner != "" {
		return c.Flags.Runner
	}
	return c.Runner
}
