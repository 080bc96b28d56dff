package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vidgen/internal/config"
	"vidgen/internal/logging"
)

const defaultEnvFile = ".env"

type globalFlags struct {
	config    string
	envFile   string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// loadEnv reads KEY=value pairs into the process environment before the
// config is loaded, so VIDGEN_* fallbacks can live in a dotenv file.
// Variables already set are left alone.
func (c *commandContext) loadEnv() error {
	path := strings.TrimSpace(c.flags.envFile)
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env file %s not found", path)
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

// logger builds the structured logger for a command. quiet raises the
// default level to warn so progress output is not interleaved with info
// lines; an explicit --log-level always wins.
func (c *commandContext) logger(cmd *cobra.Command, quiet bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	overrides := []logging.FromConfigOption{logging.WithConsole(cmd.ErrOrStderr())}
	if quiet {
		overrides = append(overrides, logging.WithLevel("warn"))
	}
	overrides = append(overrides,
		logging.WithLevel(c.flags.logLevel),
		logging.WithFormat(c.flags.logFormat),
	)
	return logging.NewFromConfig(cfg, overrides...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
