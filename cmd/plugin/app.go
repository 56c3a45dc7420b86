package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"bedrock-slash/internal/host/memhost"
	"bedrock-slash/internal/registrar"
	"bedrock-slash/modules/enumpick"
	"bedrock-slash/modules/help"
	"bedrock-slash/modules/ping"
	"bedrock-slash/modules/seen"
	"bedrock-slash/modules/welcome"
	"bedrock-slash/pkg/slash"
)

const (
	envConfigFile         = "SLASH_CONFIG_FILE"
	defaultConfigFilePath = "config/plugin.json"
	dotEnvFilePath        = ".env"
)

var runtimeModuleNames = []string{"ping", "enumpick", "welcome", "seen", "help"}

type appConfig struct {
	logLevel      slog.Level
	commandPrefix string
	modules       []string
}

type fileConfig struct {
	LogLevel      string   `json:"log_level"`
	CommandPrefix string   `json:"command_prefix"`
	Modules       []string `json:"modules"`
}

// envConfig holds overrides applied after the config file.
type envConfig struct {
	ConfigFile    string `env:"SLASH_CONFIG_FILE"`
	LogLevel      string `env:"SLASH_LOG_LEVEL"`
	CommandPrefix string `env:"SLASH_COMMAND_PREFIX"`
}

// run performs plugin startup against the in-memory host and writes the
// resulting registration manifest as JSON to stdout.
func run(stdout io.Writer, stderr io.Writer) error {
	if err := loadDotEnv(dotEnvFilePath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	host := memhost.New(logger)

	pluginRegistrar, err := registrar.New(
		registrar.WithCommandPrefix(cfg.commandPrefix),
		registrar.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("build registrar: %w", err)
	}

	modules, err := buildRuntimeModules(cfg.modules, pluginRegistrar, host, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := pluginRegistrar.Install(ctx, host, modules...); err != nil {
		return fmt.Errorf("install modules: %w", err)
	}
	logger.InfoContext(ctx, "plugin startup complete",
		"prefix", pluginRegistrar.Prefix(),
		"modules", len(modules),
		"commands", len(host.Definitions()),
	)

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(pluginRegistrar.Manifest()); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set are left untouched.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

func loadConfig() (appConfig, error) {
	cfg := defaultAppConfig()

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return appConfig{}, fmt.Errorf("parse env: %w", err)
	}

	configFile, explicit := resolveConfigFilePath(overrides.ConfigFile)
	if err := applyConfigFile(&cfg, configFile, explicit); err != nil {
		return appConfig{}, err
	}
	if err := applyEnvOverrides(&cfg, overrides); err != nil {
		return appConfig{}, err
	}
	if err := validateAppConfig(cfg); err != nil {
		return appConfig{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// resolveConfigFilePath reports the config path and whether it was set explicitly.
func resolveConfigFilePath(fromEnv string) (string, bool) {
	if configFile := strings.TrimSpace(fromEnv); configFile != "" {
		return configFile, true
	}

	return defaultConfigFilePath, false
}

func defaultAppConfig() appConfig {
	return appConfig{
		logLevel:      slog.LevelInfo,
		commandPrefix: registrar.DefaultCommandPrefix,
		modules:       append([]string(nil), runtimeModuleNames...),
	}
}

// applyConfigFile merges the JSON file into cfg. A missing default file keeps
// built-in defaults; a missing explicit file is an error.
func applyConfigFile(cfg *appConfig, path string, explicit bool) error {
	if cfg == nil {
		return fmt.Errorf("apply config file: nil config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var parsed fileConfig
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if rawLevel := strings.TrimSpace(parsed.LogLevel); rawLevel != "" {
		level, err := parseLogLevel(rawLevel)
		if err != nil {
			return fmt.Errorf("parse log_level: %w", err)
		}
		cfg.logLevel = level
	}
	if prefix := strings.TrimSpace(parsed.CommandPrefix); prefix != "" {
		cfg.commandPrefix = prefix
	}
	if parsed.Modules != nil {
		cfg.modules = make([]string, 0, len(parsed.Modules))
		for _, name := range parsed.Modules {
			cfg.modules = append(cfg.modules, strings.TrimSpace(name))
		}
	}

	return nil
}

func applyEnvOverrides(cfg *appConfig, overrides envConfig) error {
	if rawLevel := strings.TrimSpace(overrides.LogLevel); rawLevel != "" {
		level, err := parseLogLevel(rawLevel)
		if err != nil {
			return fmt.Errorf("parse SLASH_LOG_LEVEL: %w", err)
		}
		cfg.logLevel = level
	}
	if prefix := strings.TrimSpace(overrides.CommandPrefix); prefix != "" {
		cfg.commandPrefix = prefix
	}

	return nil
}

func validateAppConfig(cfg appConfig) error {
	knownModules := make(map[string]struct{}, len(runtimeModuleNames))
	for _, moduleName := range runtimeModuleNames {
		knownModules[moduleName] = struct{}{}
	}

	enabled := make(map[string]struct{}, len(cfg.modules))
	for index, moduleName := range cfg.modules {
		if moduleName == "" {
			return fmt.Errorf("modules[%d]: empty module name", index)
		}
		if _, known := knownModules[moduleName]; !known {
			return fmt.Errorf("modules[%d]: unknown module %s", index, moduleName)
		}
		if _, exists := enabled[moduleName]; exists {
			return fmt.Errorf("modules[%d]: duplicate module %s", index, moduleName)
		}
		enabled[moduleName] = struct{}{}
	}

	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported level %q", raw)
	}
}

// buildRuntimeModules instantiates enabled modules in configured order.
func buildRuntimeModules(
	names []string,
	pluginRegistrar *registrar.Registrar,
	host *memhost.Host,
	logger *slog.Logger,
) ([]slash.Module, error) {
	modules := make([]slash.Module, 0, len(names))
	for _, name := range names {
		switch name {
		case "ping":
			modules = append(modules, ping.New(host))
		case "enumpick":
			modules = append(modules, enumpick.New(pluginRegistrar.Prefix(), host))
		case "welcome":
			modules = append(modules, welcome.New(host, logger))
		case "seen":
			modules = append(modules, seen.New(seen.WithLogger(logger)))
		case "help":
			modules = append(modules, help.New(host, pluginRegistrar))
		default:
			return nil, fmt.Errorf("build module %s: unknown module", name)
		}
	}

	return modules, nil
}
