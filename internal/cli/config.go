package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/dblmodel/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyOutput   = "output"
	cfgKeyLogLevel = "log_level"
	cfgKeyInfer    = "infer"

	outputText = "text"
	outputJSON = "json"

	envPrefix = "DBLMODEL"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# dblmodel CLI configuration

# Output format: text or json (overridable by --json)
output: text

# Log level: debug, info, warn or error (overridable by --log-level)
log_level: warn

# Infer missing objects before validating (overridable by --infer)
infer: false
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// Environment variables prefixed with DBLMODEL_ override the file.
func loadConfig(flagDir string) (*viper.Viper, error) {
	configDir, err := paths.ResolveConfigDir(flagDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyOutput, outputText)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyInfer, false)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// checkConfig rejects configuration values the CLI does not understand.
func checkConfig(v *viper.Viper) error {
	switch out := v.GetString(cfgKeyOutput); out {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("config: output must be %q or %q, got %q", outputText, outputJSON, out)
	}
	return nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// newLogger builds a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
