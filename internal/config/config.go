package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents pricing engine configuration
type EngineConfig struct {
	Devices      int    `yaml:"devices"`       // Simulated device count
	ComputeUnits int    `yaml:"compute_units"` // Parallelism units per device
	Options      int    `yaml:"options"`       // Per-device option count before scaling
	Paths        int    `yaml:"paths"`         // Simulation paths per option
	Seed         uint64 `yaml:"seed"`          // Input generation seed
	Method       string `yaml:"method"`        // threaded or streamed
	Scaling      string `yaml:"scaling"`       // strong or weak
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Engine settings
	Engine EngineConfig `yaml:"engine"`
}

type YAMLConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	Server  struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// Benchmark defaults matching the original multi-GPU sample.
const (
	DefaultOptions      = 8 * 1024
	DefaultPaths        = 262144
	DefaultSeed         = 123
	DefaultDevices      = 2
	DefaultComputeUnits = 64
)

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "mcpricer.log"),
		},
		Engine: EngineConfig{
			Devices:      getEnvInt("ENGINE_DEVICES", DefaultDevices),
			ComputeUnits: getEnvInt("ENGINE_COMPUTE_UNITS", DefaultComputeUnits),
			Options:      getEnvInt("ENGINE_OPTIONS", DefaultOptions),
			Paths:        getEnvInt("ENGINE_PATHS", DefaultPaths),
			Seed:         uint64(getEnvInt("ENGINE_SEED", DefaultSeed)),
			Method:       getEnv("ENGINE_METHOD", "streamed"),
			Scaling:      getEnv("ENGINE_SCALING", "weak"),
		},
	}

	// Values from config.yaml override built-in defaults but not environment
	// variables that were set explicitly.
	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Server.Port != "" && os.Getenv("PORT") == "" {
			cfg.Port = yamlCfg.Server.Port
		}
		if yamlCfg.Logging.LogLevel != "" && os.Getenv("LOG_LEVEL") == "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" && os.Getenv("LOG_FILE") == "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
		if yamlCfg.Engine.Devices > 0 && os.Getenv("ENGINE_DEVICES") == "" {
			cfg.Engine.Devices = yamlCfg.Engine.Devices
		}
		if yamlCfg.Engine.ComputeUnits > 0 && os.Getenv("ENGINE_COMPUTE_UNITS") == "" {
			cfg.Engine.ComputeUnits = yamlCfg.Engine.ComputeUnits
		}
		if yamlCfg.Engine.Options > 0 && os.Getenv("ENGINE_OPTIONS") == "" {
			cfg.Engine.Options = yamlCfg.Engine.Options
		}
		if yamlCfg.Engine.Paths > 0 && os.Getenv("ENGINE_PATHS") == "" {
			cfg.Engine.Paths = yamlCfg.Engine.Paths
		}
		if yamlCfg.Engine.Seed > 0 && os.Getenv("ENGINE_SEED") == "" {
			cfg.Engine.Seed = yamlCfg.Engine.Seed
		}
		if yamlCfg.Engine.Method != "" && os.Getenv("ENGINE_METHOD") == "" {
			cfg.Engine.Method = yamlCfg.Engine.Method
		}
		if yamlCfg.Engine.Scaling != "" && os.Getenv("ENGINE_SCALING") == "" {
			cfg.Engine.Scaling = yamlCfg.Engine.Scaling
		}
	}

	return cfg
}

// loadYAMLConfig attempts to load config.yaml from the working directory
func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
