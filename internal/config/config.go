package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	stateDirName   = ".devops"
	configFileName = "config.yaml"

	DefaultRegion       = "us-east-1"
	DefaultInstanceType = "t2.micro"
	DefaultTail         = 10
)

// Config holds user overrides for flag defaults and tool binaries. Explicit
// command-line flags always take precedence.
type Config struct {
	DockerBin    string `yaml:"docker_bin" validate:"required"`
	KubectlBin   string `yaml:"kubectl_bin" validate:"required"`
	Region       string `yaml:"region" validate:"required"`
	InstanceType string `yaml:"instance_type" validate:"required"`
	Tail         int    `yaml:"tail" validate:"gte=0"`
	LogLevel     string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

func Default() Config {
	return Config{
		DockerBin:    "docker",
		KubectlBin:   "kubectl",
		Region:       DefaultRegion,
		InstanceType: DefaultInstanceType,
		Tail:         DefaultTail,
	}
}

func GetStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName), nil
}

func DefaultPath() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, configFileName), nil
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the config at path; unlike Load, a missing file is an error.
// Keys absent from the file keep their Default() values.
func LoadFile(path string) (cfg Config, err error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config directory: %w", err)
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
