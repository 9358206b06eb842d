package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// maxFileSize caps the size of any configuration file read by the
// built-in loaders.
const maxFileSize = 10 << 20

// readConfigFile reads path with the size guard applied.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access config file '%s': %w", path, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: '%s' is %d bytes", ErrFileSize, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return data, nil
}

// TOMLLoader parses TOML configuration files.
type TOMLLoader struct{}

// Extensions implements FileLoader.
func (TOMLLoader) Extensions() []string { return []string{"toml"} }

// Load implements FileLoader.
func (TOMLLoader) Load(path string) (map[string]any, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
	}
	return tree, nil
}

// YAMLLoader parses YAML configuration files, claiming both the .yaml
// and .yml extensions.
type YAMLLoader struct{}

func (YAMLLoader) Extensions() []string { return []string{"yaml", "yml"} }

func (YAMLLoader) Load(path string) (map[string]any, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
	}
	return tree, nil
}

// JSONLoader parses JSON configuration files. Numbers decode as
// json.Number to preserve integer precision.
type JSONLoader struct{}

func (JSONLoader) Extensions() []string { return []string{"json"} }

func (JSONLoader) Load(path string) (map[string]any, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
	}
	return tree, nil
}
