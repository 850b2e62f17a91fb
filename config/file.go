package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// File is the layout of the YAML configuration file consumed by the server binary.
// Everything omitted in the file keeps its default value.
type File struct {
	Server struct {
		Addr string `yaml:"addr"`
		NET  NET    `yaml:"net"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Static struct {
		Prefix string `yaml:"prefix"`
		Root   string `yaml:"root"`
	} `yaml:"static"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// DefaultFile returns the file layout filled with defaults.
func DefaultFile() *File {
	f := new(File)
	f.Server.Addr = "127.0.0.1:8080"
	f.Server.NET = Default().NET
	f.Log.Level = "info"
	f.Static.Prefix = "/"
	f.Static.Root = "public"

	return f
}

// Load reads the YAML file at path on top of DefaultFile.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(content)
}

// Parse does the same as Load, but takes the file content directly.
func Parse(content []byte) (*File, error) {
	f := DefaultFile()
	if err := yaml.UnmarshalStrict(content, f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return f, nil
}

// Config returns the server config described by the file, with zero values filled.
func (f *File) Config() *Config {
	return Fill(&Config{NET: f.Server.NET})
}
