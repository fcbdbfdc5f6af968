package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/reflectd/internal/id"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// LoadFromFile reads a configuration File from a JSON or YAML file.
// The format is auto-detected from the extension (.yaml, .yml for YAML,
// otherwise JSON). Defaults are applied, endpoints are normalized and
// validated, and any endpoint or response missing an ID gets one.
func LoadFromFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseJSON decodes a configuration document from JSON.
func ParseJSON(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return finish(&f)
}

// ParseYAML decodes a configuration document from YAML.
func ParseYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return finish(&f)
}

// finish applies defaults, normalizes and validates endpoints, and
// assigns missing IDs.
func finish(f *File) (*File, error) {
	settings := DefaultSettings()
	settings.merge(f.Settings)
	f.Settings = settings

	for i, ep := range f.Endpoints {
		ep.Normalize()
		if err := ep.Validate(); err != nil {
			return nil, fmt.Errorf("endpoint %d (%s %s): %w", i, ep.Method, ep.Path, err)
		}
		if ep.ID == "" {
			ep.ID = id.New(id.PrefixEndpoint)
		}
		for _, r := range ep.Responses {
			if r.ID == "" {
				r.ID = id.New(id.PrefixResponse)
			}
		}
	}
	return f, nil
}
