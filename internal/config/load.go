package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the tool's dot-directory inside a target repository.
	DirName = ".ritual"
	// FileName is the config file name inside DirName.
	FileName = "config.yml"
	// PromptsDirName is the prompt-content directory inside DirName.
	PromptsDirName = "prompts"
)

// Path returns the conventional config file location under targetRoot.
func Path(targetRoot string) string {
	return filepath.Join(targetRoot, DirName, FileName)
}

// PromptsDir returns the prompt content root under targetRoot.
func PromptsDir(targetRoot string) string {
	return filepath.Join(targetRoot, DirName, PromptsDirName)
}

// ParseError reports a config document that could not be parsed or fails the
// schema check (missing version).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadOrDefault reads the config file at path if it exists; a prior run's
// file is the source of truth and is never silently replaced with defaults.
// When the file is absent the built-in default is returned instead.
func LoadOrDefault(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a config document. The path is used only for error reporting.
func Parse(data []byte, path string) (*Root, error) {
	var root Root
	if err := yamlUnmarshalStrictVersion(data, &root); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &root, nil
}

// yamlUnmarshalStrictVersion decodes the document and enforces the one hard
// schema requirement: a non-empty version tag.
func yamlUnmarshalStrictVersion(data []byte, root *Root) error {
	if err := yaml.Unmarshal(data, root); err != nil {
		return err
	}
	if strings.TrimSpace(root.Version) == "" {
		return errors.New("missing required field: version")
	}
	return nil
}
