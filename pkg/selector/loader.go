package selector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type file struct {
	Elements []string `json:"elements" yaml:"elements" toml:"elements"`
	Suffixes []string `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
}

// LoadFile reads a selector definition from disk. The format is chosen from
// the extension (.json, .yaml/.yml, .toml); unknown extensions try JSON and
// then YAML.
func LoadFile(path string) (Selector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Selector{}, fmt.Errorf("selector: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Load parses a selector definition. Keys left out of the document keep the
// values from Default.
func Load(data []byte, source string) (Selector, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Selector{}, fmt.Errorf("selector: file %s is empty", source)
	}

	doc, err := parseFile(data, source)
	if err != nil {
		return Selector{}, err
	}

	sel := Default()
	if doc.Elements != nil {
		sel.Elements = doc.Elements
	}
	if doc.Suffixes != nil {
		sel.Suffixes = doc.Suffixes
	}
	if err := sel.Validate(); err != nil {
		return Selector{}, fmt.Errorf("selector: %s: %w", source, err)
	}
	return sel, nil
}

func parseFile(data []byte, source string) (file, error) {
	var doc file
	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return file{}, fmt.Errorf("selector: parse %s: %w", source, err)
		}
		return doc, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return file{}, fmt.Errorf("selector: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = file{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return file{}, fmt.Errorf("selector: parse %s: invalid JSON or YAML", source)
}
