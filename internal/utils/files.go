package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(b, '\n'), nil
}

// PrettyYAML marshals a value as YAML.
func PrettyYAML(v any) ([]byte, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// Encode marshals v as "json" or "yaml".
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return PrettyJSON(v)
	case "yaml", "yml":
		return PrettyYAML(v)
	}
	return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
}

// OutputName derives a sibling file name for src with a new suffix, e.g.
// "data/sales.xlsx" + ".clean.csv" -> "data/sales.clean.csv".
func OutputName(src, suffix string) string {
	base := strings.TrimSuffix(src, filepath.Ext(src))
	return base + suffix
}
