package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/appengine-ltd/timberline/internal/appdir"
	"gopkg.in/yaml.v3"
)

const worldFileFormatVersion = 1

// Seconds is a duration in seconds. Config files may spell it as a number
// (30, 2.5) or as a Go duration string ("30s", "1m30s").
type Seconds float64

func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Duration().String())
}

func (s *Seconds) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("seconds: empty value")
	}
	if string(b) == "null" {
		*s = 0
		return nil
	}
	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("seconds: decode string: %w", err)
		}
		return s.parse(raw)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("seconds: invalid value %s", string(b))
	}
	*s = Seconds(f)
	return nil
}

func (s Seconds) MarshalYAML() (any, error) {
	return s.Duration().String(), nil
}

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("seconds: line %d: expected scalar", value.Line)
	}
	return s.parse(value.Value)
}

func (s *Seconds) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = 0
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if !isFinite(f) {
			return fmt.Errorf("seconds: %q is not a finite number", raw)
		}
		*s = Seconds(f)
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("seconds: parse %q: %w", raw, err)
	}
	*s = Seconds(d.Seconds())
	return nil
}

type worldFile struct {
	FormatVersion int         `json:"format_version" yaml:"format_version"`
	World         WorldConfig `json:"world" yaml:"world"`
}

// LoadWorldConfig reads a JSON or YAML world file over the defaults. Missing
// files yield the defaults unchanged.
func LoadWorldConfig(path string) (WorldConfig, error) {
	cfg := DefaultWorldConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return WorldConfig{}, fmt.Errorf("read world config: %w", err)
	}

	file := worldFile{World: cfg}
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return WorldConfig{}, fmt.Errorf("parse world config yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &file); err != nil {
			return WorldConfig{}, fmt.Errorf("parse world config json: %w", err)
		}
	}
	if file.FormatVersion > worldFileFormatVersion {
		return WorldConfig{}, fmt.Errorf("world config format %d is newer than supported %d", file.FormatVersion, worldFileFormatVersion)
	}
	if err := file.World.Validate(); err != nil {
		return WorldConfig{}, fmt.Errorf("world config %s: %w", path, err)
	}
	return file.World, nil
}

func SaveWorldConfig(path string, cfg WorldConfig) error {
	payload := worldFile{FormatVersion: worldFileFormatVersion, World: cfg}
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = yaml.Marshal(payload)
	} else {
		data, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode world config: %w", err)
	}
	return appdir.WriteFile(path, data, 0o600)
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
