package rtlweaver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the controller specification sheet an Apply call works from.
// Timing values are nanoseconds; entries that do not parse as numbers are
// skipped during context derivation rather than failing the build.
type Spec struct {
	ControllerType string           `json:"controller_type" yaml:"controller_type"`
	Protocol       string           `json:"protocol" yaml:"protocol"`
	DataWidth      int              `json:"data_width" yaml:"data_width"`
	AddrWidth      int              `json:"addr_width" yaml:"addr_width"`
	Endian         string           `json:"endian" yaml:"endian"`
	Features       map[string]any   `json:"features" yaml:"features"`
	AddressMap     []map[string]any `json:"address_map" yaml:"address_map"`
	Sim            SimParams        `json:"sim" yaml:"sim"`
	Timing         map[string]any   `json:"timing" yaml:"timing"`
}

// SimParams is the simulation sub-object of a spec sheet.
type SimParams struct {
	ClockMHz        float64 `json:"clock_mhz" yaml:"clock_mhz"`
	NumTransactions int     `json:"num_transactions" yaml:"num_transactions"`
}

// LoadSpec reads a spec sheet from a JSON or YAML file, chosen by extension
// (.yaml/.yml parse as YAML, everything else as JSON).
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	var s Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse spec %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse spec %s: %w", path, err)
		}
	}
	return &s, nil
}
