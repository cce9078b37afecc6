package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// NodeAttributes represents the loose attribute map of a grammar node.
// It uses "mapstructure" tags to match the attribute names hosts already use (stepSize, time).
// Pointer fields distinguish "absent" from zero.
type NodeAttributes struct {
	Grammar  string   `json:"grammar" mapstructure:"grammar"`
	StepSize *float64 `json:"stepSize,omitempty" mapstructure:"stepSize"`
	Angle    *float64 `json:"angle,omitempty" mapstructure:"angle"`
	Time     *float64 `json:"time,omitempty" mapstructure:"time"`
}

// ToolArguments represents the arguments of the grammar MCP tools.
type ToolArguments struct {
	Grammar    string   `json:"grammar" mapstructure:"grammar"`
	Format     string   `json:"format" mapstructure:"format"`
	Preset     string   `json:"preset" mapstructure:"preset"`
	Iterations *float64 `json:"iterations,omitempty" mapstructure:"iterations"`
	Angle      *float64 `json:"angle,omitempty" mapstructure:"angle"`
	Step       *float64 `json:"step,omitempty" mapstructure:"step"`
	Seed       *float64 `json:"seed,omitempty" mapstructure:"seed"`
}

// Decode fills out from a loosely typed map. Numeric strings are accepted; unknown keys are
// rejected so misspelled attributes do not pass silently.
func Decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create attribute decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode attributes: %w", err)
	}
	return nil
}
