package sink

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/xui/pkg/errors"
)

// RenderJSON renders the scene as indented JSON.
func RenderJSON(s Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal scene")
	}
	return append(data, '\n'), nil
}

// RenderYAML renders the scene as YAML.
func RenderYAML(s Scene) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal scene")
	}
	return data, nil
}

// ReadJSON parses a scene written by [RenderJSON].
func ReadJSON(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse scene")
	}
	return s, nil
}
