package launcher

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed mock.yaml
var mockYAML []byte

var mockState = sync.OnceValue(func() State {
	state := Default()
	if err := yaml.Unmarshal(mockYAML, &state); err != nil {
		panic(fmt.Sprintf("launcher: embedded mock snapshot is invalid: %v", err))
	}

	return state
})

// Mock returns the built-in standalone snapshot. Each call returns an
// independent copy.
func Mock() State {
	return mockState().Clone()
}

// LoadMockFile reads a standalone snapshot from a JSON file. Comments and
// trailing commas are accepted so hand-edited fixtures stay readable. Fields
// the file omits keep their Default values.
func LoadMockFile(path string) (State, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return State{}, fmt.Errorf("read mock snapshot: %w", err)
	}

	state := Default()
	if err := json.Unmarshal(jsonc.ToJSON(data), &state); err != nil {
		return State{}, fmt.Errorf("parse mock snapshot %s: %w", path, err)
	}

	return state.Clone(), nil
}
