package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDetector answers Stat from a fixed set of paths.
type fakeDetector struct {
	present map[string]bool
}

func (f fakeDetector) Stat(path string) (os.FileInfo, error) {
	if f.present[path] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (f fakeDetector) Glob(pattern string) ([]string, error) {
	var out []string
	for p := range f.present {
		if ok, _ := filepath.Match(pattern, p); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestDetectInventory(t *testing.T) {
	result := Detect(fakeDetector{present: map[string]bool{
		"inventory.yaml": true,
	}})
	assert.Equal(t, "inventory.yaml", result.InventoryFile)
	assert.Empty(t, result.ComposeFiles)
}

func TestDetectInventoryPreferenceOrder(t *testing.T) {
	result := Detect(fakeDetector{present: map[string]bool{
		"inventory.yml":  true,
		"inventory.yaml": true,
		"snapshot.yml":   true,
	}})
	assert.Equal(t, "inventory.yml", result.InventoryFile)
}

func TestDetectCompose(t *testing.T) {
	result := Detect(fakeDetector{present: map[string]bool{
		"docker-compose.yml": true,
		"compose.yaml":       true,
	}})
	assert.Empty(t, result.InventoryFile)
	assert.Equal(t, []string{"docker-compose.yml", "compose.yaml"}, result.ComposeFiles)
}

func TestDetectNothing(t *testing.T) {
	result := Detect(fakeDetector{present: map[string]bool{}})
	assert.Empty(t, result.InventoryFile)
	assert.Empty(t, result.ComposeFiles)
}
