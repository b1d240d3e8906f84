package wizard

import (
	"os"
	"path/filepath"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	InventoryFile string // path if found, empty otherwise
	ComposeFiles  []string
}

// Detector abstracts filesystem lookups for testing.
type Detector interface {
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

// Detect scans the working directory for known snapshot sources.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	inventoryPaths := []string{
		"inventory.yml",
		"inventory.yaml",
		"snapshot.yml",
		"inventory/inventory.yml",
	}
	for _, p := range inventoryPaths {
		if _, err := d.Stat(p); err == nil {
			result.InventoryFile = p
			break
		}
	}

	composePatterns := []string{
		"docker-compose.yml",
		"docker-compose.yaml",
		"compose.yml",
		"compose.yaml",
	}
	for _, pattern := range composePatterns {
		if _, err := d.Stat(pattern); err == nil {
			result.ComposeFiles = append(result.ComposeFiles, pattern)
		}
	}

	return result
}
