package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigNames are the config files looked up by FindConfig, in order.
var ConfigNames = []string{".ddc.yaml", ".ddc.yml", "ddc.yaml", "ddc.yml"}

// FindConfig looks upwards from startDir for a config file.
// It returns the absolute path of the first one found.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigNames {
			if isFile(filepath.Join(dir, name)) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config not found")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
