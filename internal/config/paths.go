package config

import (
	"os"
	"path/filepath"
)

func defaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "calibrate"))
	}
	return paths
}
