package utils

import "path/filepath"

// PathInfo resolves relPath to an absolute path and the directory
// containing it. The file-reading frontends use it so that diagnostics
// name the resolved path rather than whatever was typed on the command
// line.
func PathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Resolves ../ segments and cleans the path.
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}
