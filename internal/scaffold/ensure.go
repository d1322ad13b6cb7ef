package scaffold

import (
	"fmt"
	"os"
	"strings"

	"github.com/Brice1994/minimal-chrome-extension/internal/platform"
)

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) (Outcome, error) {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return Skipped, nil
		}
		return "", fmt.Errorf("%s %w", path, ErrNotDirectory)
	}

	if err := os.MkdirAll(path, platform.DirPerm); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, platform.DirPerm); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return Created, nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(path string, content []byte) (Outcome, error) {
	if fileExists(path) {
		return Skipped, nil
	}
	if err := platform.WriteFileAtomic(path, content, platform.FilePerm); err != nil {
		return "", fmt.Errorf("creating file %s: %w", path, err)
	}
	return Created, nil
}

// ensureLines appends every entry of want that is not already a line of the
// file at path, creating the file if needed. Existing lines are never touched.
func ensureLines(path string, want []string) (Outcome, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	existed := err == nil

	missing := missingLines(string(content), want)
	if len(missing) == 0 {
		return Unchanged, nil, nil
	}

	// Ensure there's a newline before our addition.
	suffix := strings.Join(missing, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, platform.FilePerm)
	if err != nil {
		return "", nil, fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return "", nil, fmt.Errorf("writing to %s: %w", path, err)
	}

	if !existed {
		return Created, missing, nil
	}
	return Patched, missing, nil
}

func missingLines(content string, want []string) []string {
	have := make(map[string]bool)
	for _, l := range strings.Split(content, "\n") {
		have[strings.TrimSpace(l)] = true
	}
	var missing []string
	for _, w := range want {
		if !have[w] {
			missing = append(missing, w)
			have[w] = true
		}
	}
	return missing
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
