package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/kizilcik/internal/ui/label"
)

// ImageExt is the file extension of character images.
const ImageExt = ".png"

// Entry is a character image found on disk
type Entry struct {
	Name string // Display name (file name without extension)
	Path string // Full path to the image file
}

// ScanDirectory lists the character images in dir, keyed by folded name.
// Hidden files and subdirectories are skipped.
func ScanDirectory(dir string) (map[string]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	found := make(map[string]Entry)
	for _, entry := range entries {
		// Skip directories
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ImageExt) {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		found[label.Key(stem)] = Entry{
			Name: stem,
			Path: filepath.Join(dir, name),
		}
	}

	return found, nil
}

// FileName returns the image file name for a character.
func FileName(name string) string {
	return name + ImageExt
}
