package csvparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads the recipients CSV at path.
func Load(path string) ([]string, error) {

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: missing required file %s, place it in the same folder as this app",
			ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseRecipients(f)
}
