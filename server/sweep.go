package server

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Sweep removes files below dir that were last modified more than retention
// before now. It returns the number of removed files.
func Sweep(dir string, retention time.Duration, now time.Time) (int, error) {
	var count int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()

		if err != nil {
			return nil
		}

		if now.Sub(info.ModTime()) < retention {
			return nil
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		count++

		return nil
	})

	return count, err
}
