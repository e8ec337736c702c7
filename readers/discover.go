package readers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoMatch is returned when discovery finds no file for a pattern
	ErrNoMatch = errors.New("no matching file")
	// ErrAmbiguous is returned when discovery finds more than one file
	ErrAmbiguous = errors.New("more than one matching file")
	// ErrUnreadable is returned for a named input that cannot be read
	ErrUnreadable = errors.New("input file is not readable")
)

// Discover finds the single file in dir matching pattern. what names the
// file's role in diagnostics, e.g. "coordinate".
func Discover(dir, pattern, what string) (filename string, err error) {
	var matches []string
	if matches, err = filepath.Glob(filepath.Join(dir, pattern)); err != nil {
		return "", fmt.Errorf("bad %s file pattern %q: %v", what, pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no %s file found matching %q in %s, copy it there or name it explicitly",
			ErrNoMatch, what, pattern, displayDir(dir))
	case 1:
		filename = matches[0]
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%w: %d %s files match %q in %s (%s), keep only one or name it explicitly",
			ErrAmbiguous, len(matches), what, pattern, displayDir(dir), strings.Join(matches, ", "))
	}
	err = CheckReadable(filename)
	return
}

// CheckReadable confirms filename exists, is a regular file and can be opened
func CheckReadable(filename string) error {
	fi, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrUnreadable, filename)
		}
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnreadable, filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return f.Close()
}

func displayDir(dir string) string {
	if dir == "" {
		return "the current directory"
	}
	return dir
}
