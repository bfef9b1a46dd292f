package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// TempFile is a uniquely named file holding a copy of stdin. The wrapped
// command may rewrite it in place; gi reads it back when routing output.
type TempFile struct {
	path       string
	removeOnce sync.Once
	removeErr  error
}

// Materialize writes data to a new temporary file. suffix is appended to the
// random name so tools that sniff file extensions see the right one.
func Materialize(data []byte, suffix string) (*TempFile, error) {
	if strings.ContainsAny(suffix, `/\`) {
		return nil, fmt.Errorf("stdin file suffix %q must not contain a path separator", suffix)
	}
	f, err := os.CreateTemp("", "gi-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("create stdin file: %w", err)
	}
	tmp := &TempFile{path: f.Name()}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = tmp.Remove()
		return nil, fmt.Errorf("write stdin file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = tmp.Remove()
		return nil, fmt.Errorf("close stdin file: %w", err)
	}
	return tmp, nil
}

// Path returns the file's absolute location.
func (t *TempFile) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Remove deletes the file. It is safe to call more than once, and a file the
// wrapped command already deleted is not an error.
func (t *TempFile) Remove() error {
	if t == nil {
		return nil
	}
	t.removeOnce.Do(func() {
		err := os.Remove(t.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.removeErr = err
		}
	})
	return t.removeErr
}
