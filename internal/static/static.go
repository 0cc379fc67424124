// Package static resolves request paths against a frontend root.
// A Source never hands out a file that lives outside its root: names are
// cleaned before use, and on-disk roots resolve symlinks scoped to the root.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrOutsideRoot is returned for names that would escape the root.
var ErrOutsideRoot = errors.New("static: path escapes root")

// Source opens frontend files by slash-separated name.
type Source interface {
	Open(name string) (fs.File, error)
	String() string
}

// Clean turns a request path ("/index.html", "css/site.css") into an
// fs.ValidPath name. The path is normalised first, so "assets/../app.js"
// is "app.js"; only names that still climb above the root are rejected.
func Clean(name string) (string, error) {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return ".", nil
	}
	if strings.ContainsAny(name, "\\\x00") {
		return "", ErrOutsideRoot
	}
	name = path.Clean(name)
	if name == ".." || strings.HasPrefix(name, "../") || !fs.ValidPath(name) {
		return "", ErrOutsideRoot
	}
	return name, nil
}

// DirSource serves files from a directory on disk.
type DirSource struct {
	root string
}

// NewDir returns a Source rooted at dir. The directory does not have to
// exist yet; Open reports fs.ErrNotExist until it does.
func NewDir(dir string) (*DirSource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving frontend dir %q: %w", dir, err)
	}
	return &DirSource{root: abs}, nil
}

func (d *DirSource) String() string { return d.root }

// Open opens name below the root. Symlinks are resolved as if the root
// were "/", so a link pointing out of the tree finds nothing instead of
// the outside file (see openInRoot).
func (d *DirSource) Open(name string) (fs.File, error) {
	clean, err := Clean(name)
	if err != nil {
		return nil, err
	}
	f, err := openInRoot(d.root, filepath.FromSlash(clean))
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: unwrapPathErr(err)}
	}
	return f, nil
}

// unwrapPathErr strips the absolute path from err so callers never see
// it. ENOTDIR ("index.html/x") is reported as a missing file.
func unwrapPathErr(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	if errors.Is(err, syscall.ENOTDIR) {
		return fs.ErrNotExist
	}
	return err
}

// FSSource serves files from an fs.FS, typically an embed.FS subtree.
type FSSource struct {
	fsys  fs.FS
	label string
}

// NewFS wraps fsys; label is only used for logging.
func NewFS(fsys fs.FS, label string) *FSSource {
	return &FSSource{fsys: fsys, label: label}
}

func (s *FSSource) String() string { return s.label }

func (s *FSSource) Open(name string) (fs.File, error) {
	clean, err := Clean(name)
	if err != nil {
		return nil, err
	}
	return s.fsys.Open(clean)
}

// Available reports whether the root of src can be opened as a directory.
func Available(src Source) bool {
	f, err := src.Open(".")
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

// DefaultDir returns <dir of the running executable>/../frontend.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "..", "frontend"), nil
}
