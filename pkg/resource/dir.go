package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/module"
)

// Extensions tried by DirStore, per type, in order.
var dirExtensions = map[Type][]string{
	TypeUI:      {".bin", ".yaml", ".yml"},
	TypeImage:   {".png", ".jpg", ".jpeg", ".bmp", ".webp"},
	TypeTheme:   {".bin", ".yaml"},
	TypeFont:    {".ttf", ".otf"},
	TypeStrings: {".bin", ".yaml"},
	TypeData:    {""},
}

// DirStore reads resources from a directory tree laid out as
// <root>/<type>/<name><ext>, for example assets/ui/main.bin.
type DirStore struct {
	Root string
}

// NewDirStore returns a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{Root: dir}
}

// Load implements Store. Names may contain slashes for subdirectories but
// must be clean relative paths; other names are an error. Names a portable
// file tree cannot hold (":" or Windows device names such as "aux") are
// reported as ErrNotFound, so a Chain can still find them in a later store.
func (s *DirStore) Load(_ context.Context, typ Type, name string) ([]byte, error) {
	if err := checkLocal(name); err != nil {
		return nil, err
	}
	if err := module.CheckFilePath(name); err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a portable file name: %v", ErrNotFound, typ, name, err)
	}
	exts, ok := dirExtensions[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, typ, name)
	}
	base := filepath.Join(s.Root, typ.String(), filepath.FromSlash(name))
	for _, ext := range exts {
		data, err := os.ReadFile(base + ext)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s %q in %s", ErrNotFound, typ, name, s.Root)
}

// Path returns the file a resource would be loaded from, or "" if none of
// the candidate files exist.
func (s *DirStore) Path(typ Type, name string) string {
	if checkLocal(name) != nil || module.CheckFilePath(name) != nil {
		return ""
	}
	base := filepath.Join(s.Root, typ.String(), filepath.FromSlash(name))
	for _, ext := range dirExtensions[typ] {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

// checkLocal rejects names that are unclean or would leave the store root.
func checkLocal(name string) error {
	if name == "" || path.Clean(name) != name || !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("resource: bad name %q", name)
	}
	return nil
}
