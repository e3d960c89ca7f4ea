package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/resource"
)

// openResources returns a manager reading from the configured resource
// directory, then the configured database. The returned func releases the
// database.
func (e *Env) openResources() (*resource.Manager, func(), error) {
	var (
		chain resource.Chain
		db    *resource.SQLStore
	)
	if dir := strings.TrimSpace(e.Config.Resources.Dir); dir != "" {
		chain = append(chain, resource.NewDirStore(dir))
	}
	if path := strings.TrimSpace(e.Config.Resources.DB); path != "" {
		var err error
		db, err = resource.OpenSQLStore(path)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, db)
	}
	release := func() {
		if db != nil {
			_ = db.Close()
		}
	}
	return resource.NewManager(chain, e.Log), release, nil
}

// openDB opens the configured resource database, which must be set.
func (e *Env) openDB() (*resource.SQLStore, error) {
	path := strings.TrimSpace(e.Config.Resources.DB)
	if path == "" {
		return nil, fmt.Errorf("no resource database configured (set resources.db or UIBUILD_RESOURCES_DB)")
	}
	return resource.OpenSQLStore(path)
}

// yamlSource finds the YAML description for a UI name in the resource
// directory. It returns "" when there is none.
func (e *Env) yamlSource(name string) string {
	if e.Config.Resources.Dir == "" {
		return ""
	}
	base := filepath.Join(e.Config.Resources.Dir, resource.TypeUI.String(), filepath.FromSlash(name))
	for _, ext := range []string{".yaml", ".yml"} {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

// isFileArg reports whether arg names a description file rather than a
// resource.
func isFileArg(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".bin":
		_, err := os.Stat(arg)
		return err == nil
	}
	return false
}

// resourceName derives a UI resource name from a description file path.
func resourceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func decode(data []byte) (*loader.Document, error) {
	if loader.IsBinary(data) {
		return loader.DecodeBinary(data)
	}
	return loader.DecodeYAML(data)
}

// readDescription returns the description for arg, which is either a file
// path or a UI resource name.
func (e *Env) readDescription(m *resource.Manager, arg string) (string, []byte, error) {
	if isFileArg(arg) {
		data, err := os.ReadFile(arg)
		return resourceName(arg), data, err
	}
	info, err := m.Ref(resource.TypeUI, arg)
	if err != nil {
		return arg, nil, err
	}
	defer m.Unref(info)
	return arg, info.Data, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, resource.ErrNotFound)
}
