package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/resource"
)

func init() {
	RegisterCommand(&Command{
		Name:  "compile",
		Short: "Compile YAML descriptions to the binary format",
		Long: `Compile UI descriptions to the binary format read by the loader.

Each argument is either a description file (main.yaml) or a UI resource
name. For a name, <resources.dir>/ui/<name>.yaml is preferred; otherwise the
description is read from the configured stores, so binary descriptions can
be recompiled to the current format version.

Flags:
  -o DIR     Output directory (default: output.dir, else <resources.dir>/ui)
  --store    Write into the resource database instead of files`,
		Usage: "uibuild compile [-o DIR] [--store] <name|file.yaml>...",
		Run:   runCompile,
	})
}

type compileOptions struct {
	outDir string
	store  bool
	inputs []string
}

func parseCompileArgs(args []string) (compileOptions, error) {
	var opts compileOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a directory", args[i])
			}
			opts.outDir = args[i+1]
			i++
		case "--store":
			opts.store = true
		default:
			opts.inputs = append(opts.inputs, args[i])
		}
	}
	if len(opts.inputs) == 0 {
		return opts, fmt.Errorf("at least one description is required\n\nUsage: uibuild compile [-o DIR] [--store] <name|file.yaml>...")
	}
	return opts, nil
}

func runCompile(env *Env, args []string) error {
	opts, err := parseCompileArgs(args)
	if err != nil {
		return err
	}

	m, release, err := env.openResources()
	if err != nil {
		return err
	}
	defer release()

	var db *resource.SQLStore
	if opts.store {
		if db, err = env.openDB(); err != nil {
			return err
		}
		defer db.Close()
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = env.Config.Output.Dir
	}
	if outDir == "" {
		outDir = filepath.Join(env.Config.Resources.Dir, resource.TypeUI.String())
	}

	for _, in := range opts.inputs {
		name, data, err := env.compileSource(m, in)
		if err != nil {
			return err
		}
		doc, err := decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		doc.Version = loader.CurrentVersion

		var buf bytes.Buffer
		if err := loader.Encode(&buf, doc); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}

		if db != nil {
			if err := db.Put(context.Background(), resource.TypeUI, name, buf.Bytes()); err != nil {
				return err
			}
			env.Printf("compiled %s -> %s:ui/%s (%d bytes)\n", in, env.Config.Resources.DB, name, buf.Len())
			continue
		}

		out := filepath.Join(outDir, filepath.FromSlash(name)+".bin")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		env.Log.Debug("compiled", zap.String("input", in), zap.String("output", out), zap.Int("bytes", buf.Len()))
		env.Printf("compiled %s -> %s (%d bytes)\n", in, out, buf.Len())
	}
	return nil
}

func (e *Env) compileSource(m *resource.Manager, arg string) (string, []byte, error) {
	if !isFileArg(arg) {
		if path := e.yamlSource(arg); path != "" {
			data, err := os.ReadFile(path)
			return arg, data, err
		}
	}
	return e.readDescription(m, arg)
}
