package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-drift/uiloader/pkg/resource"
)

func init() {
	RegisterCommand(&Command{
		Name:  "store",
		Short: "Manage resources in the resource database",
		Long: `Add, remove and list resources in the SQLite resource database named by
resources.db (or UIBUILD_RESOURCES_DB).

Subcommands:
  put <type> <name> <file>   Store a file as a resource, replacing any existing one
  rm <type> <name>           Remove a resource
  ls <type>                  List resource names of a type

Types: ui, image, theme, font, strings, data`,
		Usage: "uibuild store <put|rm|ls> <type> [name] [file]",
		Run:   runStore,
	})
}

func runStore(env *Env, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("subcommand and type are required\n\nUsage: uibuild store <put|rm|ls> <type> [name] [file]")
	}
	typ, ok := resource.ParseType(args[1])
	if !ok {
		return fmt.Errorf("unknown resource type %q", args[1])
	}

	db, err := env.openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()

	switch args[0] {
	case "put":
		if len(args) != 4 {
			return fmt.Errorf("usage: uibuild store put <type> <name> <file>")
		}
		data, err := os.ReadFile(args[3])
		if err != nil {
			return err
		}
		if err := db.Put(ctx, typ, args[2], data); err != nil {
			return err
		}
		env.Printf("stored %s/%s (%d bytes)\n", typ, args[2], len(data))
	case "rm":
		if len(args) != 3 {
			return fmt.Errorf("usage: uibuild store rm <type> <name>")
		}
		if err := db.Delete(ctx, typ, args[2]); err != nil {
			return err
		}
		env.Printf("removed %s/%s\n", typ, args[2])
	case "ls":
		names, err := db.List(ctx, typ)
		if err != nil {
			return err
		}
		for _, n := range names {
			env.Printf("%s\n", n)
		}
	default:
		return fmt.Errorf("unknown store subcommand %q (use put, rm or ls)", args[0])
	}
	return nil
}
