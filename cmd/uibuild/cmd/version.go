package cmd

import (
	"github.com/go-drift/uiloader/pkg/loader"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the uibuild version and the description format version it writes.",
		Usage: "uibuild version",
		Run: func(env *Env, _ []string) error {
			printVersion(env.Out)
			env.Printf("description format %s\n", loader.CurrentVersion)
			return nil
		},
	})
}
