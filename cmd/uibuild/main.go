// Command uibuild compiles and inspects UI description resources.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/uiloader/cmd/uibuild/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
