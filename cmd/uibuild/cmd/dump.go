package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/ui"
	"github.com/go-drift/uiloader/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "dump",
		Short: "Print the widget tree built from a description",
		Long: `Build a UI resource and print the resulting widget tree.

Each line shows the widget type, its handle, its resolved bounds relative to
its parent and its properties.

Flags:
  --source   Print the description itself as YAML instead of building it.
             Works for binary descriptions too.`,
		Usage: "uibuild dump [--source] <name|file>",
		Run:   runDump,
	})
}

var (
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	boundsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	propStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
)

func runDump(env *Env, args []string) error {
	var (
		source bool
		target string
	)
	for _, arg := range args {
		switch arg {
		case "--source":
			source = true
		default:
			if target != "" {
				return fmt.Errorf("dump takes one description\n\nUsage: uibuild dump [--source] <name|file>")
			}
			target = arg
		}
	}
	if target == "" {
		return fmt.Errorf("description is required\n\nUsage: uibuild dump [--source] <name|file>")
	}

	m, release, err := env.openResources()
	if err != nil {
		return err
	}
	defer release()

	name, data, err := env.readDescription(m, target)
	if err != nil {
		return err
	}

	if source {
		doc, err := decode(data)
		if err != nil {
			return err
		}
		out, err := loader.EncodeYAML(doc)
		if err != nil {
			return err
		}
		_, err = env.Out.Write(out)
		return err
	}

	tree := widgets.NewTree()
	o := &ui.Opener{Resources: m, Logger: env.Log, Tree: tree}
	root, err := o.BuildData(name, data)
	if root != widgets.None {
		printTree(env.Out, tree, root)
	}
	return err
}

func printTree(w io.Writer, tree *widgets.Tree, root widgets.Handle) {
	tree.Walk(root, func(h widgets.Handle, depth int) bool {
		b := tree.Bounds(h)
		line := strings.Repeat("  ", depth) +
			typeStyle.Render(tree.Type(h).String()) + " " +
			handleStyle.Render("#"+strconv.Itoa(int(h))) + " " +
			boundsStyle.Render(fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.W, b.H))
		for _, key := range tree.PropNames(h) {
			v, _ := tree.Prop(h, key)
			line += " " + propStyle.Render(key+"="+strconv.Quote(v.String()))
		}
		fmt.Fprintln(w, line)
		return true
	})
}
