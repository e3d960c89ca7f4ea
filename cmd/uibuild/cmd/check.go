package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/uiloader/pkg/builder"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/resource"
	"github.com/go-drift/uiloader/pkg/ui"
	"github.com/go-drift/uiloader/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Report skipped nodes, missing images and clipped text",
		Long: `Build each description and report what the builder could not use.

Problems (non-zero exit):
  - widget types with no factory, and everything nested inside them
  - rejected properties (for example text of 128 bytes or more)
  - unknown alignment names and properties with no widget
  - "image" properties naming missing or undecodable image resources
  - load errors

Warnings:
  - text wider or taller than its widget, measured with a 7x13 fixed font`,
		Usage: "uibuild check <name|file>...",
		Run:   runCheck,
	})
}

// checkReport is the outcome of checking one description.
type checkReport struct {
	name     string
	widgets  int
	counts   map[builder.Outcome]int
	problems []string
	warnings []string
}

func runCheck(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one description is required\n\nUsage: uibuild check <name|file>...")
	}

	m, release, err := env.openResources()
	if err != nil {
		return err
	}
	defer release()

	failed := 0
	for _, arg := range args {
		r := env.check(m, arg)
		printReport(env, r)
		if len(r.problems) > 0 {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("check failed for %d of %d description(s)", failed, len(args))
	}
	return nil
}

func (e *Env) check(m *resource.Manager, arg string) checkReport {
	r := checkReport{name: arg}

	name, data, err := e.readDescription(m, arg)
	if err != nil {
		r.problems = append(r.problems, err.Error())
		return r
	}

	var build ui.Build
	o := &ui.Opener{Resources: m, Logger: e.Log, OnBuild: func(b ui.Build) { build = b }}
	if _, err := o.BuildData(name, data); err != nil {
		r.problems = append(r.problems, err.Error())
	}

	r.counts = make(map[builder.Outcome]int)
	for _, ev := range build.Events {
		r.counts[ev.Outcome]++
		if ev.Outcome.Skipped() || ev.Outcome == builder.Rejected {
			r.problems = append(r.problems, ev.String())
		}
	}

	tree := build.Tree
	if tree == nil || build.Root == widgets.None {
		return r
	}
	tree.Walk(build.Root, func(h widgets.Handle, _ int) bool {
		r.widgets++
		if v, ok := tree.Prop(h, widgets.PropImage); ok {
			if msg := checkImage(m, v.String()); msg != "" {
				r.problems = append(r.problems, fmt.Sprintf("%s #%d: %s", tree.Type(h), h, msg))
			}
		}
		if text := tree.Text(h); text != "" && layout.Overflows(nil, text, tree.Bounds(h)) {
			b := tree.Bounds(h)
			r.warnings = append(r.warnings, fmt.Sprintf("%s #%d: text %q (%dpx) does not fit %dx%d",
				tree.Type(h), h, text, layout.TextWidth(nil, text), b.W, b.H))
		}
		return true
	})
	e.Log.Debug("checked", zap.String("resource", name), zap.Int("widgets", r.widgets),
		zap.Int("problems", len(r.problems)), zap.Int("warnings", len(r.warnings)))
	return r
}

// checkImage returns a problem description for an image reference, or ""
// when the image exists and decodes.
func checkImage(m *resource.Manager, name string) string {
	info, err := m.Ref(resource.TypeImage, name)
	if err != nil {
		if isNotFound(err) {
			return fmt.Sprintf("image %q not found", name)
		}
		return fmt.Sprintf("image %q: %v", name, err)
	}
	defer m.Unref(info)
	if _, err := resource.DecodeImageConfig(info.Data); err != nil {
		return fmt.Sprintf("image %q: %v", name, err)
	}
	return ""
}

func printReport(env *Env, r checkReport) {
	status := boundsStyle.Render("ok")
	if len(r.problems) > 0 {
		status = errStyle.Render("FAIL")
	}
	env.Printf("%s %s: %d widgets, %d skipped, %d rejected, %d warnings\n",
		status, typeStyle.Render(r.name), r.widgets, skippedCount(r.counts), r.counts[builder.Rejected], len(r.warnings))
	for _, p := range r.problems {
		env.Printf("  %s %s\n", errStyle.Render("error:"), p)
	}
	for _, w := range r.warnings {
		env.Printf("  %s %s\n", warnStyle.Render("warn:"), w)
	}
}

func skippedCount(counts map[builder.Outcome]int) int {
	n := 0
	for o, c := range counts {
		if o.Skipped() {
			n += c
		}
	}
	return n
}
