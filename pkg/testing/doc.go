// Package testing provides helpers for testing UI descriptions.
//
// # Quick Start
//
// Build a description and make assertions:
//
//	func TestMainWindow(t *testing.T) {
//	    ui := uitest.NewUITester(t)
//	    ui.BuildYAML(mainYAML)
//
//	    ok := ui.Find(uitest.ByText("OK"))
//	    if !ok.Exists() || ok.Type() != widgets.TypeButton {
//	        t.Error("expected an OK button")
//	    }
//	}
//
// Finders compose: Descendant(ByType(widgets.TypeGroupBox), ByType(widgets.TypeLabel))
// finds labels inside group boxes.
//
// # Snapshot Testing
//
// Capture and compare widget trees:
//
//	ui.CaptureSnapshot().MatchesFile(t, "testdata/main.snapshot.yaml")
//
// Update snapshots with:
//
//	UIBUILD_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import uitest "github.com/go-drift/uiloader/pkg/testing"
package testing
