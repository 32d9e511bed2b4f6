// Package widget provides headless stand-ins for UI components and the
// binding rules that make them discoverable by a binding.Engine.
//
// The widgets hold state only; nothing is drawn. Colors and fonts use
// tcell types so that a terminal front end can render them directly.
//
// Every widget reports attribute changes through notify, under the names
// defined in package paths. Text fields additionally expose a Document with
// its own edit events, and lists and tables share a Selection model whose
// events can be marked as adjusting.
//
// Call Install to register the widget rules on an engine:
//
//	engine := binding.NewEngine()
//	if err := widget.Install(engine); err != nil {
//		return err
//	}
package widget
