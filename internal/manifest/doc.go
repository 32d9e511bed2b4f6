// Package manifest loads binding descriptors from files.
//
// A manifest lists the bindings between a host object and a target, one
// entry per descriptor. TOML, YAML and JSON are supported and selected by
// file extension:
//
//	name = "customer form"
//
//	[[binding]]
//	member = "customer"
//	source = "name"
//	target = "nameField.text"
//	type   = "bidirectional"
//
// The YAML and JSON forms use a "bindings" list with the same keys. Type
// accepts source_to_target (the default), target_to_source and
// bidirectional, ignoring case, dashes and underscores.
//
// A Watcher reloads a manifest when its file changes, and a Session swaps the
// live bindings of a host to match each reloaded manifest.
package manifest
