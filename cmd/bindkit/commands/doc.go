// Package commands defines the bindkit CLI.
//
// Commands
//
//   - validate   Parse binding manifests and report every problem
//   - watch      Bind a manifest between two JSON documents and rebind on edits
//   - demo       Walk through property, widget, document and view bindings
//   - config     Print the resolved configuration
//
// # Implementation
//
// The root command resolves configuration (defaults, bindkit.toml, then
// BINDKIT_* variables) and builds the logger before any subcommand runs.
// Subcommands write results to the command output and log to its error
// stream.
package commands
