package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/bindkit/internal/manifest"
)

// errInvalidManifests is returned when at least one manifest failed.
var errInvalidManifests = errors.New("invalid manifests")

// validate <file>...: parse each manifest and list its descriptors.
func validateCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Check binding manifests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				m, err := manifest.Load(path, cfg.ManifestOptions()...)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: FAIL\n", path)
					for _, e := range unjoin(err) {
						fmt.Fprintf(out, "  %v\n", e)
					}
					continue
				}
				fmt.Fprintf(out, "%s: ok (%q, %d bindings)\n", path, m.Name, len(m.Descriptors))
				if quiet {
					continue
				}
				for _, d := range m.Descriptors {
					fmt.Fprintf(out, "  %s\n", d)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidManifests, failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary line per manifest")
	return cmd
}

// unjoin flattens an errors.Join tree into its leaves.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, unjoin(e)...)
		}
		return out
	}
	return []error{err}
}
