package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/bindkit/internal/binding"
	"github.com/dshills/bindkit/internal/jsondoc"
	"github.com/dshills/bindkit/internal/manifest"
	"github.com/dshills/bindkit/internal/notify"
)

// watch <manifest>: bind a model document to a view document and rebind
// whenever the manifest changes.
func watchCmd() *cobra.Command {
	var (
		modelPath string
		once      bool
	)
	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Bind a JSON model to a JSON view and follow manifest edits",
		Long: `Watch loads the manifest and binds the JSON model document (the host)
to an empty view document (the target). Descriptor members and sources are
paths into the model, targets are paths into the view. The view is printed
after every successful rebind. Failed reloads keep the previous bindings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(modelPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), args[0], model, once)
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "JSON model document (default {})")
	cmd.Flags().BoolVar(&once, "once", false, "bind once and exit")
	return cmd
}

func loadModel(path string) (*jsondoc.Document, error) {
	if path == "" {
		return jsondoc.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}
	doc, err := jsondoc.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return doc, nil
}

func runWatch(ctx context.Context, out io.Writer, path string, model *jsondoc.Document, once bool) error {
	log := logger.WithComponent("watch")

	engine := binding.NewEngine(binding.WithLogger(logger))
	defer engine.Close()
	if err := jsondoc.Install(engine); err != nil {
		return err
	}

	view := jsondoc.New()
	sub := view.Subscribe(func(c notify.Change) {
		log.Debug("view %s: %v -> %v", c.Name, c.OldValue, c.NewValue)
	})
	defer sub.Unsubscribe()

	session := manifest.NewSession(engine, model, view)
	defer session.Close()

	w, err := manifest.Watch(path, cfg.WatchOptions(logger)...)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Reload(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return nil
		case u, ok := <-w.Updates():
			if !ok {
				return nil
			}
			err := u.Err
			if err == nil {
				err = session.Apply(u.Manifest)
			}
			if err != nil {
				if once {
					return err
				}
				log.Error("manifest not applied, keeping %d bindings: %v", len(session.Bindings()), err)
				continue
			}
			log.Info("bound %d descriptors from %q", len(u.Manifest.Descriptors), u.Manifest.Name)
			_, _ = out.Write(view.Pretty())
			if once {
				return nil
			}
		}
	}
}
