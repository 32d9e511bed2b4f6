package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/bindkit/internal/binding"
	"github.com/dshills/bindkit/internal/collection"
	"github.com/dshills/bindkit/internal/jsondoc"
	"github.com/dshills/bindkit/internal/paths"
	"github.com/dshills/bindkit/internal/property"
	"github.com/dshills/bindkit/internal/script"
	"github.com/dshills/bindkit/internal/widget"
)

const demoCustomer = `{"customer":{"name":"Ada","city":"Zürich"}}`

var demoCities = []string{"Zürich", "Oslo", "Écija", "Bergen", "Ávila"}

// demo: walk through a property, a text field, a JSON document and a
// script-filtered, collated view.
func demoCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a short binding walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), filter)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "#city > 4", "Lua expression over city selecting the listed cities")
	return cmd
}

func runDemo(out io.Writer, filter string) error {
	log := logger.WithComponent("demo")

	engine := binding.NewEngine(binding.WithLogger(logger))
	defer engine.Close()
	if err := widget.Install(engine); err != nil {
		return err
	}
	if err := jsondoc.Install(engine); err != nil {
		return err
	}

	doc, err := jsondoc.Parse(demoCustomer)
	if err != nil {
		return err
	}
	name := property.Of[string]("name")
	field := widget.NewTextField("name")
	form := widget.NewPanel("form", field)

	docBinding, err := engine.Bidirectional(doc, "customer.name", name, paths.Value)
	if err != nil {
		return err
	}
	fieldBinding, err := engine.Bidirectional(name, paths.Value, form, "name.text")
	if err != nil {
		return err
	}
	for _, b := range []*binding.Binding{docBinding, fieldBinding} {
		if err := b.Apply(binding.Up); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "field: %s\n", field.Text())

	field.Type(" Lovelace")
	fmt.Fprintf(out, "document: %s\n", doc.String())

	state := script.NewState(cfg.ScriptOptions(logger)...)
	defer state.Close()
	keep, err := state.Expression(filter, "city")
	if err != nil {
		return err
	}

	cities := collection.From(demoCities)
	sorted := collection.Sort(cities, collection.Collating(cfg.Language()))
	defer sorted.Close()
	listed := collection.Filter(sorted, script.Predicate[string](keep, func(err error) {
		log.Warn("filter: %v", err)
	}))
	defer listed.Close()

	list := widget.NewListBox("cities")
	count := property.Of[int]("count")
	if _, err := engine.Unidirectional(listed, paths.Model, list, paths.Model); err != nil {
		return err
	}
	if _, err := engine.Unidirectional(listed, paths.Size, count, paths.Value); err != nil {
		return err
	}

	cities.Add("Aarhus")
	fmt.Fprintf(out, "cities: %v\n", listed.Items())
	fmt.Fprintf(out, "listed: %d of %d\n", count.Get(), cities.Len())
	if list.Len() != count.Get() {
		return fmt.Errorf("list box shows %d items, count is %d", list.Len(), count.Get())
	}
	return nil
}
