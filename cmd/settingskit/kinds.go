package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"settingskit/internal/catalog"
)

type variantLister interface {
	Variants() []string
}

func (c *cli) kindsCommand() *cobra.Command {
	var collection string
	cmd := &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List the entity kinds a blueprint can use",
		Long: `Kinds lists every entity kind by collection together with the type the
server reads. Given a kind name it lists the kind's properties instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if len(args) == 1 {
				if err := writeProperties(w, catalog.Collection(collection), args[0]); err != nil {
					return err
				}
			} else {
				writeKinds(w, catalog.Collection(collection))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Only list kinds of this collection, e.g. steps or triggers")
	return cmd
}

func writeKinds(w *tabwriter.Writer, collection catalog.Collection) {
	fmt.Fprintln(w, "COLLECTION\tKIND\tTYPE")
	for _, k := range catalog.Kinds() {
		if collection != "" && k.Collection != collection {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.Collection, k.Name, k.Type())
	}
}

func writeProperties(w *tabwriter.Writer, collection catalog.Collection, name string) error {
	var matches []catalog.Kind
	for _, k := range catalog.Kinds() {
		if k.Name == name && (collection == "" || k.Collection == collection) {
			matches = append(matches, k)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("unknown kind %q", name)
	case 1:
	default:
		return fmt.Errorf("kind %q exists in several collections, choose one with --collection", name)
	}

	kind := matches[0]
	fmt.Fprintf(w, "%s (%s, type %s)\n\n", kind.Name, kind.Collection, kind.Type())
	fmt.Fprintln(w, "PROPERTY\tPARAMETER\tREQUIRED\tVARIANTS")
	for _, p := range kind.New().Properties() {
		required := ""
		if p.Mandatory() {
			required = "yes"
		}
		variants := ""
		if v, ok := p.(variantLister); ok {
			variants = strings.Join(v.Variants(), ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name(), p.Key(), required, variants)
	}
	return nil
}
