package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumina-dev/lumina/pkg/hydrate"
	"github.com/lumina-dev/lumina/pkg/ssr"
	"github.com/lumina-dev/lumina/pkg/wire"
)

func inspectCmd() *cobra.Command {
	var fromHTML bool
	var global string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a hydration payload and describe its contents",
		Long: `Decode a hydration payload and print its route matches, the disposition
of every loader and action field (immediate, deferred, or rejected), and
any reconstructed route errors.

The file is payload JSON as captured from the wire or the archive. With
--html, it is a rendered page and the payload is extracted from the
embedded script tag first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if fromHTML || strings.HasSuffix(args[0], ".html") {
				extracted, ok := ssr.ExtractPayload(raw, global)
				if !ok {
					return fmt.Errorf("no embedded payload found in %s", args[0])
				}
				raw = extracted
			}

			p, err, _ := hydrate.NewSource(raw).Take()
			if err != nil {
				return err
			}

			printPayload(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromHTML, "html", false, "Extract the payload from a rendered page")
	cmd.Flags().StringVar(&global, "global", ssr.DefaultGlobal, "Global the payload is embedded under")

	return cmd
}

func printPayload(p *hydrate.Payload) {
	fmt.Printf("Matches (%d):\n", len(p.Matches))
	for _, m := range p.Matches {
		info("%s", m.ID)
	}

	printRouteData("Loader data", p.LoaderData)
	printRouteData("Action data", p.ActionData)

	if len(p.Errors) > 0 {
		dec := &wire.Decoder{}
		fmt.Printf("\nRoute errors (%d):\n", len(p.Errors))
		for _, id := range sortedKeys(p.Errors) {
			info("%s: %v", id, dec.DecodeError(p.Errors[id]))
		}
	}
}

func printRouteData(label string, data map[string]*wire.Value) {
	if len(data) == 0 {
		return
	}

	fmt.Printf("\n%s (%d routes):\n", label, len(data))
	for _, id := range sortedKeys(data) {
		v := data[id]
		info("%s  [%s]", id, disposition(v.Kind, v.Error))

		fields, ok := v.Value.(map[string]any)
		if !ok {
			if v.Value != nil {
				warn("%s: route entry is not a fields object", id)
			}
			continue
		}
		for _, name := range sortedKeys(fields) {
			info("  %s: %s", name, describeField(fields[name]))
		}
	}
}

// describeField reports how one field wrapper will decode. Non-wrapper
// values pass through the decoder untouched.
func describeField(raw any) string {
	m, ok := raw.(map[string]any)
	if !ok {
		return "passthrough"
	}

	var kind string
	var hasErr bool
	for k, v := range m {
		switch k {
		case "kind":
			kind, ok = v.(string)
			if !ok {
				return "passthrough"
			}
		case "error":
			hasErr = v != nil
		case "value":
		default:
			return "passthrough"
		}
	}

	var desc *wire.ErrorDescriptor
	if hasErr {
		desc = &wire.ErrorDescriptor{}
	}
	return disposition(kind, desc)
}

func disposition(kind string, desc *wire.ErrorDescriptor) string {
	switch {
	case kind == wire.KindDeferred && desc != nil:
		return "deferred, rejected"
	case kind == wire.KindDeferred:
		return "deferred"
	case desc != nil:
		return "rejected"
	case kind == "":
		return "immediate"
	default:
		return "passthrough"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
