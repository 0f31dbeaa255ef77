package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/brs/codec"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/internal/logger"
)

// previewBytes caps the hex preview of payloads without a known kind.
const previewBytes = 32

// node is one decoded hunk in the dump tree.
type node struct {
	Name     string `json:"name"`
	Index    *int32 `json:"index,omitempty"`
	Size     int    `json:"size"`
	Kind     string `json:"kind,omitempty"`
	Value    any    `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
	Children []node `json:"children,omitempty"`
}

func dumpCmd(st *state) *cli.Command {
	var (
		schemaPath string
		asJSON     bool
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the hunks of a buffer as a tree",
		ArgsUsage: "<file|->",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Aliases: []string{"s"}, Usage: "YAML schema giving hunk kinds", Destination: &schemaPath},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a tree", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("dump needs exactly one input, got %d", cmd.NArg())
			}
			if schemaPath == "" {
				schemaPath = st.settings.schema
			}

			fields, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}

			data, err := st.readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			d, err := st.decoder()
			if err != nil {
				return err
			}

			b := treeBuilder{decoder: d, acc: d.Accessor(), log: logger.FromContext(ctx)}
			nodes, decodeErr := b.build(data, fields, 0)

			if asJSON {
				if err := writeJSON(st.stdout, nodes); err != nil {
					return err
				}
			} else {
				writeTree(st.stdout, nodes, 0)
			}

			return decodeErr
		},
	}
}

// treeBuilder decodes a buffer into nodes, recursing into buffer fields known to the schema.
type treeBuilder struct {
	decoder *codec.Decoder
	acc     codec.Accessor
	log     logger.Logger
}

// build decodes data at the given depth. Depth 0 is the top-level buffer with magic.
// Nodes decoded before an error are returned along with it.
func (b *treeBuilder) build(data []byte, fields map[string]Field, depth int) ([]node, error) {
	var nodes []node

	h := codec.HandlerFunc(func(name string, payload []byte, index int32) bool {
		n := node{Name: name, Size: len(payload)}
		if index != codec.NoIndex {
			n.Index = &index
		}

		field, known := fields[name]
		if !known {
			n.Value = preview(payload)
			nodes = append(nodes, n)

			return false
		}

		n.Kind = field.Kind.String()
		if field.Kind == format.KindBuffer {
			children, err := b.build(payload, field.Fields, depth+1)
			n.Children = children
			if err != nil {
				b.log.Warn("sub-buffer decode failed", "name", name, "depth", depth+1, "error", err)
				n.Error = err.Error()
			}
		} else if v, err := b.acc.Render(field.Kind, payload); err != nil {
			n.Error = err.Error()
		} else {
			n.Value = displayValue(v)
		}

		nodes = append(nodes, n)

		return true
	})

	var err error
	if depth == 0 {
		err = b.decoder.Decode(data, h)
	} else {
		err = b.decoder.DecodeSub(data, h, depth)
	}

	return nodes, err
}

// displayValue turns rendered values into something both printable and JSON encodable.
func displayValue(v any) any {
	switch x := v.(type) {
	case *big.Float:
		return x.Text('g', 21)
	case complex64, complex128:
		return fmt.Sprint(x)
	case []byte:
		return hex.EncodeToString(x)
	default:
		return v
	}
}

func preview(payload []byte) string {
	if len(payload) <= previewBytes {
		return hex.EncodeToString(payload)
	}

	return hex.EncodeToString(payload[:previewBytes]) + "..."
}

func writeJSON(w io.Writer, nodes []node) error {
	if nodes == nil {
		nodes = []node{}
	}

	out, err := gojson.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))

	return err
}

func writeTree(w io.Writer, nodes []node, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, n := range nodes {
		var sb strings.Builder
		sb.WriteString(pad)
		sb.WriteString(n.Name)
		if n.Index != nil {
			fmt.Fprintf(&sb, "[%d]", *n.Index)
		}

		kind := n.Kind
		if kind == "" {
			kind = "?"
		}
		fmt.Fprintf(&sb, " (%s, %d bytes)", kind, n.Size)

		switch {
		case n.Error != "":
			fmt.Fprintf(&sb, " error: %s", n.Error)
		case n.Value != nil:
			fmt.Fprintf(&sb, " = %v", n.Value)
		}

		_, _ = fmt.Fprintln(w, sb.String())
		writeTree(w, n.Children, indent+1)
	}
}
