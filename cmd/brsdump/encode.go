package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/brs/codec"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/format"
)

// docHunk is one entry of an encode document.
//
//	- name: red
//	  kind: int32
//	  value: 255
//	- name: samples
//	  kind: float64
//	  values: [0.5, 1.5]
//	- name: origin
//	  kind: buffer
//	  hunks:
//	    - {name: x, kind: float64, value: 1}
//
// values writes one indexed hunk per element. bytes values are hex strings; extended and
// complex values are strings parsed with big.Float and strconv.
type docHunk struct {
	Name   string      `yaml:"name"`
	Kind   format.Kind `yaml:"kind"`
	Index  *int32      `yaml:"index"`
	Value  yaml.Node   `yaml:"value"`
	Values []yaml.Node `yaml:"values"`
	Hunks  []docHunk   `yaml:"hunks"`
}

func encodeCmd(st *state) *cli.Command {
	var outPath string

	return &cli.Command{
		Name:      "encode",
		Usage:     "Build a buffer from a YAML document",
		ArgsUsage: "<doc.yaml|->",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Destination: &outPath, Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("encode needs exactly one document, got %d", cmd.NArg())
			}

			data, err := st.readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			buf, err := encodeDocument(data, st.engine)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, buf, 0o644); err != nil { //nolint:gosec
				return err
			}
			st.log.Info("buffer written", "path", outPath, "size", len(buf))

			return nil
		},
	}
}

// encodeDocument parses a YAML document and encodes it into a top-level buffer.
func encodeDocument(doc []byte, engine endian.EndianEngine) ([]byte, error) {
	var hunks []docHunk
	if err := yaml.Unmarshal(doc, &hunks); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	enc, err := codec.NewEncoder(codec.WithByteOrder(engine))
	if err != nil {
		return nil, err
	}

	if err := encodeHunks(enc, hunks); err != nil {
		enc.Release()
		return nil, err
	}

	return enc.Finish()
}

func encodeHunks(enc *codec.Encoder, hunks []docHunk) error {
	for _, h := range hunks {
		if err := encodeHunk(enc, h); err != nil {
			return fmt.Errorf("hunk %q: %w", h.Name, err)
		}
	}

	return nil
}

func encodeHunk(enc *codec.Encoder, h docHunk) error {
	if h.Kind == format.KindBuffer {
		sub, err := codec.NewSubEncoder(codec.WithByteOrder(enc.Engine()))
		if err != nil {
			return err
		}
		defer sub.Release()

		if err := encodeHunks(sub, h.Hunks); err != nil {
			return err
		}

		return enc.AddBufferAt(h.Name, indexOf(h.Index), sub)
	}

	if len(h.Values) > 0 {
		for i := range h.Values {
			if err := addValue(enc, h.Name, h.Kind, int32(i), &h.Values[i]); err != nil { //nolint:gosec
				return fmt.Errorf("element %d: %w", i, err)
			}
		}

		return nil
	}

	return addValue(enc, h.Name, h.Kind, indexOf(h.Index), &h.Value)
}

func indexOf(index *int32) int32 {
	if index == nil {
		return codec.NoIndex
	}

	return *index
}

func addScalar[T codec.Scalar](enc *codec.Encoder, name string, index int32, node *yaml.Node) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}

	return codec.AddAt(enc, name, index, v)
}

func addValue(enc *codec.Encoder, name string, kind format.Kind, index int32, node *yaml.Node) error {
	switch kind {
	case format.KindInt8:
		return addScalar[int8](enc, name, index, node)
	case format.KindUint8:
		return addScalar[uint8](enc, name, index, node)
	case format.KindInt16:
		return addScalar[int16](enc, name, index, node)
	case format.KindUint16:
		return addScalar[uint16](enc, name, index, node)
	case format.KindInt32:
		return addScalar[int32](enc, name, index, node)
	case format.KindUint32:
		return addScalar[uint32](enc, name, index, node)
	case format.KindInt64:
		return addScalar[int64](enc, name, index, node)
	case format.KindUint64:
		return addScalar[uint64](enc, name, index, node)
	case format.KindFloat32:
		return addScalar[float32](enc, name, index, node)
	case format.KindFloat64:
		return addScalar[float64](enc, name, index, node)
	case format.KindBool:
		return addScalar[bool](enc, name, index, node)
	}

	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}

	switch kind {
	case format.KindString:
		return enc.AddStringAt(name, index, text)
	case format.KindChar:
		if len(text) != 1 {
			return fmt.Errorf("char value must be one byte, got %q", text)
		}

		return codec.AddAt(enc, name, index, text[0])
	case format.KindBytes:
		b, err := hex.DecodeString(text)
		if err != nil {
			return err
		}

		return enc.AddBytesAt(name, index, b)
	case format.KindExtended:
		f, _, err := big.ParseFloat(text, 10, 64, big.ToNearestEven)
		if err != nil {
			return err
		}

		return enc.AddExtendedAt(name, index, f)
	case format.KindComplex64:
		c, err := strconv.ParseComplex(text, 64)
		if err != nil {
			return err
		}

		return codec.AddAt(enc, name, index, complex64(c))
	case format.KindComplex128:
		c, err := strconv.ParseComplex(text, 128)
		if err != nil {
			return err
		}

		return codec.AddAt(enc, name, index, c)
	default:
		return fmt.Errorf("cannot encode kind %v", kind)
	}
}
