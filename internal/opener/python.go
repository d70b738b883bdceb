package opener

import (
	"bytes"
	"context"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonOptions selects which parts of Python source survive the transform.
type PythonOptions struct {
	KeepCode     bool
	KeepComments bool
	KeepStrings  bool
}

// Any reports whether at least one part is kept.
func (o PythonOptions) Any() bool {
	return o.KeepCode || o.KeepComments || o.KeepStrings
}

// Python blanks out the parts of Python source that were not selected.
// Removed bytes become spaces and newlines are kept, so line numbers and
// columns in the output match the original file.
type Python struct {
	Source  Opener
	Options PythonOptions
}

// Open implements Opener.
func (p *Python) Open(path string) (io.ReadCloser, error) {
	src, err := readAll(p.Source, path)
	if err != nil {
		return nil, err
	}
	out, err := TransformPython(src, p.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return io.NopCloser(bytes.NewReader(out)), nil
}

// TransformPython applies opts to src. Strings include docstrings and
// f-strings with their interpolations.
func TransformPython(src []byte, opts PythonOptions) ([]byte, error) {
	var out []byte
	if opts.KeepCode {
		out = bytes.Clone(src)
	} else {
		out = blank(src)
	}
	if len(src) == 0 {
		return out, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		var keep bool
		switch n.Type() {
		case "comment":
			keep = opts.KeepComments
		case "string":
			keep = opts.KeepStrings
		default:
			for i := 0; i < int(n.ChildCount()); i++ {
				visit(n.Child(i))
			}
			return
		}
		if keep == opts.KeepCode {
			return
		}
		start, end := int(n.StartByte()), int(n.EndByte())
		if keep {
			copy(out[start:end], src[start:end])
		} else {
			blankRange(out, start, end)
		}
	}
	visit(tree.RootNode())

	return out, nil
}
