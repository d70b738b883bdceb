package opener

import (
	"context"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Imports replaces a Python file with its import statements, one imported
// name per line:
//
//	import foo.baz as blah
//	from foo import bar, baz as bat
//
// becomes
//
//	import foo.baz as blah
//	from foo import bar
//	from foo import baz as bat
//
// Imports nested inside functions and classes are included. A file that does
// not parse yields an empty stream.
type Imports struct {
	Source Opener
}

// Open implements Opener.
func (o *Imports) Open(path string) (io.ReadCloser, error) {
	src, err := readAll(o.Source, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(NormalizeImports(src))), nil
}

// NormalizeImports returns the normalized import lines of src, or "" when
// src is not valid Python.
func NormalizeImports(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return ""
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return ""
	}

	var b strings.Builder
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			for _, name := range importedNames(n, nil, src) {
				b.WriteString("import " + name + "\n")
			}
			return
		case "import_from_statement":
			module := n.ChildByFieldName("module_name")
			for _, name := range importedNames(n, module, src) {
				b.WriteString("from " + dotted(module, src) + " import " + name + "\n")
			}
			return
		case "future_import_statement":
			for _, name := range importedNames(n, nil, src) {
				b.WriteString("from __future__ import " + name + "\n")
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	return b.String()
}

// importedNames lists the names an import statement binds, rendered as
// "name" or "name as alias". skip is the module node of a from-import.
func importedNames(stmt, skip *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		c := stmt.NamedChild(i)
		if skip != nil && c.StartByte() == skip.StartByte() && c.EndByte() == skip.EndByte() {
			continue
		}
		switch c.Type() {
		case "dotted_name":
			names = append(names, dotted(c, src))
		case "aliased_import":
			name := dotted(c.ChildByFieldName("name"), src)
			alias := dotted(c.ChildByFieldName("alias"), src)
			names = append(names, name+" as "+alias)
		case "wildcard_import":
			names = append(names, "*")
		}
	}
	return names
}

// dotted returns the text of n with all whitespace removed, which turns
// "foo . bar" into "foo.bar".
func dotted(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.Content(src)), "")
}
