package extractor

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	typeScriptLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsxLanguage        = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// TypeScript extracts imports and functions from TypeScript and JavaScript sources.
type TypeScript struct{}

// NewTypeScript creates a TypeScript extractor.
func NewTypeScript() *TypeScript {
	return &TypeScript{}
}

// Extensions implements Language.
func (*TypeScript) Extensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}
}

// Extract implements Language. It reports import and export-from statements,
// require calls and dynamic imports, plus function declarations and methods.
// Constructors are not counted as functions.
func (*TypeScript) Extract(path string, content []byte) (*domain.SourceFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(languageFor(path)); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrParseFailed.Error()), "path", path)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, zerr.With(domain.ErrParseFailed, "path", path)
	}
	defer tree.Close()

	file := &domain.SourceFile{}
	walkTreePreOrder(tree.RootNode(), func(node *sitter.Node) {
		switch node.Kind() {
		case "import_statement", "export_statement":
			if imp, ok := statementImport(node, content); ok {
				file.Imports = append(file.Imports, imp)
			}
		case "call_expression":
			if imp, ok := callImport(node, content); ok {
				file.Imports = append(file.Imports, imp)
			}
		case "function_declaration", "generator_function_declaration", "method_definition":
			if fn, ok := functionSpan(node, content); ok {
				file.Functions = append(file.Functions, fn)
			}
		}
	})

	return file, nil
}

// languageFor picks the TSX grammar for files that may contain JSX.
func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typeScriptLanguage
	default:
		return tsxLanguage
	}
}

func statementImport(stmt *sitter.Node, content []byte) (domain.ImportStatement, bool) {
	source := stmt.ChildByFieldName("source")
	if source == nil {
		// import x = require("y")
		for i := uint(0); i < stmt.NamedChildCount(); i++ {
			if child := stmt.NamedChild(i); child != nil && child.Kind() == "import_require_clause" {
				source = child.ChildByFieldName("source")
			}
		}
	}
	if source == nil {
		return domain.ImportStatement{}, false
	}
	return domain.ImportStatement{
		Source: stringLiteralValue(source, content),
		Line:   int(source.StartPosition().Row) + 1,
		Raw:    strings.TrimSpace(nodeText(stmt, content)),
	}, true
}

// callImport recognises require("x") and import("x") with a literal argument.
func callImport(call *sitter.Node, content []byte) (domain.ImportStatement, bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return domain.ImportStatement{}, false
	}

	isRequire := fn.Kind() == "identifier" && nodeText(fn, content) == "require"
	if !isRequire && fn.Kind() != "import" {
		return domain.ImportStatement{}, false
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return domain.ImportStatement{}, false
	}
	arg := args.NamedChild(0)
	if arg == nil || arg.Kind() != "string" {
		return domain.ImportStatement{}, false
	}

	return domain.ImportStatement{
		Source: stringLiteralValue(arg, content),
		Line:   int(arg.StartPosition().Row) + 1,
		Raw:    strings.TrimSpace(nodeText(call, content)),
	}, true
}

func functionSpan(node *sitter.Node, content []byte) (domain.FunctionSpan, bool) {
	name := "anonymous"
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = strings.TrimSpace(nodeText(nameNode, content))
	}
	if node.Kind() == "method_definition" && name == "constructor" {
		return domain.FunctionSpan{}, false
	}

	return domain.FunctionSpan{
		Name:      name,
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
	}, true
}

// stringLiteralValue returns the contents of a string node without its quotes.
func stringLiteralValue(node *sitter.Node, content []byte) string {
	raw := strings.TrimSpace(nodeText(node, content))
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}

func walkTreePreOrder(root *sitter.Node, visit func(*sitter.Node)) {
	if root == nil {
		return
	}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(uint(i)); child != nil {
				stack = append(stack, child)
			}
		}
	}
}
