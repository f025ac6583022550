package extractor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/tools/go/ast/astutil"
)

// Golang extracts imports and functions from Go sources.
type Golang struct{}

// NewGolang creates a Go extractor.
func NewGolang() *Golang {
	return &Golang{}
}

// Extensions implements Language.
func (*Golang) Extensions() []string {
	return []string{".go"}
}

// Extract implements Language. Methods are named Receiver.Method.
func (*Golang) Extract(path string, content []byte) (*domain.SourceFile, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, content, parser.SkipObjectResolution)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrParseFailed.Error()), "path", path)
	}

	file := &domain.SourceFile{}
	for _, group := range astutil.Imports(fset, f) {
		for _, spec := range group {
			source, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			file.Imports = append(file.Imports, domain.ImportStatement{
				Source: source,
				Line:   fset.Position(spec.Path.Pos()).Line,
				Raw:    "import " + sourceText(fset, content, spec),
			})
		}
	}

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		file.Functions = append(file.Functions, domain.FunctionSpan{
			Name:      funcName(fn),
			StartLine: fset.Position(fn.Pos()).Line,
			EndLine:   fset.Position(fn.End()).Line,
		})
	}

	return file, nil
}

func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return receiverName(fn.Recv.List[0].Type) + "." + fn.Name.Name
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return "?"
	}
}

func sourceText(fset *token.FileSet, content []byte, node ast.Node) string {
	start := fset.Position(node.Pos()).Offset
	end := fset.Position(node.End()).Offset
	if start < 0 || end > len(content) || start > end {
		return ""
	}
	return strings.TrimSpace(string(content[start:end]))
}
