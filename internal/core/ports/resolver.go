package ports

// ImportResolver maps an import specifier to a project file.
//
//go:generate mockgen -destination=mocks/resolver_mock.go -package=mocks -source=resolver.go
type ImportResolver interface {
	// Resolve returns the absolute path of the file that specifier refers to when imported
	// from the file at fromFile. It reports false for external, aliased or unresolvable imports.
	Resolve(root, fromFile, specifier string) (string, bool)
}
