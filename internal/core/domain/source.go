package domain

// ImportStatement is a single import found in a source file.
type ImportStatement struct {
	// Source is the import specifier as written, without quotes.
	Source string
	// Line is the 1-based line of the specifier.
	Line int
	// Raw is the full statement text.
	Raw string
}

// FunctionSpan is the line range of a function or method declaration.
type FunctionSpan struct {
	Name      string
	StartLine int
	EndLine   int
}

// Lines returns the length used for the long-function check.
func (f FunctionSpan) Lines() int {
	return f.EndLine - f.StartLine
}

// SourceFile is what an extractor reports about one file.
type SourceFile struct {
	Imports   []ImportStatement
	Functions []FunctionSpan
}

// FileAnalysis is the per-file outcome of rule evaluation.
type FileAnalysis struct {
	Violations    []Violation
	LongFunctions []LongFunction
	ImportCount   int
	FunctionCount int
}

// FileCacheEntry is a FileAnalysis stored against the content hash it was computed from.
type FileCacheEntry struct {
	ContentHash   string         `json:"content_hash"`
	Violations    []Violation    `json:"violations"`
	LongFunctions []LongFunction `json:"long_functions"`
	ImportCount   int            `json:"import_count"`
	FunctionCount int            `json:"function_count"`
}

// NewFileCacheEntry records analysis under the given content hash.
func NewFileCacheEntry(contentHash string, analysis FileAnalysis) FileCacheEntry {
	return FileCacheEntry{
		ContentHash:   contentHash,
		Violations:    analysis.Violations,
		LongFunctions: analysis.LongFunctions,
		ImportCount:   analysis.ImportCount,
		FunctionCount: analysis.FunctionCount,
	}
}

// Analysis returns the cached analysis.
func (e FileCacheEntry) Analysis() FileAnalysis {
	return FileAnalysis{
		Violations:    e.Violations,
		LongFunctions: e.LongFunctions,
		ImportCount:   e.ImportCount,
		FunctionCount: e.FunctionCount,
	}
}
