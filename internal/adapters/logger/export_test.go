// export_test.go exports private functions for white-box testing.
package logger

// Error formatting hooks.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
)
