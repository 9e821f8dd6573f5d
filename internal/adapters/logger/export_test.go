// export_test.go exports private identifiers for white-box testing.
package logger

// ErrorEntry exposes errorEntry for tests.
type ErrorEntry = errorEntry

// Exported private error formatting functions.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
