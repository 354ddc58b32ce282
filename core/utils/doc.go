// Package utils provides small conversion helpers shared by the CLI, the HTTP
// API and the importer: loose JSON number handling and page parameter parsing.
package utils
