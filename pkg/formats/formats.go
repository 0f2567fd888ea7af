// Package formats provides readers and writers for model data file formats.
package formats

// Note: DT (model data text) is implemented in dt.go
