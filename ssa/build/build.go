// Package build is a helper package for building SSA IR in the parent
// directory.
//
// Usage
//
// There are two ways of building SSA IR from source code:
//
// Build from a list of source files
//
// This is the normal usage, where a number of files or package patterns are
// supplied (usually as command line arguments), and loaded with go/packages.
// Every loaded package except the ones marked bad is built.
//
// Build from a Reader
//
// This is mostly used for testing or demo, where the input source code is read
// from a given io.Reader and built as a single package. Imported packages are
// read from export data and are not built.
//
package build
