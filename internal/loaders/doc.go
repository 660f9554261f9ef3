// Package loaders provides implementations of the Loader interface for the
// supported source formats. Each loader reads one file type into documents
// carrying page or row provenance.
//
// Loaders are registered with the Registry at startup.
package loaders
