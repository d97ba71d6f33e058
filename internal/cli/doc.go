// Package cli defines the plume command line surface and maps flags onto
// app.Options. It owns no pipeline behavior of its own.
package cli
