// Package logging provides a unified logging interface for the compute backend.
// It abstracts the underlying logging implementation, allowing consistent logging
// across engines, the dispatcher and the front-ends while supporting multiple backends.
package logging
