// Package calc talks to the remote calculation endpoint. It posts an
// engine-input document and extracts the figures of interest from the
// response. It knows nothing about scenarios or retries.
package calc
