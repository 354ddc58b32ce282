// Package server holds the HTTP API configuration.
//
// The start command owns the Fiber application; this package only defines the
// listen port and the optional API key that protects every route.
package server
