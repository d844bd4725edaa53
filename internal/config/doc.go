// Package config provides configuration loading, merging, and validation
// facilities for the risu sync engine.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win on conflicting non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig], which returns the validated
// client-side view consumed by cmd/risu.
package config
