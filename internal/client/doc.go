// Package client assembles the engine from its parts (local store, feed
// client, service layer) and runs it: session restore, decryption recovery,
// an initial sync pass, and the background sync job.
package client
