// Package satchel exposes module-level metadata.
package satchel

// Version is the current satchel release.
const Version = "v0.1.0"
