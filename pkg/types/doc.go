// Package types defines the persisted document model for the Satchel prompt
// library: the Document root, Category and Prompt records, the standard
// errors, and the ID, clock, and collation helpers shared by every layer.
package types
