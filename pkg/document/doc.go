// Package document implements the pure core of the prompt library: the
// normalizer that repairs untrusted input into canonical form, and the merge
// engine used by the import flow. Both functions are synchronous and free of
// IO; every load, import, and mutation funnels through Normalize before the
// result is persisted or rendered.
package document
