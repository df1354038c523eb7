package types

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All case-insensitive text comparison in the library goes through this one
// collator so category-name collision checks, merge de-duplication, and tag
// ordering can never diverge for non-ASCII names. Collators are not safe for
// concurrent use, hence the mutex.
var (
	collMu sync.Mutex
	coll   = collate.New(language.Und, collate.IgnoreCase)
)

// NameEqual reports whether two display names are equal under the canonical
// locale-aware, case-insensitive comparison.
func NameEqual(a, b string) bool {
	return CompareNames(a, b) == 0
}

// CompareNames orders two display names case-insensitively. Returns -1, 0,
// or +1 in the manner of strings.Compare.
func CompareNames(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return coll.CompareString(a, b)
}

// NormalizeTags trims every tag, drops blanks, removes exact duplicates, and
// sorts the remainder with the canonical collation. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	collMu.Lock()
	coll.SortStrings(out)
	collMu.Unlock()
	return out
}

// ParseTagList splits a comma-separated tag string the way the page widget
// submits tags, then normalizes the result.
func ParseTagList(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
