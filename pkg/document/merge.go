package document

import "github.com/mesh-intelligence/satchel/pkg/types"

// Merge combines an imported document into the current one. Both inputs must
// be canonical; the caller re-normalizes the result before treating it as
// canonical.
//
// Categories reconcile identity-first: a current id always wins over an
// incoming one. An incoming category whose id is unknown but whose name
// matches an existing category (canonical case-insensitive comparison) is
// folded into that category, since independent installations frequently
// recreate the same human-chosen name under a fresh id. Anything else is
// appended unchanged. The reserved category id always maps to itself.
//
// Prompts upsert by id at whole-record granularity: an incoming prompt with a
// known id replaces the current one entirely, with its category id rewritten
// through the resolution map and its tags re-normalized.
func Merge(current, incoming types.Document) types.Document {
	out := current.Clone()

	resolve := make(map[string]string, len(current.Categories)+len(incoming.Categories))
	for _, c := range current.Categories {
		resolve[c.ID] = c.ID
	}
	for _, in := range incoming.Categories {
		if in.ID == types.UncategorizedID {
			resolve[in.ID] = types.UncategorizedID
			continue
		}
		if _, ok := resolve[in.ID]; ok {
			continue
		}
		if existing, ok := out.CategoryByName(in.Name); ok {
			resolve[in.ID] = existing.ID
			continue
		}
		out.Categories = append(out.Categories, in)
		resolve[in.ID] = in.ID
	}

	index := make(map[string]int, len(out.Prompts))
	for i, p := range out.Prompts {
		index[p.ID] = i
	}
	for _, in := range incoming.Prompts {
		p := in
		target, ok := resolve[p.CategoryID]
		if !ok {
			target = types.UncategorizedID
		}
		p.CategoryID = target
		p.Tags = types.NormalizeTags(p.Tags)
		if i, ok := index[p.ID]; ok {
			out.Prompts[i] = p
		} else {
			index[p.ID] = len(out.Prompts)
			out.Prompts = append(out.Prompts, p)
		}
	}

	return out
}
