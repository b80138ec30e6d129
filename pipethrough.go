package rolodex

// PipeThrough is a named bundle of defaults associated with a pipeline
// identifier. Recognized keys are "headers", "query_params" and "body",
// each holding a nested map merged into every route flowing through the
// pipeline; any other key is carried through with later-wins semantics.
type PipeThrough map[string]any

// MergePipeThrough resolves each pipeline identifier against the configured
// table and folds the bundles left to right with a deep merge: nested maps
// merge key by key, later non-map values replace earlier ones. Unknown
// identifiers contribute nothing. A nil table disables the feature and
// yields an empty result regardless of the identifier list.
func MergePipeThrough(pipelines []string, table map[string]PipeThrough) map[string]any {
	merged := map[string]any{}
	if table == nil {
		return merged
	}
	for _, id := range pipelines {
		bundle, ok := table[id]
		if !ok {
			continue
		}
		merged = deepMerge(merged, map[string]any(bundle))
	}
	return merged
}

// deepMerge folds src into dst and returns dst. Nested maps merge
// recursively; any other value collision is resolved in src's favor.
// dst is mutated; src is not.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		if !srcIsMap {
			dst[key] = value
			continue
		}
		dstMap, dstIsMap := dst[key].(map[string]any)
		if !dstIsMap {
			dstMap = make(map[string]any, len(srcMap))
		}
		dst[key] = deepMerge(dstMap, srcMap)
	}
	return dst
}

// mergeSection overlays a route's own declarations onto the pipe-through
// defaults for one bundle key. Both sides are optional.
func mergeSection(defaults any, own map[string]any) map[string]any {
	base, _ := defaults.(map[string]any)
	if len(base) == 0 && len(own) == 0 {
		return nil
	}
	out := deepMerge(map[string]any{}, base)
	return deepMerge(out, own)
}
