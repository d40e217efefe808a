package models

// filterPatch keeps only allow-listed keys from a raw PATCH payload. Each
// resource type carries its own allow-list.
func filterPatch(patch map[string]any, allowed map[string]bool) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		if allowed[k] {
			out[k] = v
		}
	}

	return out
}
