package kubecrd

// normalizeDoc converts one YAML-decoded bundle document into the JSON-shaped
// map[string]any form the schema builder expects. yaml.v3 decodes nested
// mappings as map[string]any already, but map[any]any still shows up for
// documents produced by older tooling, so both shapes are walked. Non-mapping
// documents normalize to nil and are skipped by the caller.
func normalizeDoc(v any) map[string]any {
	m, _ := normalize(v).(map[string]any)
	return m
}

// normalize rewrites every mapping in v to map[string]any, dropping keys that
// are not strings.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(vv)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	default:
		return v
	}
}
