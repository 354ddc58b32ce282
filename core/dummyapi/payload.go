package dummyapi

// Payload is a decoded JSON object returned by the API.
//
// A failed fetch is reported as an empty Payload, so callers cannot tell
// "the request failed" apart from "the API returned nothing". Fetch logs the
// failure; anything that needs the distinction must look at the logs.
type Payload map[string]any

// Records returns the objects stored in the array under key.
// It returns an empty (non-nil) slice when the key is missing or is not an array;
// array elements that are not objects are skipped.
func (p Payload) Records(key string) []map[string]any {
	raw, ok := p[key].([]any)
	if !ok {
		return []map[string]any{}
	}
	records := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, obj)
		}
	}
	return records
}

// Empty reports whether the payload carries no data.
func (p Payload) Empty() bool {
	return len(p) == 0
}
