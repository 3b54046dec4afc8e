// Package memory provides map-backed stores. They are the default
// backend for development and tests and define the reference behavior
// the other backends must match.
package memory

import "encoding/json"

// clone deep-copies an entity through its JSON form so callers never
// share slices or maps with the store.
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic("memory: clone marshal: " + err.Error())
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic("memory: clone unmarshal: " + err.Error())
	}
	return out
}

// paginate slices a result set. A negative limit means no cap.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
