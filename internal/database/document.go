package database

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Document operations apply Mongo-style field updates to a decoded
// JSONB document. Paths are dotted, e.g. "playlist.200.tracks".
// Values are normalized through a JSON round-trip first so pushed Go
// structs compare equal to decoded document elements.

// Normalize converts a value into its JSON-decoded form
func Normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// DocumentSet overwrites the field at path, creating intermediate
// objects as needed. Reports whether the document changed.
func DocumentSet(doc map[string]any, path string, value any) bool {
	parent, key := walk(doc, path, true)
	if parent == nil {
		return false
	}
	norm := Normalize(value)
	if old, ok := parent[key]; ok && reflect.DeepEqual(old, norm) {
		return false
	}
	parent[key] = norm
	return true
}

// DocumentUnset removes the field at path. Reports whether the
// document changed.
func DocumentUnset(doc map[string]any, path string) bool {
	parent, key := walk(doc, path, false)
	if parent == nil {
		return false
	}
	if _, ok := parent[key]; !ok {
		return false
	}
	delete(parent, key)
	return true
}

// DocumentPush appends a value onto the array at path, creating the
// array if the field is missing. Reports whether the document changed.
func DocumentPush(doc map[string]any, path string, value any) bool {
	parent, key := walk(doc, path, true)
	if parent == nil {
		return false
	}

	existing, ok := parent[key]
	if !ok || existing == nil {
		parent[key] = []any{Normalize(value)}
		return true
	}
	arr, ok := existing.([]any)
	if !ok {
		// Refuse to push onto a non-array field
		return false
	}
	parent[key] = append(arr, Normalize(value))
	return true
}

// DocumentPull removes every element equal to match from the array at
// path. Reports whether the document changed.
func DocumentPull(doc map[string]any, path string, match any) bool {
	parent, key := walk(doc, path, false)
	if parent == nil {
		return false
	}
	arr, ok := parent[key].([]any)
	if !ok {
		return false
	}

	norm := Normalize(match)
	kept := arr[:0]
	changed := false
	for _, elem := range arr {
		if reflect.DeepEqual(elem, norm) {
			changed = true
			continue
		}
		kept = append(kept, elem)
	}
	if changed {
		parent[key] = kept
	}
	return changed
}

// walk descends to the parent object of the path's final segment.
// With create set, missing intermediate objects are materialized;
// otherwise a missing or non-object step aborts with nil.
func walk(doc map[string]any, path string, create bool) (map[string]any, string) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 || path == "" {
		return nil, ""
	}

	cur := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg]
		if !ok {
			if !create {
				return nil, ""
			}
			child := map[string]any{}
			cur[seg] = child
			cur = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, ""
		}
		cur = child
	}
	return cur, segments[len(segments)-1]
}
