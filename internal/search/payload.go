package search

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NormalizePayload unwraps a stored JSON blob to its {operator, facilities} object.
//
// Accepted shapes, in order: {"data": {...}}, {"project": {"data": {...}}},
// {"project": {"operator"|"facilities": ...}} and a bare {"operator"|"facilities": ...}.
// Anything else, including invalid JSON, reports false.
func NormalizePayload(raw string) (gjson.Result, bool) {
	if strings.TrimSpace(raw) == "" || !gjson.Valid(raw) {
		return gjson.Result{}, false
	}

	root := gjson.Parse(raw)
	if !root.IsObject() {
		return gjson.Result{}, false
	}

	if data := field(root, "data"); data.IsObject() {
		return data, true
	}

	if project := field(root, "project"); project.IsObject() {
		if data := field(project, "data"); data.IsObject() {
			return data, true
		}
		if hasRecordKeys(project) {
			return project, true
		}
	}

	if hasRecordKeys(root) {
		return root, true
	}

	return gjson.Result{}, false
}

func hasRecordKeys(obj gjson.Result) bool {
	return present(field(obj, "operator")) || present(field(obj, "facilities"))
}

// field returns obj[key] when obj is an object and an absent result otherwise.
func field(obj gjson.Result, key string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	return obj.Get(gjson.Escape(key))
}

// present mirrors isset: the key exists and is not null.
func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// container reports whether r can hold nested values.
func container(r gjson.Result) bool {
	return r.IsObject() || r.IsArray()
}

// Blank mirrors the loose emptiness test the stored data was written against:
// absent, null, false, "", "0", 0 and empty containers.
func Blank(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.String:
		return r.Str == "" || r.Str == "0"
	case gjson.Number:
		return r.Num == 0
	case gjson.JSON:
		empty := true
		r.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	default:
		return false
	}
}

// each visits list elements, or object member values in document order.
func each(r gjson.Result, fn func(gjson.Result)) {
	if !container(r) {
		return
	}
	r.ForEach(func(_, v gjson.Result) bool {
		fn(v)
		return true
	})
}
