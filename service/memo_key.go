package service

import (
	"fmt"
	"sort"
	"strings"
)

const memoKeySeparator = "|"

// MemoKey builds a deterministic cache key for memoizing a call: a canonical
// identity (e.g. "productRepo.listByCategory"), each positional argument's
// string form, and each keyword pair as k=v in sorted key order, joined with
// a fixed separator. Callers own key construction: arguments without a stable
// string form risk undetected collisions.
func MemoKey(identity string, args []any, kwargs map[string]any) string {
	parts := make([]string, 0, 1+len(args)+len(kwargs))
	parts = append(parts, identity)
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+fmt.Sprintf("%v", kwargs[name]))
	}
	return strings.Join(parts, memoKeySeparator)
}
