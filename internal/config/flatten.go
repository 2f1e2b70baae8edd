// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Flatten converts a nested structure into dotted keys.
//
// Nested maps become "a.b.c" keys, slices become indexed keys "a.0", "a.1",
// and nil values are dropped. Scalars are kept as-is.
func Flatten(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	flattenInto(target, "", source)
	return target
}

func flattenInto(target map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case map[string]any:
		for k, child := range v {
			flattenInto(target, joinKey(prefix, k), child)
		}
	case map[any]any:
		for k, child := range v {
			flattenInto(target, joinKey(prefix, fmt.Sprint(k)), child)
		}
	case map[string]string:
		for k, child := range v {
			flattenInto(target, joinKey(prefix, k), child)
		}
	case []any:
		for i, child := range v {
			flattenInto(target, joinKey(prefix, strconv.Itoa(i)), child)
		}
	case []string:
		for i, child := range v {
			flattenInto(target, joinKey(prefix, strconv.Itoa(i)), child)
		}
	default:
		if prefix != "" {
			target[prefix] = v
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// unflatten rebuilds a nested map from dotted keys. Maps whose keys are
// exactly 0..n-1 are turned back into slices.
func unflatten(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				if _, isMap := node[part].(map[string]any); !isMap {
					node[part] = value
				}
				break
			}
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
	}
	return collapseIndexed(root).(map[string]any)
}

func collapseIndexed(node any) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}
	for k, v := range m {
		m[k] = collapseIndexed(v)
	}
	if len(m) == 0 {
		return m
	}

	list := make([]any, len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) {
			return m
		}
		list[i] = v
	}
	return list
}
