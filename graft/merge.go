package graft

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/funvibe/lazygraph/internal/config"
)

// Merge unions value fragments into one. Keys bound to structurally equal
// values are shared (the common case when two expressions reuse the same
// sub-fragment); keys bound to different values are renamed fresh, with
// every reference inside the renamed fragment rewritten to match. The
// merged fragment's root is the last fragment's root.
func Merge(gs ...Graft) Graft {
	out := Graft{}
	var root string
	for _, g := range gs {
		root = mergeInto(out, g)
	}
	if root != "" {
		out[config.ReturnsKey] = root
	}
	return out
}

// mergeInto copies g's bindings into dst, renaming collisions, and returns
// the key of g's root after renaming. dst must not be a finished fragment
// shared elsewhere; callers own it exclusively.
//
// Renaming is computed to a fixpoint: renaming one key changes the meaning
// of every binding that references it, so a binding shared verbatim between
// the fragments must itself be renamed once any of its dependencies is.
// Otherwise dst's copy would be overwritten with the rewritten one and
// silently change meaning.
func mergeInto(dst Graft, g Graft) string {
	rename := map[string]string{}
	for {
		grew := false
		for k, v := range g {
			if !IsKey(k) {
				continue
			}
			if _, renamed := rename[k]; renamed {
				continue
			}
			existing, taken := dst[k]
			if !taken {
				continue
			}
			if !reflect.DeepEqual(existing, rewriteRefs(v, rename)) {
				rename[k] = Guid()
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	renamed := rewriteBindings(g, rename)
	for k, v := range renamed {
		if !IsKey(k) {
			continue
		}
		dst[k] = v
	}
	root := g.Returns()
	if r, ok := rename[root]; ok {
		root = r
	}
	return root
}

// Isolate returns a copy of g in which every binding key has been replaced
// with a fresh, collision-free identifier. Two structurally identical
// fragments embedded at different call sites must not alias; isolating
// before embedding guarantees their key spaces are disjoint. Formal
// parameter names are part of the fragment's calling interface and are
// left untouched.
func Isolate(g Graft) Graft {
	rename := map[string]string{}
	for k := range g {
		if IsKey(k) {
			rename[k] = "iso_" + uuid.NewString()
		}
	}
	return rewriteBindings(g, rename)
}

// rewriteBindings renames the top-level bindings of g per rename and
// rewrites every reference to them, descending into nested sub-grafts
// except where an inner binding or formal parameter shadows the name.
func rewriteBindings(g Graft, rename map[string]string) Graft {
	if len(rename) == 0 {
		return g.Clone()
	}
	out := make(Graft, len(g))
	for k, v := range g {
		switch k {
		case config.ParametersKey:
			out[k] = cloneValue(v)
		case config.ReturnsKey:
			out[k] = renameOf(v.(string), rename)
		default:
			nk := k
			if r, ok := rename[k]; ok {
				nk = r
			}
			out[nk] = rewriteRefs(v, rename)
		}
	}
	return out
}

// rewriteRefs rewrites references to renamed keys inside a binding's value.
func rewriteRefs(v any, rename map[string]string) any {
	switch x := v.(type) {
	case []any:
		if IsQuotedJSON(x) {
			return cloneValue(x)
		}
		out := make([]any, len(x))
		for i, e := range x {
			switch ref := e.(type) {
			case string:
				out[i] = renameOf(ref, rename)
			case map[string]any:
				named := make(map[string]any, len(ref))
				for name, val := range ref {
					if key, ok := val.(string); ok {
						named[name] = renameOf(key, rename)
					} else {
						named[name] = cloneValue(val)
					}
				}
				out[i] = named
			default:
				out[i] = cloneValue(e)
			}
		}
		return out
	case Graft:
		return rewriteScope(x, rename)
	case map[string]any:
		return rewriteScope(Graft(x), rename)
	default:
		return v
	}
}

// rewriteScope descends into a nested sub-graft. Outer renames remain
// visible inside, minus any names the inner scope rebinds itself.
func rewriteScope(g Graft, rename map[string]string) Graft {
	shadowed := map[string]bool{}
	for k := range g {
		if IsKey(k) {
			shadowed[k] = true
		}
	}
	for _, p := range g.Parameters() {
		shadowed[p] = true
	}
	visible := rename
	if len(shadowed) > 0 {
		visible = make(map[string]string, len(rename))
		for k, v := range rename {
			if !shadowed[k] {
				visible[k] = v
			}
		}
	}
	out := make(Graft, len(g))
	for k, v := range g {
		switch k {
		case config.ParametersKey:
			out[k] = cloneValue(v)
		case config.ReturnsKey:
			out[k] = renameOf(v.(string), visible)
		default:
			out[k] = rewriteRefs(v, visible)
		}
	}
	return out
}

func renameOf(key string, rename map[string]string) string {
	if r, ok := rename[key]; ok {
		return r
	}
	return key
}
