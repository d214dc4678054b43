package resource

import "strings"

// ExpandLinkedResources embeds whatever is linked under rel, keeping the link. Arity and order are
// preserved. If nothing is linked under rel, this does nothing.
func (r *Resource) ExpandLinkedResources(rel string) *Resource {
	if linked, ok := r.linkedResources.Get(rel); ok {
		r.resources.Set(rel, linked)
	}
	return r
}

// ExpandLinkedResourcesTree expands path[0] on r, then expands the rest of the path on every
// resource embedded under path[0], recursively. Relations missing at any level end that branch
// silently.
//
// There is no cycle detection: the length of the path bounds the recursion, so a graph that links
// back into itself is expanded once per path segment.
func (r *Resource) ExpandLinkedResourcesTree(path ...string) *Resource {
	if len(path) == 0 {
		return r
	}

	r.ExpandLinkedResources(path[0])
	if len(path) == 1 {
		return r
	}

	if embedded, ok := r.resources.Get(path[0]); ok {
		for _, child := range embedded.Items() {
			if child != nil {
				child.ExpandLinkedResourcesTree(path[1:]...)
			}
		}
	}
	return r
}

// ParseExpandPaths parses the value of an "expand" parameter: comma-separated paths whose segments
// are separated by dots, e.g. "author,comments.author". Empty segments and paths are ignored.
func ParseExpandPaths(s string) [][]string {
	var ret [][]string
	for _, raw := range strings.Split(s, ",") {
		var path []string
		for _, segment := range strings.Split(raw, ".") {
			if segment = strings.TrimSpace(segment); segment != "" {
				path = append(path, segment)
			}
		}
		if len(path) > 0 {
			ret = append(ret, path)
		}
	}
	return ret
}
