package reveal

import "strings"

// Select returns the nodes matching selector within n's subtree, in document
// (depth-first pre-order) order, without duplicates.
//
// Supported selectors:
//
//	""        the node itself
//	"*"       the node's direct children
//	".class"  descendants carrying the class
//	"#name"   descendants whose Name matches
//
// Comma-separated selectors are unioned and still returned in document order.
// Disposed nodes never match.
func (n *Node) Select(selector string) []*Node {
	if n == nil || n.disposed {
		return nil
	}
	parts := strings.Split(selector, ",")
	if len(parts) == 1 {
		return n.selectOne(strings.TrimSpace(selector), nil)
	}

	matched := make(map[*Node]bool)
	for _, p := range parts {
		for _, m := range n.selectOne(strings.TrimSpace(p), nil) {
			matched[m] = true
		}
	}
	out := make([]*Node, 0, len(matched))
	walk(n, func(m *Node) {
		if matched[m] {
			out = append(out, m)
		}
	})
	return out
}

// SelectFirst returns the first match of selector, or nil.
func (n *Node) SelectFirst(selector string) *Node {
	if m := n.Select(selector); len(m) > 0 {
		return m[0]
	}
	return nil
}

func (n *Node) selectOne(sel string, out []*Node) []*Node {
	switch {
	case sel == "":
		return append(out, n)
	case sel == "*":
		for _, c := range n.children {
			if !c.disposed {
				out = append(out, c)
			}
		}
		return out
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		for _, c := range n.children {
			walk(c, func(m *Node) {
				if m.HasClass(class) {
					out = append(out, m)
				}
			})
		}
		return out
	case strings.HasPrefix(sel, "#"):
		name := sel[1:]
		for _, c := range n.children {
			walk(c, func(m *Node) {
				if m.Name == name {
					out = append(out, m)
				}
			})
		}
		return out
	}
	return out
}

// walk visits n and its live descendants in document order.
func walk(n *Node, fn func(*Node)) {
	if n.disposed {
		return
	}
	fn(n)
	for _, c := range n.children {
		walk(c, fn)
	}
}

// resolveTargets applies selector to every target and concatenates the
// results in target order, dropping duplicates.
func resolveTargets(targets []*Node, selector string) []*Node {
	var out []*Node
	seen := make(map[*Node]bool)
	for _, t := range targets {
		for _, m := range t.Select(selector) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
