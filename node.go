package reveal

// nodeIDCounter is a plain counter (no atomic; reveal is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a page element. A single flat struct is used for all node types.
//
// X, Y, Width and Height describe the layout box relative to the parent.
// TranslateX, TranslateY, ScaleX, ScaleY and Alpha are presentation fields
// driven by timelines; they change what is drawn but never the layout box,
// so intersection tests are unaffected by in-flight animations.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Classes []string
	Type    NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local to parent)
	X, Y          float64
	Width, Height float64

	// Presentation
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	Alpha                  float64
	Visible                bool
	Color                  Color

	// Fixed nodes (and their subtrees) are drawn in screen space and do not
	// scroll or count toward the document height.
	Fixed bool

	// Computed (unexported, updated once per frame)
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Content
	Text     string // NodeTypeText
	EmbedURI string // NodeTypeEmbed scene identifier

	// Metadata
	UserData any

	// OnUpdate is called once per frame with the frame delta in seconds.
	OnUpdate func(dt float64)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer, Classes: classes}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid color rectangle of the given size.
func NewBox(name string, w, h float64, c Color, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: w, Height: h, Classes: classes}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node. Width and Height are the layout box the text
// occupies; the text itself is drawn with the debug font at the box origin.
func NewText(name, content string, w, h float64, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: content, Width: w, Height: h, Classes: classes}
	nodeDefaults(n)
	return n
}

// NewEmbed creates a placeholder for an opaque embedded scene identified by
// uri. Reveal positions the container but never animates or inspects it.
func NewEmbed(name, uri string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeEmbed, EmbedURI: uri, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// --- Classes ---

// HasClass reports whether the node carries the given class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class if the node does not already carry it.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.Classes = append(n.Classes, class)
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("reveal: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Animated properties ---

// Property returns the current value of an animatable property.
// Scale reports ScaleX.
func (n *Node) Property(p Property) float64 {
	switch p {
	case Opacity:
		return n.Alpha
	case TranslateX:
		return n.TranslateX
	case TranslateY:
		return n.TranslateY
	case Scale:
		return n.ScaleX
	}
	return 0
}

// SetProperty writes an animatable property and marks the node dirty.
func (n *Node) SetProperty(p Property, v float64) {
	switch p {
	case Opacity:
		n.Alpha = v
	case TranslateX:
		n.TranslateX = v
	case TranslateY:
		n.TranslateY = v
	case Scale:
		n.ScaleX = v
		n.ScaleY = v
	}
	n.transformDirty = true
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Running tracks on disposed
// nodes stop on the next frame.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// updateNodes runs OnUpdate callbacks depth-first in document order.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}
