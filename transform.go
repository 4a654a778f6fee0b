package reveal

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout and presentation fields. Returns [a, b, c, d, tx, ty].
//
// Scaling is about the center of the layout box:
//
//	Translate(-w/2, -h/2) -> Scale -> Translate(w/2, h/2) -> Translate(X+TranslateX, Y+TranslateY)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	cx := n.Width / 2
	cy := n.Height / 2
	return [6]float64{
		sx, 0, 0, sy,
		cx - cx*sx + n.X + n.TranslateX,
		cy - cy*sy + n.Y + n.TranslateY,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// --- Setters ---

// SetPosition sets the node's layout X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetSize sets the node's layout box size and marks it dirty.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Layout queries ---

// LayoutBounds returns the node's layout box in page space. Only layout
// positions contribute: presentation translate and scale are ignored.
func (n *Node) LayoutBounds() Rect {
	x, y := n.X, n.Y
	for p := n.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// WorldBounds returns the drawn box in page space as of the last frame,
// including presentation translate and scale.
func (n *Node) WorldBounds() Rect {
	x0, y0 := transformPoint(n.worldTransform, 0, 0)
	x1, y1 := transformPoint(n.worldTransform, n.Width, n.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// WorldAlpha returns the effective alpha (own alpha times ancestors') as of
// the last frame.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// contentBottom returns the lowest layout edge in n's subtree, in page space.
// Fixed subtrees are skipped.
func contentBottom(n *Node) float64 {
	if n.disposed || n.Fixed {
		return 0
	}
	b := n.LayoutBounds()
	bottom := b.Y + b.Height
	for _, c := range n.children {
		if e := contentBottom(c); e > bottom {
			bottom = e
		}
	}
	return bottom
}
