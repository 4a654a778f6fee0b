package reveal

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test", "a", "b")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
	if !n.HasClass("a") || !n.HasClass("b") {
		t.Errorf("Classes = %v, want [a b]", n.Classes)
	}
}

func TestNewBoxDefaults(t *testing.T) {
	c := Color{0.5, 0.25, 1, 1}
	n := NewBox("box", 80, 40, c, "card")
	assertNodeDefaults(t, n, "box", NodeTypeBox)
	if n.Width != 80 || n.Height != 40 {
		t.Errorf("size = (%v, %v), want (80, 40)", n.Width, n.Height)
	}
	if n.Color != c {
		t.Errorf("Color = %v, want %v", n.Color, c)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", 100, 16)
	assertNodeDefaults(t, n, "text", NodeTypeText)
	if n.Text != "hello" {
		t.Errorf("Text = %q, want hello", n.Text)
	}
}

func TestNewEmbedDefaults(t *testing.T) {
	n := NewEmbed("scene", "https://example.com/scene", 300, 200)
	assertNodeDefaults(t, n, "scene", NodeTypeEmbed)
	if n.EmbedURI != "https://example.com/scene" {
		t.Errorf("EmbedURI = %q", n.EmbedURI)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both are %d", a.ID)
	}
}

// --- Classes ---

func TestAddClassNoDuplicates(t *testing.T) {
	n := NewContainer("n")
	n.AddClass("x")
	n.AddClass("x")
	if len(n.Classes) != 1 {
		t.Errorf("Classes = %v, want [x]", n.Classes)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child at index 0")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child should be reparented to b")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(b)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()

	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No-op when already detached.
	child.RemoveFromParent()
}

// --- Properties ---

func TestSetPropertyScaleSetsBothAxes(t *testing.T) {
	n := NewBox("b", 10, 10, ColorWhite)
	n.transformDirty = false
	n.SetProperty(Scale, 0.5)

	if n.ScaleX != 0.5 || n.ScaleY != 0.5 {
		t.Errorf("Scale = (%v, %v), want (0.5, 0.5)", n.ScaleX, n.ScaleY)
	}
	if n.Property(Scale) != 0.5 {
		t.Errorf("Property(Scale) = %v", n.Property(Scale))
	}
	if !n.transformDirty {
		t.Error("SetProperty should mark dirty")
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	n := NewBox("b", 10, 10, ColorWhite)
	n.SetProperty(Opacity, 0.25)
	n.SetProperty(TranslateX, 12)
	n.SetProperty(TranslateY, -40)

	if n.Alpha != 0.25 || n.TranslateX != 12 || n.TranslateY != -40 {
		t.Errorf("fields = (%v, %v, %v)", n.Alpha, n.TranslateX, n.TranslateY)
	}
	if n.X != 0 || n.Y != 0 {
		t.Error("presentation properties must not move the layout box")
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in   string
		want Property
		ok   bool
	}{
		{"opacity", Opacity, true},
		{"alpha", Opacity, true},
		{"x", TranslateX, true},
		{"y", TranslateY, true},
		{"translateY", TranslateY, true},
		{"scale", Scale, true},
		{"rotation", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseProperty(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseProperty(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should be removed from parent")
	}
	if child.ID != 0 {
		t.Error("disposed node ID should be zeroed")
	}
	// Idempotent.
	child.Dispose()
}

func TestUpdateNodesDocumentOrder(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	a1 := NewContainer("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	var order []string
	for _, n := range []*Node{root, a, b, a1} {
		n := n
		n.OnUpdate = func(float64) { order = append(order, n.Name) }
	}
	updateNodes(root, 0.016)

	want := []string{"root", "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
