// Package document holds the exported hierarchy document and its sinks.
//
// A [Document] is an ordered tree of [Element] values. Element and attribute
// order is preserved exactly as produced, which keeps every serialization
// byte-stable for the same input.
//
// # Sinks
//
//   - [WriteXML]: the canonical wire format (UTF-8, 2-space indentation)
//   - [WriteJSON]: the same tree as nested JSON objects
//   - [ToDOT] / [RenderSVG]: a node-link diagram of the hierarchy via Graphviz
//
// [Digest] hashes the XML form with the export timestamp blanked so that two
// exports of an unchanged graph compare equal.
package document

// Attr is a single name/value attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Element is one node of the document tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// Document is a rooted element tree.
type Document struct {
	Root *Element
}

// New creates a document whose root element is named root.
func New(root string) *Document {
	return &Document{Root: NewElement(root)}
}

// NewElement creates an element with no attributes or children.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Set assigns an attribute, replacing an existing value in place so that
// attribute order stays stable.
func (e *Element) Set(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Get returns the value of the named attribute.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.Get(name)
	return v
}

// Append adds child as the last child of e and returns child.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// AppendNew creates a child element named name and appends it.
func (e *Element) AppendNew(name string) *Element {
	return e.Append(NewElement(name))
}

// Child returns the first direct child named name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children named name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindAll returns every descendant of e (excluding e) named name, in
// document order.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	e.Walk(func(el *Element, _ []*Element) bool {
		if el != e && el.Name == name {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Walk visits e and its descendants in document order. fn receives the
// ancestors of each element, nearest last; returning false skips that
// element's children.
func (e *Element) Walk(fn func(el *Element, ancestors []*Element) bool) {
	e.walk(nil, fn)
}

func (e *Element) walk(ancestors []*Element, fn func(*Element, []*Element) bool) {
	if !fn(e, ancestors) {
		return
	}
	ancestors = append(ancestors, e)
	for _, c := range e.Children {
		c.walk(ancestors, fn)
	}
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	c := &Element{Name: e.Name}
	if e.Attrs != nil {
		c.Attrs = append([]Attr(nil), e.Attrs...)
	}
	for _, ch := range e.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d.Root == nil {
		return &Document{}
	}
	return &Document{Root: d.Root.Clone()}
}
