package scene

// Object is an in-memory Node. Objects are created through a
// MemoryRegistry so that every object is known to the global registry.
type Object struct {
	id         int
	name       string
	active     bool
	layer      Layer
	tag        string
	parent     *Object
	children   []*Object
	frame      Frame
	components []Component
	fault      error
}

func newObject(id int, name string) *Object {
	return &Object{
		id:     id,
		name:   name,
		active: true,
		frame:  Frame{LocalScale: Vec3{1, 1, 1}},
		components: []Component{
			Builtin(TransformComponent, nil),
		},
	}
}

// InstanceID implements Node.
func (o *Object) InstanceID() int { return o.id }

// Name implements Node.
func (o *Object) Name() string { return o.name }

// ActiveSelf implements Node.
func (o *Object) ActiveSelf() bool { return o.active }

// Layer implements Node.
func (o *Object) Layer() Layer { return o.layer }

// Tag implements Node.
func (o *Object) Tag() string { return o.tag }

// Parent implements Node.
func (o *Object) Parent() Node {
	if o.parent == nil {
		return nil
	}
	return o.parent
}

// Children implements Node.
func (o *Object) Children() []Node {
	out := make([]Node, len(o.children))
	for i, c := range o.children {
		out[i] = c
	}
	return out
}

// Frame implements Node. It fails when a fault has been injected.
func (o *Object) Frame() (Frame, error) {
	if o.fault != nil {
		return Frame{}, o.fault
	}
	return o.frame, nil
}

// Components implements Node. It fails when a fault has been injected.
func (o *Object) Components() ([]Component, error) {
	if o.fault != nil {
		return nil, o.fault
	}
	return o.components, nil
}

// SetActive sets the node's own active flag.
func (o *Object) SetActive(active bool) *Object {
	o.active = active
	return o
}

// SetLayer sets the layer id and its label.
func (o *Object) SetLayer(id int, name string) *Object {
	o.layer = Layer{ID: id, Name: name}
	return o
}

// SetTag sets the tag.
func (o *Object) SetTag(tag string) *Object {
	o.tag = tag
	return o
}

// SetPosition sets the local position.
func (o *Object) SetPosition(x, y, z float64) *Object {
	o.frame.LocalPosition = Vec3{x, y, z}
	return o
}

// SetRotation sets the world-space euler angles.
func (o *Object) SetRotation(x, y, z float64) *Object {
	o.frame.EulerAngles = Vec3{x, y, z}
	return o
}

// SetScale sets the local scale.
func (o *Object) SetScale(x, y, z float64) *Object {
	o.frame.LocalScale = Vec3{x, y, z}
	return o
}

// AddComponent appends components after the frame component.
func (o *Object) AddComponent(cs ...Component) *Object {
	o.components = append(o.components, cs...)
	return o
}

// AddChild reparents child under o and appends it to o's children.
func (o *Object) AddChild(child *Object) *Object {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	return o
}

// Fail makes Frame and Components return err, simulating a host binding
// that cannot read this node.
func (o *Object) Fail(err error) *Object {
	o.fault = err
	return o
}

func (o *Object) removeChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

var _ Node = (*Object)(nil)
