package scene

import "strings"

// Kind is the discriminator of the Component union.
type Kind int

// Component kinds.
const (
	KindBuiltin  Kind = iota // any engine-provided component that is not a renderer
	KindScript               // user behaviour script
	KindRenderer             // visual renderer with material slots
)

// String returns the lowercase kind name used in scene dumps.
func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindRenderer:
		return "renderer"
	default:
		return "builtin"
	}
}

// ParseKind converts a scene dump kind name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "builtin", "built-in":
		return KindBuiltin, true
	case "script":
		return KindScript, true
	case "renderer":
		return KindRenderer, true
	}
	return KindBuiltin, false
}

// MaterialRef describes the material bound to one renderer slot.
// AssetPath is empty for materials that are not backed by an asset.
type MaterialRef struct {
	Name      string
	Shader    string
	AssetPath string
}

// Component is one component attached to a node.
//
// Enabled is always set for scripts and renderers. For built-ins it is nil
// when the component type exposes no enabled property. Materials holds one
// entry per renderer slot; a nil entry is an empty slot.
type Component struct {
	Kind      Kind
	TypeName  string
	Enabled   *bool
	Materials []*MaterialRef
}

// Script returns a behaviour script component.
func Script(typeName string, enabled bool) Component {
	return Component{Kind: KindScript, TypeName: typeName, Enabled: &enabled}
}

// Renderer returns a renderer component with the given material slots.
func Renderer(typeName string, enabled bool, materials ...*MaterialRef) Component {
	return Component{Kind: KindRenderer, TypeName: typeName, Enabled: &enabled, Materials: materials}
}

// Builtin returns a built-in component. Pass a nil enabled for types that
// expose no enabled property.
func Builtin(typeName string, enabled *bool) Component {
	return Component{Kind: KindBuiltin, TypeName: typeName, Enabled: enabled}
}

// IsEnabled reports the enabled flag, treating an absent flag as false.
func (c Component) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// transformTypes are the spatial frame components every node carries.
var transformTypes = map[string]bool{
	"UnityEngine.Transform":     true,
	"UnityEngine.RectTransform": true,
}

// IsTransform reports whether c is the node's spatial frame component.
func (c Component) IsTransform() bool {
	return c.Kind == KindBuiltin && transformTypes[c.TypeName]
}

// TransformComponent is the frame component attached to every object.
const TransformComponent = "UnityEngine.Transform"

// EnabledLookup records which built-in component types expose an enabled
// property. Types missing from the table are treated as not exposing one.
type EnabledLookup map[string]bool

// DefaultEnabledLookup covers the common engine built-ins.
var DefaultEnabledLookup = EnabledLookup{
	"UnityEngine.Animation":           true,
	"UnityEngine.Animator":            true,
	"UnityEngine.AudioListener":       true,
	"UnityEngine.AudioSource":         true,
	"UnityEngine.BoxCollider":         true,
	"UnityEngine.BoxCollider2D":       true,
	"UnityEngine.Camera":              true,
	"UnityEngine.Canvas":              true,
	"UnityEngine.CanvasGroup":         true,
	"UnityEngine.CapsuleCollider":     true,
	"UnityEngine.CharacterController": true,
	"UnityEngine.CircleCollider2D":    true,
	"UnityEngine.Light":               true,
	"UnityEngine.LODGroup":            true,
	"UnityEngine.MeshCollider":        true,
	"UnityEngine.SphereCollider":      true,
	"UnityEngine.AI.NavMeshAgent":     true,
}

// Supports reports whether typeName exposes an enabled property.
func (l EnabledLookup) Supports(typeName string) bool {
	return l[typeName]
}

// Resolve returns value when typeName exposes an enabled property and nil
// otherwise. It never fails.
func (l EnabledLookup) Resolve(typeName string, value *bool) *bool {
	if value == nil || !l.Supports(typeName) {
		return nil
	}
	v := *value
	return &v
}

// rendererTypes are built-in types classified as renderers when a scene
// dump does not name a kind explicitly.
var rendererTypes = map[string]bool{
	"UnityEngine.MeshRenderer":           true,
	"UnityEngine.SkinnedMeshRenderer":    true,
	"UnityEngine.SpriteRenderer":         true,
	"UnityEngine.LineRenderer":           true,
	"UnityEngine.TrailRenderer":          true,
	"UnityEngine.ParticleSystemRenderer": true,
	"UnityEngine.BillboardRenderer":      true,
}

// InferKind guesses the kind of a component from its type name.
func InferKind(typeName string) Kind {
	if rendererTypes[typeName] {
		return KindRenderer
	}
	if strings.HasPrefix(typeName, "UnityEngine.") {
		return KindBuiltin
	}
	return KindScript
}
