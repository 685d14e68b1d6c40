package document

import (
	"bytes"
	"strings"
	"testing"
)

func sampleDoc() *Document {
	d := New("Hierarchy")
	d.Root.Set("exportTime", "2024-01-02 03:04:05").Set("unityVersion", "2022.3.1f1")
	scene := d.Root.AppendNew("Scene").Set("name", "Main").Set("active", "true").Set("path", "Assets/Main.unity")
	root := scene.AppendNew("GameObject").Set("name", "Root").Set("active", "true")
	root.AppendNew("Position").Set("x", "1").Set("y", "2.5").Set("z", "0")
	root.AppendNew("GameObject").Set("name", "Child").Set("active", "false")
	d.Root.AppendNew("Scene").Set("name", "DontDestroyOnLoad").Set("active", "true").Set("path", "")
	return d
}

func TestElement_SetKeepsOrder(t *testing.T) {
	e := NewElement("GameObject")
	e.Set("name", "a").Set("active", "true").Set("name", "b")

	if len(e.Attrs) != 2 {
		t.Fatalf("len(Attrs) = %d, want 2", len(e.Attrs))
	}
	if e.Attrs[0].Name != "name" || e.Attrs[0].Value != "b" {
		t.Errorf("Attrs[0] = %+v, want {name b}", e.Attrs[0])
	}
	if got := e.Attr("missing"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}
	if _, ok := e.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestElement_FindAll(t *testing.T) {
	d := sampleDoc()

	objs := d.Root.FindAll("GameObject")
	if len(objs) != 2 {
		t.Fatalf("FindAll(GameObject) = %d elements, want 2", len(objs))
	}
	if objs[0].Attr("name") != "Root" || objs[1].Attr("name") != "Child" {
		t.Errorf("FindAll order = [%s %s], want [Root Child]", objs[0].Attr("name"), objs[1].Attr("name"))
	}
	if got := len(d.Root.ChildrenNamed("Scene")); got != 2 {
		t.Errorf("ChildrenNamed(Scene) = %d, want 2", got)
	}
	if d.Root.Child("Nope") != nil {
		t.Error("Child(Nope) should be nil")
	}
}

func TestElement_WalkAncestors(t *testing.T) {
	d := sampleDoc()
	depths := map[string]int{}
	d.Root.Walk(func(el *Element, ancestors []*Element) bool {
		if el.Name == "GameObject" {
			depths[el.Attr("name")] = len(ancestors)
		}
		return true
	})
	if depths["Root"] != 2 {
		t.Errorf("Root ancestors = %d, want 2", depths["Root"])
	}
	if depths["Child"] != 3 {
		t.Errorf("Child ancestors = %d, want 3", depths["Child"])
	}
}

func TestClone_IsDeep(t *testing.T) {
	d := sampleDoc()
	c := d.Clone()
	c.Root.Set("unityVersion", "changed")
	c.Root.Children[0].Children[0].Set("name", "changed")

	if d.Root.Attr("unityVersion") != "2022.3.1f1" {
		t.Error("Clone shares root attributes with original")
	}
	if d.Root.Children[0].Children[0].Attr("name") != "Root" {
		t.Error("Clone shares descendants with original")
	}
}

func TestWriteXML(t *testing.T) {
	want := `<?xml version="1.0" encoding="utf-8"?>
<Hierarchy exportTime="2024-01-02 03:04:05" unityVersion="2022.3.1f1">
  <Scene name="Main" active="true" path="Assets/Main.unity">
    <GameObject name="Root" active="true">
      <Position x="1" y="2.5" z="0" />
      <GameObject name="Child" active="false" />
    </GameObject>
  </Scene>
  <Scene name="DontDestroyOnLoad" active="true" path="" />
</Hierarchy>
`
	got, err := MarshalXML(sampleDoc())
	if err != nil {
		t.Fatalf("MarshalXML() error: %v", err)
	}
	if string(got) != want {
		t.Errorf("MarshalXML() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteXML_Escaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a&b`, `a&amp;b`},
		{`<tag>`, `&lt;tag&gt;`},
		{`say "hi"`, `say &quot;hi&quot;`},
		{"line\nbreak", "line&#xA;break"},
		{"bad\x01rune", "bad�rune"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.in); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteXML_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, &Document{}); err != nil {
		t.Fatalf("WriteXML() error: %v", err)
	}
	if got := buf.String(); got != xmlHeader+"\n" {
		t.Errorf("WriteXML(empty) = %q, want header only", got)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDoc()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "Hierarchy"`) {
		t.Errorf("WriteJSON() missing root name:\n%s", buf.String())
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	want, _ := MarshalXML(sampleDoc())
	got, _ := MarshalXML(back)
	if string(got) != string(want) {
		t.Errorf("JSON round trip changed document:\n%s\nwant\n%s", got, want)
	}
}

func TestDigest_IgnoresExportTime(t *testing.T) {
	a := sampleDoc()
	b := sampleDoc()
	b.Root.Set("exportTime", "2030-12-31 23:59:59")

	da, err := Digest(a)
	if err != nil {
		t.Fatalf("Digest() error: %v", err)
	}
	db, _ := Digest(b)
	if da != db {
		t.Errorf("Digest differs on exportTime only: %s vs %s", da, db)
	}
	if len(da) != 64 {
		t.Errorf("len(Digest) = %d, want 64", len(da))
	}
	if a.Root.Attr("exportTime") != "2024-01-02 03:04:05" {
		t.Error("Digest mutated the document")
	}

	b.Root.Children[0].Set("name", "Other")
	if dc, _ := Digest(b); dc == da {
		t.Error("Digest unchanged after content change")
	}
}

func TestToDOT(t *testing.T) {
	d := sampleDoc()
	d.Root.Children[0].AppendNew("GameObject").Set("name", "Broken").Set("error", "boom")

	dot := ToDOT(d, DOTOptions{})

	for _, want := range []string{
		"digraph G",
		`label="Scene: Main"`,
		`label="Root"`,
		"n0 -> n1;",
		"dashed",
		`label="Broken\nerror: boom"`,
		"#f8b4b4",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Position") {
		t.Error("ToDOT() should not emit frame elements as nodes")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	d := New("Hierarchy")
	obj := d.Root.AppendNew("Scene").Set("name", "S").AppendNew("GameObject")
	obj.Set("name", "Cube").Set("layer", "Default").Set("tag", "Untagged")
	obj.AppendNew("Components").AppendNew("Component").Set("type", "Game.Spin")

	dot := ToDOT(d, DOTOptions{Detailed: true})
	if !strings.Contains(dot, `Cube\nlayer: Default\ntag: Untagged\nGame.Spin`) {
		t.Errorf("ToDOT() detailed label missing fields:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if out := normalizeViewBox([]byte("<svg>")); string(out) != "<svg>" {
		t.Errorf("normalizeViewBox(no viewBox) = %s", out)
	}
}
