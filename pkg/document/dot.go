package document

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures node-link rendering of a document.
type DOTOptions struct {
	// Detailed adds layer, tag and component types to object labels.
	// When false, only the object name is shown.
	Detailed bool
}

// ToDOT converts the Hierarchy/Scene/GameObject skeleton of d to Graphviz
// DOT. Component, frame and material elements are folded into labels.
//
// Inactive objects are drawn dashed and error placeholders are filled red.
func ToDOT(d *Document, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	if d.Root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	ids := make(map[*Element]string)
	var edges []string
	d.Root.Walk(func(el *Element, ancestors []*Element) bool {
		if !isGraphNode(el) {
			return false
		}
		id := "n" + strconv.Itoa(len(ids))
		ids[el] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(el, opts.Detailed), ", "))
		if len(ancestors) > 0 {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", ids[ancestors[len(ancestors)-1]], id))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func isGraphNode(el *Element) bool {
	switch el.Name {
	case "Hierarchy", "Scene", "GameObject":
		return true
	}
	return false
}

func fmtLabel(el *Element, detailed bool) string {
	switch el.Name {
	case "Hierarchy":
		if v := el.Attr("unityVersion"); v != "" {
			return "Hierarchy\n" + v
		}
		return "Hierarchy"
	case "Scene":
		return "Scene: " + el.Attr("name")
	}

	label := el.Attr("name")
	if msg, ok := el.Get("error"); ok {
		return label + "\nerror: " + msg
	}
	if !detailed {
		return label
	}
	parts := []string{
		"layer: " + el.Attr("layer"),
		"tag: " + el.Attr("tag"),
	}
	if comps := el.Child("Components"); comps != nil {
		for _, c := range comps.Children {
			parts = append(parts, c.Attr("type"))
		}
	}
	if r := el.Child("Renderer"); r != nil {
		parts = append(parts, r.Attr("type"))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(el *Element, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(el, detailed))}
	switch {
	case el.Name == "Hierarchy":
		attrs = append(attrs, "shape=folder", "fillcolor=lightblue")
	case el.Name == "Scene":
		attrs = append(attrs, "shape=tab", "fillcolor=lightyellow")
	case hasAttr(el, "error"):
		attrs = append(attrs, "fillcolor=\"#f8b4b4\"")
	case el.Attr("active") == "false":
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func hasAttr(el *Element, name string) bool {
	_, ok := el.Get(name)
	return ok
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
