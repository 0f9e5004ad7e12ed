package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// Root is the node id of the movie itself.
const Root = "movie"

// Node is one character, or the movie root.
type Node struct {
	ID    string
	Kind  string
	Meta  map[string]any
	Known bool
}

// Edge is a reference from one node to another.
type Edge struct {
	From, To string
}

// Graph is the character reference graph of a movie.
type Graph struct {
	nodes map[string]*Node
	edges map[Edge]struct{}
}

// Nodes returns the nodes sorted by id, with the root first.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		if id != Root {
			out = append(out, g.nodes[id])
		}
	}
	if root, ok := g.nodes[Root]; ok {
		out = append([]*Node{root}, out...)
	}
	return out
}

// Edges returns the edges in a stable order.
func (g *Graph) Edges() []Edge {
	return slices.SortedFunc(maps.Keys(g.edges), func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Dangling returns the ids of referenced characters that are not defined.
func (g *Graph) Dangling() []string {
	var out []string
	for _, n := range g.Nodes() {
		if !n.Known {
			out = append(out, n.ID)
		}
	}
	return out
}

// NodeID names the node of a character.
func NodeID(id swf.CharacterID) string {
	return "c_" + strconv.Itoa(int(id))
}

// Build collects the references of m: the movie to the characters it
// places, each sprite to the characters it places, and each shape to the
// bitmaps its fills use. References to undefined characters become nodes
// with Known unset.
func Build(m *movie.Movie) *Graph {
	g := &Graph{nodes: make(map[string]*Node), edges: make(map[Edge]struct{})}
	g.nodes[Root] = &Node{ID: Root, Kind: "movie", Known: true, Meta: map[string]any{
		"frames": int(m.Timeline.FrameCount),
		"depths": len(m.Timeline.Layers),
	}}

	for _, id := range m.Dictionary.IDs() {
		c, _ := m.Dictionary.Lookup(id)
		n := g.node(id)
		n.Kind, n.Known = c.Kind(), true

		switch c := c.(type) {
		case dictionary.Sprite:
			n.Meta["frames"] = int(c.FrameCount)
			g.timeline(n.ID, c.Timeline)
		case dictionary.Shape:
			n.Meta["fills"] = len(c.Fill)
			n.Meta["strokes"] = len(c.Stroke)
			for _, f := range c.Fill {
				g.fill(n.ID, f.Style)
			}
			for _, s := range c.Stroke {
				g.fill(n.ID, s.Style.Fill)
			}
		case dictionary.Bitmap:
			b := c.Image.Bounds()
			n.Meta["size"] = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
		}
	}
	g.timeline(Root, m.Timeline)
	return g
}

func (g *Graph) node(id swf.CharacterID) *Node {
	key := NodeID(id)
	n, ok := g.nodes[key]
	if !ok {
		n = &Node{ID: key, Kind: "undefined", Meta: make(map[string]any)}
		g.nodes[key] = n
	}
	return n
}

func (g *Graph) timeline(from string, tl *timeline.Timeline) {
	for _, id := range tl.Characters() {
		g.edges[Edge{From: from, To: g.node(id).ID}] = struct{}{}
	}
}

func (g *Graph) fill(from string, style swf.FillStyle) {
	if b, ok := style.(*swf.BitmapFill); ok {
		g.edges[Edge{From: from, To: g.node(b.BitmapID).ID}] = struct{}{}
	}
}

// Options configures DOT generation.
type Options struct {
	// Detailed adds kind and metadata lines to node labels.
	Detailed bool
}

var kindColors = map[string]string{
	"movie":  "lightgoldenrod",
	"shape":  "white",
	"sprite": "lightblue",
	"bitmap": "palegreen",
	"text":   "lavender",
}

// ToDOT converts g to Graphviz DOT source.
//
// Undefined characters are drawn with dashed red outlines.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	parts := []string{n.Kind}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !n.Known {
		return append(attrs, "style=\"rounded,dashed\"", "color=red", "fontcolor=red")
	}
	if c, ok := kindColors[n.Kind]; ok {
		attrs = append(attrs, "fillcolor="+c)
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
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

// normalizeViewBox rewrites the root element with a zero-origin viewBox and
// matching width and height.
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
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
