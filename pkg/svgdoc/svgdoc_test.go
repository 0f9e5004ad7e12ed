package svgdoc

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

func TestWriteOrderAndEscape(t *testing.T) {
	root := New("svg", "xmlns", NamespaceSVG, "width", "10")
	root.Append(
		New("path", "d", "M0 0L1 1", "fill", `a"b`),
		&Element{Name: "text", Text: "x < y & z"},
	)
	root.Set("width", "20")

	got := root.String()
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="20">` +
		`<path d="M0 0L1 1" fill="a&#34;b"/>` +
		`<text>x &lt; y &amp; z</text></svg>`
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestCDATA(t *testing.T) {
	e := &Element{Name: "script", CDATA: "if (a < b && c) { x = ']]>'; }"}
	out := e.Bytes()
	if !bytes.HasPrefix(out, []byte(xml.Header)) {
		t.Fatalf("Bytes() missing declaration: %s", out)
	}

	var v struct {
		Body string `xml:",chardata"`
	}
	if err := xml.Unmarshal(out, &v); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, out)
	}
	if v.Body != e.CDATA {
		t.Errorf("round trip = %q, want %q", v.Body, e.CDATA)
	}
}

func TestFindAndByID(t *testing.T) {
	root := New("svg").Append(
		New("defs").Append(New("g", "id", "c_1").Append(New("path"))),
		New("g", "id", "body").Append(New("path")),
	)
	if n := len(root.Find("path")); n != 2 {
		t.Errorf("Find(path) = %d elements, want 2", n)
	}
	g := root.ByID("c_1")
	if g == nil || g.Name != "g" {
		t.Fatalf("ByID(c_1) = %v", g)
	}
	if root.ByID("missing") != nil {
		t.Error("ByID(missing) != nil")
	}
	var sb strings.Builder
	if _, err := root.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if !strings.Contains(sb.String(), `<g id="c_1"><path/></g>`) {
		t.Errorf("WriteTo() = %s", sb.String())
	}
}
