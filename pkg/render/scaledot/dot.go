// Package scaledot renders a scale registry's parent graph as a Graphviz
// diagram. Derived scales point at the scale they inherit from, which makes
// commit cascades visible at a glance.
package scaledot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/plotgrid/plotgrid/pkg/scale"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes orientation, direction, and the committed range in
	// node labels. When false, only the key and distribution are shown.
	Detailed bool
}

// ToDOT converts a registry to Graphviz DOT format. Nodes appear in
// definition order; unresolved scales are drawn dashed.
func ToDOT(reg *scale.Registry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scales {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	keys := reg.Keys()
	for _, k := range keys {
		s, ok := reg.Get(k)
		if !ok {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, opts.Detailed))}
		if !s.Resolved() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", k, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, k := range keys {
		s, ok := reg.Get(k)
		if !ok || s.Parent == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", k, s.Parent)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s *scale.Scale, detailed bool) string {
	label := s.Key + "\n" + s.Distr.String()
	if !detailed {
		return label
	}

	orient := "vertical"
	if s.Horizontal {
		orient = "horizontal"
	}
	if s.Dir < 0 {
		orient += ", flipped"
	}
	label += "\n" + orient

	if min, max, err := s.Bounds(); err == nil {
		label += fmt.Sprintf("\n[%g, %g]", min, max)
	} else {
		label += "\nunresolved"
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at the
// origin and the pixel dimensions match it.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
