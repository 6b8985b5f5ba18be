// Package dae reads COLLADA documents. It covers the geometry subset
// used by exported scenes: library_geometries with triangles and
// polylists, visual scene node transforms, and diffuse material colors.
package dae

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

type collada struct {
	Asset struct {
		UpAxis string `xml:"up_axis"`
	} `xml:"asset"`
	Geometries []*daeGeometry `xml:"library_geometries>geometry"`
	Materials  []*daeMaterial `xml:"library_materials>material"`
	Effects    []*daeEffect   `xml:"library_effects>effect"`
	Nodes      []*daeNode     `xml:"library_visual_scenes>visual_scene>node"`
}

type daeGeometry struct {
	ID   string  `xml:"id,attr"`
	Name string  `xml:"name,attr"`
	Mesh daeMesh `xml:"mesh"`
}

type daeMesh struct {
	Sources   []*daeSource `xml:"source"`
	Vertices  daeVertices  `xml:"vertices"`
	Triangles []*daePrims  `xml:"triangles"`
	Polylists []*daePrims  `xml:"polylist"`
}

type daeSource struct {
	ID         string `xml:"id,attr"`
	FloatArray string `xml:"float_array"`
	Accessor   struct {
		Stride int `xml:"stride,attr"`
	} `xml:"technique_common>accessor"`
}

type daeVertices struct {
	ID     string      `xml:"id,attr"`
	Inputs []*daeInput `xml:"input"`
}

type daeInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
}

type daePrims struct {
	Count    int         `xml:"count,attr"`
	Material string      `xml:"material,attr"`
	Inputs   []*daeInput `xml:"input"`
	VCount   string      `xml:"vcount"`
	P        string      `xml:"p"`
}

type daeMaterial struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Effect struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_effect"`
}

type daeEffect struct {
	ID      string `xml:"id,attr"`
	Phong   string `xml:"profile_COMMON>technique>phong>diffuse>color"`
	Lambert string `xml:"profile_COMMON>technique>lambert>diffuse>color"`
	Blinn   string `xml:"profile_COMMON>technique>blinn>diffuse>color"`
}

type daeNode struct {
	ID         string     `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	Matrix     string     `xml:"matrix"`
	Translate  string     `xml:"translate"`
	Rotates    []string   `xml:"rotate"`
	Scale      string     `xml:"scale"`
	Geometries []struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_geometry"`
	Children []*daeNode `xml:"node"`
}

func Load(path string) ([]*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

func Parse(r io.Reader, name string) ([]*mesh.Mesh, error) {
	var doc collada
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dae: %w", err)
	}

	hints := materialHints(&doc)
	byID := map[string]*daeGeometry{}
	for _, g := range doc.Geometries {
		byID[g.ID] = g
	}

	var out []*mesh.Mesh
	placed := map[string]bool{}
	for _, n := range doc.Nodes {
		flattenNode(n, geom.NewMatrix4(), byID, hints, placed, &out)
	}
	// geometries not referenced from any visual scene node
	for _, g := range doc.Geometries {
		if !placed[g.ID] {
			out = append(out, geometryMeshes(g, nil, hints)...)
		}
	}
	if doc.Asset.UpAxis == "Z_UP" {
		for _, m := range out {
			m.Transform(func(v *geom.Vector3) {
				v.Y, v.Z = v.Z, -v.Y
			})
		}
	}
	if len(out) == 1 && out[0].Name == "" {
		out[0].Name = name
	}
	return out, nil
}

func flattenNode(n *daeNode, parent *geom.Matrix4, byID map[string]*daeGeometry, hints map[string]*mesh.Hint, placed map[string]bool, dst *[]*mesh.Mesh) {
	mat := parent.Mul(nodeMatrix(n))
	for _, ig := range n.Geometries {
		g := byID[strings.TrimPrefix(ig.URL, "#")]
		if g == nil {
			continue
		}
		placed[g.ID] = true
		meshes := geometryMeshes(g, mat, hints)
		for _, m := range meshes {
			if m.Name == "" {
				m.Name = n.Name
			}
		}
		*dst = append(*dst, meshes...)
	}
	for _, c := range n.Children {
		flattenNode(c, mat, byID, hints, placed, dst)
	}
}

func nodeMatrix(n *daeNode) *geom.Matrix4 {
	if vals := parseFloats(n.Matrix); len(vals) == 16 {
		// collada matrices are row major
		m := &geom.Matrix4{}
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				m[col*4+row] = vals[row*4+col]
			}
		}
		return m
	}
	mat := geom.NewMatrix4()
	if t := parseFloats(n.Translate); len(t) == 3 {
		mat = mat.Mul(geom.NewTranslateMatrix4(t[0], t[1], t[2]))
	}
	for _, r := range n.Rotates {
		if v := parseFloats(r); len(v) == 4 {
			half := v[3] * math32.Pi / 180 / 2
			s := math32.Sin(half)
			mat = mat.Mul(geom.NewRotationMatrix4FromQuaternion(v[0]*s, v[1]*s, v[2]*s, math32.Cos(half)))
		}
	}
	if s := parseFloats(n.Scale); len(s) == 3 {
		mat = mat.Mul(geom.NewScaleMatrix4(s[0], s[1], s[2]))
	}
	return mat
}

func materialHints(doc *collada) map[string]*mesh.Hint {
	colors := map[string][4]float32{}
	for _, e := range doc.Effects {
		src := e.Phong
		if src == "" {
			src = e.Lambert
		}
		if src == "" {
			src = e.Blinn
		}
		if c := parseFloats(src); len(c) >= 3 {
			col := [4]float32{c[0], c[1], c[2], 1}
			if len(c) >= 4 {
				col[3] = c[3]
			}
			colors[e.ID] = col
		}
	}
	hints := map[string]*mesh.Hint{}
	for _, m := range doc.Materials {
		h := &mesh.Hint{Name: m.Name}
		if h.Name == "" {
			h.Name = m.ID
		}
		if col, ok := colors[strings.TrimPrefix(m.Effect.URL, "#")]; ok {
			h.BaseColor = col
			h.HasColor = true
		}
		// primitives reference materials by id through the bind table;
		// accept both id and name as keys
		hints[m.ID] = h
		hints[m.Name] = h
	}
	return hints
}

// geometryMeshes converts one geometry, one mesh per primitive block.
// Corners are expanded so normals and UVs become per vertex.
func geometryMeshes(g *daeGeometry, mat *geom.Matrix4, hints map[string]*mesh.Hint) []*mesh.Mesh {
	sources := map[string][]geom.Element{}
	strides := map[string]int{}
	for _, s := range g.Mesh.Sources {
		sources[s.ID] = parseFloats(s.FloatArray)
		strides[s.ID] = s.Accessor.Stride
	}
	// VERTEX input indirects through the vertices element
	positionSource := ""
	for _, in := range g.Mesh.Vertices.Inputs {
		if in.Semantic == "POSITION" {
			positionSource = strings.TrimPrefix(in.Source, "#")
		}
	}

	name := g.Name
	if name == "" {
		name = g.ID
	}

	var out []*mesh.Mesh
	add := func(p *daePrims, vcounts []int) {
		m := primsToMesh(p, vcounts, g.Mesh.Vertices.ID, positionSource, sources, strides)
		if m == nil {
			return
		}
		m.Name = name
		if h, ok := hints[p.Material]; ok {
			hc := *h
			m.Hint = &hc
		}
		m.ApplyMatrix(mat)
		out = append(out, m)
	}
	for _, p := range g.Mesh.Triangles {
		counts := make([]int, p.Count)
		for i := range counts {
			counts[i] = 3
		}
		add(p, counts)
	}
	for _, p := range g.Mesh.Polylists {
		add(p, parseInts(p.VCount))
	}
	return out
}

func primsToMesh(p *daePrims, vcounts []int, verticesID, positionSource string, sources map[string][]geom.Element, strides map[string]int) *mesh.Mesh {
	indices := parseInts(p.P)
	stride := 0
	var posIn, normIn, uvIn *daeInput
	for _, in := range p.Inputs {
		if in.Offset+1 > stride {
			stride = in.Offset + 1
		}
		switch in.Semantic {
		case "VERTEX":
			posIn = in
		case "NORMAL":
			normIn = in
		case "TEXCOORD":
			if uvIn == nil {
				uvIn = in
			}
		}
	}
	if posIn == nil || stride == 0 {
		return nil
	}
	positions := sources[positionSource]
	if src := strings.TrimPrefix(posIn.Source, "#"); src != verticesID {
		positions = sources[src]
	}
	if len(positions) == 0 {
		return nil
	}

	readVec3 := func(id string, index int) *geom.Vector3 {
		data := sources[id]
		st := strides[id]
		if st == 0 {
			st = 3
		}
		base := index * st
		if base+2 >= len(data) {
			return &geom.Vector3{}
		}
		return &geom.Vector3{X: data[base], Y: data[base+1], Z: data[base+2]}
	}

	m := mesh.New("")
	corner := 0
	for _, vc := range vcounts {
		if (corner+vc)*stride > len(indices) {
			break
		}
		face := &mesh.Face{}
		for c := 0; c < vc; c++ {
			base := (corner + c) * stride
			face.Verts = append(face.Verts, len(m.Vertices))
			m.Vertices = append(m.Vertices, readVec3(positionSource, indices[base+posIn.Offset]))
			if normIn != nil {
				m.Normals = append(m.Normals, readVec3(strings.TrimPrefix(normIn.Source, "#"), indices[base+normIn.Offset]))
			}
			if uvIn != nil {
				id := strings.TrimPrefix(uvIn.Source, "#")
				data := sources[id]
				st := strides[id]
				if st == 0 {
					st = 2
				}
				var uv geom.Vector2
				if b := indices[base+uvIn.Offset] * st; b+1 < len(data) {
					uv = geom.Vector2{X: data[b], Y: 1 - data[b+1]}
				}
				m.UVs = append(m.UVs, uv)
			}
		}
		corner += vc
		if len(face.Verts) >= 3 {
			m.Faces = append(m.Faces, face)
		}
	}
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = nil
	}
	if len(m.UVs) != len(m.Vertices) {
		m.UVs = nil
	}
	return m
}

func parseFloats(s string) []geom.Element {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	out := make([]geom.Element, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil
		}
		out = append(out, geom.Element(v))
	}
	return out
}

func parseInts(s string) []int {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}
