// Package fbx reads FBX scenes (binary and ascii) and flattens them into
// normalized meshes: one mesh per model node, depth-first in document
// order, with node transforms baked into the vertices.
package fbx

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

func Load(path string) ([]*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	meshes, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if len(meshes) == 1 && meshes[0].Name == "" {
		meshes[0].Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return meshes, nil
}

func Parse(r io.Reader) ([]*mesh.Mesh, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Meshes(), nil
}

func ParseDocument(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(binaryMagic))

	var root *Node
	var err error
	if string(head) == binaryMagic {
		p := &binaryParser{r: &positionReader{r: br}}
		root, err = p.Parse()
	} else {
		p := &asciiParser{r: br}
		root, err = p.Parse()
	}
	if err != nil {
		return nil, err
	}
	return BuildDocument(root)
}

// Meshes walks the model hierarchy from the scene root and emits one mesh
// per model node that carries geometry, transforms baked.
func (doc *Document) Meshes() []*mesh.Mesh {
	var out []*mesh.Mesh
	upAxis := doc.GlobalSettings.PropInt("OriginalUpAxis", 1)
	for _, o := range doc.Scene.FindRefs("Model") {
		doc.flattenModel(&out, o, geom.NewMatrix4())
	}
	if upAxis == 2 {
		for _, m := range out {
			m.Transform(func(v *geom.Vector3) {
				v.Y, v.Z = v.Z, v.Y
			})
		}
	}
	return out
}

func (doc *Document) flattenModel(dst *[]*mesh.Mesh, model *Object, parent *geom.Matrix4) {
	mat := parent.Mul(modelMatrix(model))
	if gs := model.FindRefs("Geometry"); len(gs) > 0 {
		m := geometryToMesh(gs[0], model.Name())
		m.ApplyMatrix(mat)
		m.Hint = materialHint(model)
		*dst = append(*dst, m)
	}
	for _, child := range model.FindRefs("Model") {
		doc.flattenModel(dst, child, mat)
	}
}

func modelMatrix(m *Object) *geom.Matrix4 {
	deg := math32.Pi / 180
	translation := m.PropVec3("Lcl Translation", 0, 0, 0)
	rotation := m.PropVec3("Lcl Rotation", 0, 0, 0).Scale(deg)
	scaling := m.PropVec3("Lcl Scaling", 1, 1, 1)
	prerot := m.PropVec3("PreRotation", 0, 0, 0).Scale(deg)

	tr := geom.NewTranslateMatrix4(translation.X, translation.Y, translation.Z)
	pre := geom.NewEulerRotationMatrix4(prerot.X, prerot.Y, prerot.Z)
	rot := geom.NewEulerRotationMatrix4(rotation.X, rotation.Y, rotation.Z)
	sc := geom.NewScaleMatrix4(scaling.X, scaling.Y, scaling.Z)
	return tr.Mul(pre).Mul(rot).Mul(sc)
}

func materialHint(model *Object) *mesh.Hint {
	mats := model.FindRefs("Material")
	if len(mats) == 0 {
		return nil
	}
	m := mats[0]
	diffuse := m.PropVec3("DiffuseColor", 1, 1, 1)
	hint := &mesh.Hint{
		Name:      m.Name(),
		BaseColor: [4]float32{diffuse.X, diffuse.Y, diffuse.Z, m.PropFloat("Opacity", 1)},
		Roughness: 1 - m.PropFloat("SpecularFactor", 0),
		HasColor:  true,
	}
	if textures := m.FindRefs("Texture"); len(textures) > 0 {
		hint.Texture = textures[0].FindChild("RelativeFilename").AttrString(0)
	}
	return hint
}
