package fbx

import (
	"strings"

	"github.com/rika-tools/vertexa/geom"
)

// Document is the object graph built from the raw node tree: objects by id,
// wired together by the connection table.
type Document struct {
	Creator        string
	CreationTime   string
	GlobalSettings *Object

	Scene   *Object
	Objects map[int64]*Object

	RawRoot *Node
}

// Object is one entry of the Objects section plus its resolved references.
type Object struct {
	*Node
	Template   *Object
	Refs       []*Object
	properties map[string]*Node // lazy, from Properties70
}

func (o *Object) ID() int64 {
	return o.AttrInt64(0)
}

func (o *Object) Name() string {
	return strings.ReplaceAll(o.AttrString(1), "\x00\x01", "::")
}

func (o *Object) Property(name string) *Node {
	if o.properties == nil {
		o.properties = map[string]*Node{}
		for _, node := range o.FindChild("Properties70").GetChildren() {
			o.properties[node.AttrString(0)] = node
		}
	}
	if p, ok := o.properties[name]; ok {
		return p
	}
	if o.Template != nil {
		return o.Template.Property(name)
	}
	return nil
}

// PropFloat reads a Properties70 value. The value attrs start at index 4.
func (o *Object) PropFloat(name string, def float32) float32 {
	p := o.Property(name)
	if p == nil {
		return def
	}
	return p.Attr(4).ToFloat32(def)
}

func (o *Object) PropInt(name string, def int64) int64 {
	p := o.Property(name)
	if p == nil {
		return def
	}
	return p.Attr(4).ToInt64(def)
}

func (o *Object) PropVec3(name string, dx, dy, dz float32) *geom.Vector3 {
	p := o.Property(name)
	if p == nil {
		return &geom.Vector3{X: dx, Y: dy, Z: dz}
	}
	return &geom.Vector3{
		X: p.Attr(4).ToFloat32(dx),
		Y: p.Attr(5).ToFloat32(dy),
		Z: p.Attr(6).ToFloat32(dz),
	}
}

func (o *Object) FindRefs(nodeName string) []*Object {
	var refs []*Object
	for _, r := range o.Refs {
		if r.Node.Name == nodeName {
			refs = append(refs, r)
		}
	}
	return refs
}

// BuildDocument resolves the Objects and Connections sections of a raw tree.
func BuildDocument(root *Node) (*Document, error) {
	doc := &Document{
		RawRoot:      root,
		Creator:      root.FindChild("Creator").AttrString(0),
		CreationTime: root.FindChild("CreationTime").AttrString(0),
		Scene:        &Object{Node: &Node{Name: "Scene"}},
	}
	doc.Objects = map[int64]*Object{0: doc.Scene}

	templates := map[string]*Object{}
	for _, node := range root.FindChild("Definitions").GetChildren() {
		if node.Name != "ObjectType" {
			continue
		}
		if t := node.FindChild("PropertyTemplate"); t != nil {
			templates[node.AttrString(0)] = &Object{Node: t}
		}
	}
	doc.GlobalSettings = &Object{Node: root.FindChild("GlobalSettings"), Template: templates["GlobalSettings"]}
	if doc.GlobalSettings.Node == nil {
		doc.GlobalSettings.Node = &Node{Name: "GlobalSettings"}
	}

	for _, node := range root.FindChild("Objects").GetChildren() {
		obj := &Object{Node: node, Template: templates[node.Name]}
		doc.Objects[obj.ID()] = obj
	}

	for _, node := range root.FindChild("Connections").GetChildren() {
		if node.Name != "C" {
			continue
		}
		typ := node.AttrString(0)
		if typ != "OO" && typ != "OP" {
			continue
		}
		from := doc.Objects[node.AttrInt64(1)]
		to := doc.Objects[node.AttrInt64(2)]
		if from != nil && to != nil {
			to.Refs = append(to.Refs, from)
		}
	}
	return doc, nil
}
