package dae

import (
	"strings"
	"testing"
)

const colladaDoc = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset><up_axis>Y_UP</up_axis></asset>
  <library_effects>
    <effect id="red-effect">
      <profile_COMMON>
        <technique sid="common">
          <lambert><diffuse><color>1 0 0 1</color></diffuse></lambert>
        </technique>
      </profile_COMMON>
    </effect>
  </library_effects>
  <library_materials>
    <material id="red" name="red">
      <instance_effect url="#red-effect"/>
    </material>
  </library_materials>
  <library_geometries>
    <geometry id="tri-geom" name="tri">
      <mesh>
        <source id="tri-pos">
          <float_array id="tri-pos-array" count="9">0 0 0 1 0 0 0 1 0</float_array>
          <technique_common>
            <accessor source="#tri-pos-array" count="3" stride="3">
              <param name="X" type="float"/><param name="Y" type="float"/><param name="Z" type="float"/>
            </accessor>
          </technique_common>
        </source>
        <source id="tri-norm">
          <float_array id="tri-norm-array" count="3">0 0 1</float_array>
          <technique_common>
            <accessor source="#tri-norm-array" count="1" stride="3"/>
          </technique_common>
        </source>
        <vertices id="tri-verts">
          <input semantic="POSITION" source="#tri-pos"/>
        </vertices>
        <triangles material="red" count="1">
          <input semantic="VERTEX" source="#tri-verts" offset="0"/>
          <input semantic="NORMAL" source="#tri-norm" offset="1"/>
          <p>0 0 1 0 2 0</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
  <library_visual_scenes>
    <visual_scene id="scene">
      <node id="n" name="tri-node">
        <translate>10 0 0</translate>
        <instance_geometry url="#tri-geom"/>
      </node>
    </visual_scene>
  </library_visual_scenes>
</COLLADA>
`

func TestParse(t *testing.T) {
	meshes, err := Parse(strings.NewReader(colladaDoc), "doc")
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 {
		t.Fatal("mesh count:", len(meshes))
	}
	m := meshes[0]
	if m.Name != "tri" {
		t.Error("name:", m.Name)
	}
	if len(m.Vertices) != 3 || len(m.Faces) != 1 {
		t.Fatal("verts:", len(m.Vertices), "faces:", len(m.Faces))
	}
	// node translate baked
	if m.Vertices[0].X != 10 || m.Vertices[1].X != 11 {
		t.Error("transform:", m.Vertices[0], m.Vertices[1])
	}
	if len(m.Normals) != 3 || m.Normals[0].Z != 1 {
		t.Error("normals:", m.Normals)
	}
	if m.Hint == nil || !m.Hint.HasColor || m.Hint.BaseColor[0] != 1 {
		t.Error("hint:", m.Hint)
	}
}

func TestParsePolylist(t *testing.T) {
	src := strings.Replace(colladaDoc,
		`<triangles material="red" count="1">
          <input semantic="VERTEX" source="#tri-verts" offset="0"/>
          <input semantic="NORMAL" source="#tri-norm" offset="1"/>
          <p>0 0 1 0 2 0</p>
        </triangles>`,
		`<polylist material="red" count="1">
          <input semantic="VERTEX" source="#tri-verts" offset="0"/>
          <vcount>3</vcount>
          <p>0 1 2</p>
        </polylist>`, 1)
	meshes, err := Parse(strings.NewReader(src), "doc")
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 || len(meshes[0].Faces) != 1 {
		t.Fatal("polylist not read")
	}
	if meshes[0].Normals != nil {
		t.Error("unexpected normals")
	}
}

func TestParseNotXML(t *testing.T) {
	if _, err := Parse(strings.NewReader("not a collada file"), "x"); err == nil {
		t.Error("expected error")
	}
}
