package scenefile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"whitted/color"
	"whitted/light"
	"whitted/material"
	"whitted/transform"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

func TestParseDemo(t *testing.T) {
	s, cam, err := Parse([]byte(DemoYAML))
	if err != nil {
		t.Fatalf("Unexpected error parsing demo scene: %v", err)
	}

	if cam.HSize != 900 || cam.VSize != 400 {
		t.Errorf("Got camera size %dx%d, want 900x400", cam.HSize, cam.VSize)
	}
	if math.Abs(cam.FieldOfView-math.Pi/3) > 1e-9 {
		t.Errorf("Got field of view %v, want pi/3", cam.FieldOfView)
	}
	wantView := transform.ViewTransform(tuple.Point(0, 1.5, -5), tuple.Point(0, 1, 0), tuple.Vector(0, 1, 0))
	if diff := cmp.Diff(cam.Transform(), wantView); diff != "" {
		t.Errorf("Bad camera transform; diff (-got +want)\n%s", diff)
	}

	wantLight := light.NewPoint(tuple.Point(-10, 10, -10), color.White())
	if diff := cmp.Diff(s.Light, &wantLight); diff != "" {
		t.Errorf("Bad light; diff (-got +want)\n%s", diff)
	}

	if len(s.Objects) != 6 {
		t.Fatalf("Got %d objects, want 6", len(s.Objects))
	}

	wallMaterial := material.Default()
	wallMaterial.Color = color.New(1, 0.9, 0.9)
	wallMaterial.Specular = 0

	leftSphereMaterial := material.Default()
	leftSphereMaterial.Color = color.New(0.317, 0.623, 0.929)
	leftSphereMaterial.Diffuse = 0.7
	leftSphereMaterial.Specular = 0.3

	testCases := []struct {
		desc          string
		index         int
		wantTransform matrix.T
		wantMaterial  material.Phong
	}{
		{
			desc:          "floor",
			index:         0,
			wantTransform: transform.Scaling(10, 0.01, 10),
			wantMaterial:  wallMaterial,
		},
		{
			desc:  "left wall",
			index: 1,
			wantTransform: transform.Compose(
				transform.Translation(0, 0, 5),
				transform.RotationY(-math.Pi/4),
				transform.RotationX(math.Pi/2),
				transform.Scaling(10, 0.01, 10)),
			wantMaterial: wallMaterial,
		},
		{
			desc:  "right wall",
			index: 2,
			wantTransform: transform.Compose(
				transform.Translation(0, 0, 5),
				transform.RotationY(math.Pi/4),
				transform.RotationX(math.Pi/2),
				transform.Scaling(10, 0.01, 10)),
			wantMaterial: wallMaterial,
		},
		{
			desc:  "small left sphere",
			index: 4,
			wantTransform: transform.Compose(
				transform.Translation(-1.5, 0.33, -0.75),
				transform.Scaling(0.33, 0.33, 0.33)),
			wantMaterial: leftSphereMaterial,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			o := s.Objects[tc.index]
			if diff := cmp.Diff(o.Transform(), tc.wantTransform); diff != "" {
				t.Errorf("Bad transform; diff (-got +want)\n%s", diff)
			}
			if diff := cmp.Diff(o.Material(), tc.wantMaterial); diff != "" {
				t.Errorf("Bad material; diff (-got +want)\n%s", diff)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	s, cam, err := Parse([]byte(`
camera:
  width: 10
  height: 20
  fieldOfView: 1.5
  from: [0, 0, -5]
  to: [0, 0, 0]
objects:
  - sphere: {}
`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Light != nil {
		t.Errorf("Got light %v, want none", *s.Light)
	}

	wantView := transform.ViewTransform(tuple.Point(0, 0, -5), tuple.Point(0, 0, 0), tuple.Vector(0, 1, 0))
	if diff := cmp.Diff(cam.Transform(), wantView); diff != "" {
		t.Errorf("Bad camera transform; diff (-got +want)\n%s", diff)
	}

	if len(s.Objects) != 1 {
		t.Fatalf("Got %d objects, want 1", len(s.Objects))
	}
	if diff := cmp.Diff(s.Objects[0].Transform(), matrix.Identity()); diff != "" {
		t.Errorf("Bad transform; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(s.Objects[0].Material(), material.Default()); diff != "" {
		t.Errorf("Bad material; diff (-got +want)\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	const cameraYAML = `
camera:
  width: 10
  height: 10
  fieldOfView: 1.5
  from: [0, 0, -5]
  to: [0, 0, 0]
`

	testCases := []struct {
		desc        string
		yaml        string
		wantMessage string
	}{
		{
			desc:        "missing camera",
			yaml:        "objects: []\n",
			wantMessage: "no camera",
		},
		{
			desc: "zero camera size",
			yaml: `
camera:
  width: 0
  height: 10
  from: [0, 0, -5]
  to: [0, 0, 0]
`,
			wantMessage: "size must be positive",
		},
		{
			desc: "short camera vector",
			yaml: `
camera:
  width: 10
  height: 10
  from: [0, 0]
  to: [0, 0, 0]
`,
			wantMessage: "want 3 values",
		},
		{
			desc: "camera looking at itself",
			yaml: `
camera:
  width: 10
  height: 10
  from: [0, 0, 0]
  to: [0, 0, 0]
`,
			wantMessage: "same point",
		},
		{
			desc: "up along the line of sight",
			yaml: `
camera:
  width: 10
  height: 10
  from: [0, 0, -5]
  to: [0, 0, 0]
  up: [0, 0, 1]
`,
			wantMessage: "not invertible",
		},
		{
			desc: "ambiguous transform",
			yaml: cameraYAML + `
objects:
  - sphere: {}
  - sphere:
      transforms:
        - translate: [1, 2, 3]
          scale: [1, 1, 1]
`,
			wantMessage: "object 1",
		},
		{
			desc: "empty transform",
			yaml: cameraYAML + `
objects:
  - sphere:
      transforms:
        - {}
`,
			wantMessage: "names no transform",
		},
		{
			desc: "unknown transform",
			yaml: cameraYAML + `
objects:
  - sphere:
      transforms:
        - twist: 3
`,
			wantMessage: "twist",
		},
		{
			desc: "bad shear",
			yaml: cameraYAML + `
objects:
  - sphere:
      transforms:
        - shear: [1, 0, 0]
`,
			wantMessage: "shear needs 6 values",
		},
		{
			desc: "singular transform",
			yaml: cameraYAML + `
objects:
  - sphere:
      transforms:
        - scale: [1, 0, 1]
`,
			wantMessage: "not invertible",
		},
		{
			desc: "bad material color",
			yaml: cameraYAML + `
objects:
  - sphere:
      material:
        color: [1, 1, 1, 1]
`,
			wantMessage: "material: color",
		},
		{
			desc: "object without shape",
			yaml: cameraYAML + `
objects:
  - {}
`,
			wantMessage: "no shape",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, _, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("Parse succeeded, want error containing %q", tc.wantMessage)
			}
			if !strings.Contains(err.Error(), tc.wantMessage) {
				t.Errorf("Got error %q, want it to contain %q", err, tc.wantMessage)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "demo.yaml")
	if err := os.WriteFile(name, []byte(DemoYAML), 0644); err != nil {
		t.Fatalf("Unexpected error writing scene file: %v", err)
	}

	s, cam, err := Load(context.Background(), name)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Objects) != 6 {
		t.Errorf("Got %d objects, want 6", len(s.Objects))
	}
	if cam.HSize != 900 {
		t.Errorf("Got camera width %d, want 900", cam.HSize)
	}

	if _, _, err := Load(context.Background(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Loading a missing file succeeded, want error")
	}
}
