// Package scenefile loads scenes and cameras from YAML descriptions.
package scenefile

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"whitted/camera"
	"whitted/color"
	"whitted/geometry"
	"whitted/light"
	"whitted/material"
	"whitted/scene"
	"whitted/transform"
	"whitted/vmath/approx"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// DemoYAML is a room with a floor, two walls, and three spheres on the
// floor, lit from the upper left.
const DemoYAML = `
camera:
  width: 900
  height: 400
  fieldOfView: 1.0471975511965976
  from: [0, 1.5, -5]
  to: [0, 1, 0]
  up: [0, 1, 0]
light:
  position: [-10, 10, -10]
  intensity: [1, 1, 1]
objects:
  # Floor.
  - sphere:
      transforms:
        - scale: [10, 0.01, 10]
      material:
        color: [1, 0.9, 0.9]
        specular: 0
  # Left wall.
  - sphere:
      transforms:
        - scale: [10, 0.01, 10]
        - rotateX: 1.5707963267948966
        - rotateY: -0.7853981633974483
        - translate: [0, 0, 5]
      material:
        color: [1, 0.9, 0.9]
        specular: 0
  # Right wall.
  - sphere:
      transforms:
        - scale: [10, 0.01, 10]
        - rotateX: 1.5707963267948966
        - rotateY: 0.7853981633974483
        - translate: [0, 0, 5]
      material:
        color: [1, 0.9, 0.9]
        specular: 0
  - sphere:
      transforms:
        - translate: [-0.5, 1, 0.5]
      material:
        color: [0.1, 1, 0.5]
        diffuse: 0.7
        specular: 0.3
  - sphere:
      transforms:
        - scale: [0.33, 0.33, 0.33]
        - translate: [-1.5, 0.33, -0.75]
      material:
        color: [0.317, 0.623, 0.929]
        diffuse: 0.7
        specular: 0.3
  - sphere:
      transforms:
        - scale: [0.5, 0.5, 0.5]
        - translate: [1.5, 0.5, -0.5]
      material:
        color: [0.5, 1, 0.1]
        diffuse: 0.7
        specular: 0.3
`

type fileScene struct {
	Camera  *fileCamera  `yaml:"camera"`
	Light   *fileLight   `yaml:"light"`
	Objects []fileObject `yaml:"objects"`
}

type fileCamera struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	FieldOfView float64   `yaml:"fieldOfView"`
	From        []float64 `yaml:"from"`
	To          []float64 `yaml:"to"`
	Up          []float64 `yaml:"up"`
}

type fileLight struct {
	Position  []float64 `yaml:"position"`
	Intensity []float64 `yaml:"intensity"`
}

type fileObject struct {
	Sphere *fileSphere `yaml:"sphere"`
}

type fileSphere struct {
	Transforms []fileTransform `yaml:"transforms"`
	Material   *fileMaterial   `yaml:"material"`
}

// fileTransform must have exactly one field set.
type fileTransform struct {
	Translate []float64 `yaml:"translate"`
	Scale     []float64 `yaml:"scale"`
	RotateX   *float64  `yaml:"rotateX"`
	RotateY   *float64  `yaml:"rotateY"`
	RotateZ   *float64  `yaml:"rotateZ"`
	Shear     []float64 `yaml:"shear"`
}

type fileMaterial struct {
	Color     []float64 `yaml:"color"`
	Ambient   *float64  `yaml:"ambient"`
	Diffuse   *float64  `yaml:"diffuse"`
	Specular  *float64  `yaml:"specular"`
	Shininess *float64  `yaml:"shininess"`
}

// Load reads and parses the scene file at fileName.
func Load(ctx context.Context, fileName string) (*scene.Scene, *camera.PinholeCamera, error) {
	tracer := otel.Tracer("whitted/scenefile")
	var span trace.Span
	_, span = tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(attribute.String("fileName", fileName))

	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("while reading scene file: %w", err)
	}

	s, cam, err := Parse(fileBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("while parsing %s: %w", fileName, err)
	}

	glog.V(1).Infof("Loaded scene %q: %d objects, %dx%d camera", fileName, len(s.Objects), cam.HSize, cam.VSize)
	return s, cam, nil
}

// Parse builds a scene and camera from a YAML description.  Unknown keys
// are rejected.
func Parse(data []byte) (*scene.Scene, *camera.PinholeCamera, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	fs := &fileScene{}
	if err := dec.Decode(fs); err != nil {
		return nil, nil, fmt.Errorf("while unmarshaling scene: %w", err)
	}

	if fs.Camera == nil {
		return nil, nil, fmt.Errorf("scene has no camera")
	}
	cam, err := convertCamera(fs.Camera)
	if err != nil {
		return nil, nil, fmt.Errorf("while building camera: %w", err)
	}

	s := scene.New()

	if fs.Light != nil {
		l, err := convertLight(fs.Light)
		if err != nil {
			return nil, nil, fmt.Errorf("while building light: %w", err)
		}
		s.SetLight(l)
	}

	for i, o := range fs.Objects {
		if o.Sphere == nil {
			return nil, nil, fmt.Errorf("object %d: no shape given", i)
		}
		sphere, err := convertSphere(o.Sphere)
		if err != nil {
			return nil, nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.AddObject(sphere)
	}

	return s, cam, nil
}

func convertCamera(in *fileCamera) (*camera.PinholeCamera, error) {
	if in.Width <= 0 || in.Height <= 0 {
		return nil, fmt.Errorf("size must be positive, got %dx%d", in.Width, in.Height)
	}

	from, err := convertPoint(in.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := convertPoint(in.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	up := tuple.Vector(0, 1, 0)
	if in.Up != nil {
		up, err = convertVector(in.Up)
		if err != nil {
			return nil, fmt.Errorf("up: %w", err)
		}
	}

	if approx.Zero(tuple.SubTT(to, from).Norm()) {
		return nil, fmt.Errorf("from and to are the same point %v", from)
	}
	if approx.Zero(up.Norm()) {
		return nil, fmt.Errorf("up is the zero vector")
	}

	view := transform.ViewTransform(from, to, up)
	if !view.Invertible() {
		return nil, fmt.Errorf("view transform from %v to %v with up %v is not invertible", from, to, up)
	}

	cam := camera.NewPinholeCamera(in.Width, in.Height, in.FieldOfView)
	cam.SetTransform(view)
	return cam, nil
}

func convertLight(in *fileLight) (light.Point, error) {
	position, err := convertPoint(in.Position)
	if err != nil {
		return light.Point{}, fmt.Errorf("position: %w", err)
	}
	intensity, err := convertColor(in.Intensity)
	if err != nil {
		return light.Point{}, fmt.Errorf("intensity: %w", err)
	}
	return light.NewPoint(position, intensity), nil
}

func convertSphere(in *fileSphere) (*geometry.Sphere, error) {
	m := matrix.Identity()
	for i, t := range in.Transforms {
		step, err := convertTransform(t)
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", i, err)
		}
		m = matrix.MulMM(step, m)
	}
	if !m.Invertible() {
		return nil, fmt.Errorf("transform is not invertible")
	}

	mat := material.Default()
	if in.Material != nil {
		var err error
		mat, err = convertMaterial(in.Material)
		if err != nil {
			return nil, fmt.Errorf("material: %w", err)
		}
	}

	s := geometry.NewSphere()
	s.SetTransform(m)
	s.SetMaterial(mat)
	return s, nil
}

func convertTransform(in fileTransform) (matrix.T, error) {
	var (
		result matrix.T
		set    int
		err    error
	)

	if in.Translate != nil {
		set++
		var v [3]float64
		v, err = convertTriple(in.Translate)
		result = transform.Translation(v[0], v[1], v[2])
	}
	if in.Scale != nil {
		set++
		var v [3]float64
		v, err = convertTriple(in.Scale)
		result = transform.Scaling(v[0], v[1], v[2])
	}
	if in.RotateX != nil {
		set++
		result = transform.RotationX(*in.RotateX)
	}
	if in.RotateY != nil {
		set++
		result = transform.RotationY(*in.RotateY)
	}
	if in.RotateZ != nil {
		set++
		result = transform.RotationZ(*in.RotateZ)
	}
	if in.Shear != nil {
		set++
		if len(in.Shear) != 6 {
			err = fmt.Errorf("shear needs 6 values, got %d", len(in.Shear))
		} else {
			s := in.Shear
			result = transform.Shearing(s[0], s[1], s[2], s[3], s[4], s[5])
		}
	}

	switch {
	case set == 0:
		return matrix.T{}, fmt.Errorf("entry names no transform")
	case set > 1:
		return matrix.T{}, fmt.Errorf("entry names %d transforms, want exactly one", set)
	case err != nil:
		return matrix.T{}, err
	}
	return result, nil
}

func convertMaterial(in *fileMaterial) (material.Phong, error) {
	m := material.Default()
	if in.Color != nil {
		c, err := convertColor(in.Color)
		if err != nil {
			return material.Phong{}, fmt.Errorf("color: %w", err)
		}
		m.Color = c
	}
	if in.Ambient != nil {
		m.Ambient = *in.Ambient
	}
	if in.Diffuse != nil {
		m.Diffuse = *in.Diffuse
	}
	if in.Specular != nil {
		m.Specular = *in.Specular
	}
	if in.Shininess != nil {
		m.Shininess = *in.Shininess
	}
	return m, nil
}

func convertTriple(in []float64) ([3]float64, error) {
	if len(in) != 3 {
		return [3]float64{}, fmt.Errorf("want 3 values, got %d", len(in))
	}
	return [3]float64{in[0], in[1], in[2]}, nil
}

func convertPoint(in []float64) (tuple.T, error) {
	v, err := convertTriple(in)
	if err != nil {
		return tuple.T{}, err
	}
	return tuple.Point(v[0], v[1], v[2]), nil
}

func convertVector(in []float64) (tuple.T, error) {
	v, err := convertTriple(in)
	if err != nil {
		return tuple.T{}, err
	}
	return tuple.Vector(v[0], v[1], v[2]), nil
}

func convertColor(in []float64) (color.T, error) {
	v, err := convertTriple(in)
	if err != nil {
		return color.T{}, err
	}
	return color.New(v[0], v[1], v[2]), nil
}
