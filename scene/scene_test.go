package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"whitted/color"
	"whitted/contact"
	"whitted/geometry"
	"whitted/light"
	"whitted/material"
	"whitted/ray"
	"whitted/transform"
	"whitted/vmath/tuple"
)

func TestNew(t *testing.T) {
	s := New()
	if len(s.Objects) != 0 {
		t.Errorf("New scene has %d objects, want 0", len(s.Objects))
	}
	if s.Light != nil {
		t.Errorf("New scene has light %v, want none", s.Light)
	}
}

func TestDefault(t *testing.T) {
	s := Default()

	wantLight := light.NewPoint(tuple.Point(-10, 10, -10), color.New(1, 1, 1))
	if s.Light == nil {
		t.Fatalf("Default scene has no light")
	}
	if diff := cmp.Diff(*s.Light, wantLight); diff != "" {
		t.Errorf("Bad light; diff (-got +want)\n%s", diff)
	}

	s1 := geometry.NewSphere()
	m := material.Default()
	m.Color = color.New(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	s1.SetMaterial(m)

	s2 := geometry.NewSphere()
	s2.SetTransform(transform.Scaling(0.5, 0.5, 0.5))

	want := []contact.Shape{s1, s2}
	if diff := cmp.Diff(s.Objects, want); diff != "" {
		t.Errorf("Bad objects; diff (-got +want)\n%s", diff)
	}
}

func TestIntersect(t *testing.T) {
	s := Default()
	r := ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1))

	got := []float64{}
	for _, x := range s.Intersect(r) {
		got = append(got, x.T)
	}
	if diff := cmp.Diff(got, []float64{4, 4.5, 5.5, 6}, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bad contacts; diff (-got +want)\n%s", diff)
	}
}

func TestShadeHit(t *testing.T) {
	s := Default()
	r := ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1))
	comps := contact.New(4, s.Objects[0]).Prepare(r)

	if diff := cmp.Diff(s.ShadeHit(comps), color.New(0.38066, 0.47583, 0.2855)); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}

func TestShadeHitInside(t *testing.T) {
	s := Default()
	s.SetLight(light.NewPoint(tuple.Point(0, 0.25, 0), color.New(1, 1, 1)))
	r := ray.New(tuple.Point(0, 0, 0), tuple.Vector(0, 0, 1))
	comps := contact.New(0.5, s.Objects[1]).Prepare(r)

	if diff := cmp.Diff(s.ShadeHit(comps), color.New(0.90498, 0.90498, 0.90498)); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}

func TestShadeHitUnlit(t *testing.T) {
	s := Default()
	s.Light = nil
	r := ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1))
	comps := contact.New(4, s.Objects[0]).Prepare(r)

	if diff := cmp.Diff(s.ShadeHit(comps), color.Black()); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}

func TestColorAt(t *testing.T) {
	testCases := []struct {
		desc string
		r    ray.Ray
		want color.T
	}{
		{
			desc: "miss",
			r:    ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 1, 0)),
			want: color.New(0, 0, 0),
		},
		{
			desc: "hit",
			r:    ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1)),
			want: color.New(0.38066, 0.47583, 0.2855),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if diff := cmp.Diff(Default().ColorAt(tc.r), tc.want); diff != "" {
				t.Errorf("diff (-got +want)\n%s", diff)
			}
		})
	}
}

func TestColorAtIntersectionBehindRay(t *testing.T) {
	s := Default()

	outer := s.Objects[0].(*geometry.Sphere)
	m := outer.Material()
	m.Ambient = 1
	outer.SetMaterial(m)

	inner := s.Objects[1].(*geometry.Sphere)
	m = inner.Material()
	m.Ambient = 1
	inner.SetMaterial(m)

	r := ray.New(tuple.Point(0, 0, 0.75), tuple.Vector(0, 0, -1))
	if diff := cmp.Diff(s.ColorAt(r), inner.Material().Color); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}
