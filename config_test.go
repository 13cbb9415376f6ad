package s2

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("LoadConfig = %+v, want %+v", *cfg, DefaultConfig())
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("S2_INTERSECT_TOLERANCE", "0.001")
	t.Setenv("S2_VIEWPORT_WIDTH", "1280")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IntersectTolerance != 0.001 {
		t.Errorf("IntersectTolerance = %v", cfg.IntersectTolerance)
	}
	if cfg.ViewportWidth != 1280 {
		t.Errorf("ViewportWidth = %v", cfg.ViewportWidth)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"S2_VIEWPORT_WIDTH", "-1"},
		{"S2_INTERSECT_TOLERANCE", "0"},
		{"S2_INTERSECT_MAX_DEPTH", "deep"},
		{"S2_ARCLEN_SAMPLES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("%s=%s: no error", tt.key, tt.value)
			}
		})
	}
}

func TestSceneWithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntersectTolerance = 1e-3
	cfg.ViewportWidth = 480
	s := NewSceneWithConfig(cfg)
	if s.Intersector().Tolerance() != 1e-3 {
		t.Errorf("intersector tolerance = %v", s.Intersector().Tolerance())
	}
	assertVec(t, "scale", s.Camera().Scale(), V(30, 60), epsilon)

	cfg.ArcLengthSamples = 0
	assertPanics(t, "invalid config", func() { NewSceneWithConfig(cfg) })
}

func TestSceneArcLengthSettings(t *testing.T) {
	t.Setenv("S2_ARCLEN_SAMPLES", "8")
	t.Setenv("S2_ARCLEN_ACCURACY", "0.001")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	s := NewSceneWithConfig(*cfg)

	src := NewPolyCurve(World)
	src.AddLine(V(-8, 0), V(8, 0))
	p := s.NewPath("p", s.Root(), src)
	p.To.Set(0.5)
	s.Update(1.0 / 60)

	if n := p.Source().ArcLengthSamples(); n != 8 {
		t.Errorf("source samples = %d, want 8", n)
	}
	if n := p.Source().defaultTable().Len(); n != 9 {
		t.Errorf("source table Len = %d, want 9", n)
	}
	if n := src.defaultTable().Len(); n != DefaultArcLengthSamples+1 {
		t.Errorf("default table Len = %d", n)
	}
	if c := p.Curve(); c.ArcLengthSamples() != 8 || c.accuracy != 0.001 {
		t.Errorf("view curve samples = %d, accuracy = %v", c.ArcLengthSamples(), c.accuracy)
	}
	assertVec(t, "draw-on end", p.Curve().PointAt(1), V(480, 270), 1e-6)
}
