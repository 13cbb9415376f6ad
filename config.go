package s2

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the numeric settings of a Scene. LoadConfig reads them from
// S2_* environment variables, e.g. S2_INTERSECT_TOLERANCE=0.001.
type Config struct {
	IntersectTolerance float64 `envconfig:"INTERSECT_TOLERANCE" default:"0.01"`
	IntersectMaxDepth  int     `envconfig:"INTERSECT_MAX_DEPTH" default:"20"`
	ArcLengthAccuracy  float64 `envconfig:"ARCLEN_ACCURACY" default:"0.000001"`
	ArcLengthSamples   int     `envconfig:"ARCLEN_SAMPLES" default:"64"`
	MatrixEpsilon      float64 `envconfig:"MATRIX_EPSILON" default:"0.0001"`
	ViewportWidth      float64 `envconfig:"VIEWPORT_WIDTH" default:"960"`
	ViewportHeight     float64 `envconfig:"VIEWPORT_HEIGHT" default:"540"`
	HalfExtentX        float64 `envconfig:"HALF_EXTENT_X" default:"8"`
	HalfExtentY        float64 `envconfig:"HALF_EXTENT_Y" default:"4.5"`
	Debug              bool    `envconfig:"DEBUG" default:"false"`
}

// DefaultConfig returns the defaults LoadConfig uses for unset variables.
func DefaultConfig() Config {
	return Config{
		IntersectTolerance: DefaultIntersectTolerance,
		IntersectMaxDepth:  DefaultIntersectMaxDepth,
		ArcLengthAccuracy:  DefaultArcLengthAccuracy,
		ArcLengthSamples:   DefaultArcLengthSamples,
		MatrixEpsilon:      DefaultMatrixEpsilon,
		ViewportWidth:      960,
		ViewportHeight:     540,
		HalfExtentX:        8,
		HalfExtentY:        4.5,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("S2", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch {
	case c.IntersectTolerance <= 0:
		return fmt.Errorf("s2: intersect tolerance %g must be positive", c.IntersectTolerance)
	case c.IntersectMaxDepth < 0:
		return fmt.Errorf("s2: intersect max depth %d must not be negative", c.IntersectMaxDepth)
	case c.ArcLengthAccuracy <= 0:
		return fmt.Errorf("s2: arc length accuracy %g must be positive", c.ArcLengthAccuracy)
	case c.ArcLengthSamples < 1:
		return fmt.Errorf("s2: arc length samples %d must be at least 1", c.ArcLengthSamples)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return fmt.Errorf("s2: viewport %gx%g must be positive", c.ViewportWidth, c.ViewportHeight)
	case c.HalfExtentX <= 0 || c.HalfExtentY <= 0:
		return fmt.Errorf("s2: half extents (%g, %g) must be positive", c.HalfExtentX, c.HalfExtentY)
	}
	return nil
}
