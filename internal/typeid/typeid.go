// Package typeid generates the string keys that identify scene nodes across
// rebuilds, e.g. "circle_01h455vb4pex5vsknk084sn02q".
package typeid

import (
	"fmt"
	"slices"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixGroup  = "group"
	PrefixCircle = "circle"
	PrefixEdge   = "edge"
	PrefixGrid   = "grid"
	PrefixPath   = "path"
	PrefixScene  = "scene"
)

// NodePrefixes lists the prefixes a scene node key can carry.
var NodePrefixes = []string{PrefixGroup, PrefixCircle, PrefixEdge, PrefixGrid, PrefixPath}

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewSceneID() string { return New(PrefixScene) }

// Prefix returns the type prefix of id.
func Prefix(id string) (string, error) {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	return parsed.Prefix(), nil
}

// Validate checks that id parses and carries one of prefixes.
func Validate(id string, prefixes ...string) error {
	prefix, err := Prefix(id)
	if err != nil {
		return err
	}
	if !slices.Contains(prefixes, prefix) {
		return fmt.Errorf("expected prefix %q but got %q in id %q", prefixes, prefix, id)
	}
	return nil
}
