package s2

import "fmt"

type tokenKind uint8

const (
	tokenFresh tokenKind = iota
	tokenFrame
	tokenManual // synthesized by the graph for a Fresh update
)

// Token identifies one logical update pass. A node recomputes at most once
// per token.
//
// Fresh asks the graph to start a new pass with a token nobody has seen.
// Frame(n) names the pass explicitly; calling Update twice with the same
// frame token recomputes once.
type Token struct {
	kind tokenKind
	id   uint64
}

// Fresh returns the token for a manual, one-off update pass.
func Fresh() Token { return Token{} }

// Frame returns the token for logical frame id.
func Frame(id uint64) Token { return Token{kind: tokenFrame, id: id} }

// IsFresh reports whether t still has to be resolved into a concrete pass.
func (t Token) IsFresh() bool { return t.kind == tokenFresh }

// ID returns the frame number for Frame tokens and the synthesized pass
// number for resolved Fresh tokens. It is 0 for an unresolved Fresh token.
func (t Token) ID() uint64 { return t.id }

func (t Token) String() string {
	switch t.kind {
	case tokenFresh:
		return "fresh"
	case tokenFrame:
		return fmt.Sprintf("frame(%d)", t.id)
	default:
		return fmt.Sprintf("manual(%d)", t.id)
	}
}
