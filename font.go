package charstring

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

// tracer writes to trace with key 'font.charstring'
func tracer() tracing.Trace {
	return tracing.Select("font.charstring")
}

// Errors returned by Program.
var (
	// ErrNoGlyph is returned for glyph names without a charstring.
	ErrNoGlyph = errors.New("no such glyph")
	// ErrComposeDepth is returned if accented characters are composed of
	// components nested too deeply, which is almost always caused by
	// components referring to each other.
	ErrComposeDepth = errors.New("glyph components nested too deeply")
)

// DefaultMaxComposeDepth is the nesting limit of glyph components, if a
// Program does not set one.
const DefaultMaxComposeDepth = 4

// Program holds the glyph programs of a font.
//
// Fields must not be changed after the first glyph has been rendered. A
// Program is safe for concurrent use.
type Program struct {
	Name            string
	Format          cs.Format
	CharStrings     map[string][]byte // charstrings by glyph name
	Subrs           [][]byte          // local subroutines (Type 1: the Subrs array)
	GlobalSubrs     [][]byte          // Type 2 global subroutines
	NominalWidthX   float32           // Type 2
	DefaultWidthX   float32           // Type 2
	Encrypted       bool              // Type 1 charstrings and subroutines are encrypted
	LenIV           int               // leading random bytes of encrypted charstrings; 0 means cs.DefaultLenIV
	MaxComposeDepth int               // nesting limit of glyph components; 0 means default

	once  sync.Once
	subrs [][]byte // plain local subroutines
	cache sync.Map // glyph name → cs.Glyph
}

// Glyph renders the glyph with the given name. Rendered glyphs are cached.
//
// An error is returned if the program has no glyph of that name or if its
// charstring cannot be decoded. Issues with the outline are reported in the
// glyph's Issues.
func (p *Program) Glyph(name string) (cs.Glyph, error) {
	return p.glyph(name, 0)
}

// LookupGlyph implements cs.GlyphLookup.
func (p *Program) LookupGlyph(name string) (cs.Glyph, error) {
	return p.Glyph(name)
}

// Names returns the glyph names of p, sorted.
func (p *Program) Names() []string {
	return slices.Sorted(maps.Keys(p.CharStrings))
}

// Decode returns the flattened glyph program of a glyph.
func (p *Program) Decode(name string, diag *cs.Diagnostics) (cs.Instructions, error) {
	code, ok := p.CharStrings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyph, name)
	}
	dec := cs.Decoder{Format: p.Format, Diag: diag}
	seq, err := dec.Decode(p.plain(code), p.GlobalSubrs, p.PlainSubrs())
	if err != nil {
		return seq, fmt.Errorf("glyph %q: %w", name, err)
	}
	return seq, nil
}

// glyph renders a glyph as a component at nesting level depth. A composite
// glyph inherits the issues of its components. Only top-level glyphs are
// cached, as the result of a nested composition may be truncated by the
// depth limit.
func (p *Program) glyph(name string, depth int) (cs.Glyph, error) {
	if g, ok := p.cache.Load(name); ok {
		return g.(cs.Glyph), nil
	}
	if depth > p.maxComposeDepth() {
		return cs.Glyph{}, fmt.Errorf("%w: %q at depth %d", ErrComposeDepth, name, depth)
	}
	diag := &cs.Diagnostics{}
	seq, err := p.Decode(name, diag)
	if err != nil {
		return cs.Glyph{Name: name, Issues: diag.Issues()}, err
	}
	ip := cs.Interpreter{
		Format:        p.Format,
		NominalWidthX: p.NominalWidthX,
		DefaultWidthX: p.DefaultWidthX,
		GlyphName:     name,
		Diag:          diag,
	}
	var inherited []cs.Diagnostic // issues of components
	components := cs.GlyphLookupFunc(func(component string) (cs.Glyph, error) {
		c, err := p.glyph(component, depth+1)
		inherited = append(inherited, c.Issues...)
		return c, err
	})
	g := ip.Render(seq, components)
	g.Issues = append(diag.Issues(), inherited...)
	if depth == 0 {
		p.cache.Store(name, g)
	}
	tracer().Debugf("glyph %s/%s: %d issues", p.Name, name, len(g.Issues))
	return g, nil
}

// RenderAll renders every glyph of p, using up to workers goroutines
// (workers ≤ 0 means no limit). It stops at the first glyph which fails to
// decode and returns its error.
func (p *Program) RenderAll(ctx context.Context, workers int) (map[string]cs.Glyph, error) {
	names := p.Names()
	glyphs := make([]cs.Glyph, len(names))
	group, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}
	for i, name := range names {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := p.Glyph(name)
			glyphs[i] = g
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	result := make(map[string]cs.Glyph, len(names))
	for i, name := range names {
		result[name] = glyphs[i]
	}
	return result, nil
}

func (p *Program) maxComposeDepth() int {
	if p.MaxComposeDepth <= 0 {
		return DefaultMaxComposeDepth
	}
	return p.MaxComposeDepth
}

// plain returns a charstring decrypted, if necessary.
func (p *Program) plain(code []byte) []byte {
	if !p.Encrypted {
		return code
	}
	return cs.Decrypt(code, p.lenIV())
}

// lenIV returns the number of leading random bytes of encrypted charstrings.
// An unset LenIV means cs.DefaultLenIV, a negative one means the charstrings
// carry no random bytes and are not encrypted.
func (p *Program) lenIV() int {
	if p.LenIV == 0 {
		return cs.DefaultLenIV
	}
	return p.LenIV
}

// PlainSubrs returns the local subroutines of p, decrypted if necessary.
// They are decrypted once and must not be modified.
func (p *Program) PlainSubrs() [][]byte {
	p.once.Do(func() {
		if !p.Encrypted {
			p.subrs = p.Subrs
			return
		}
		p.subrs = make([][]byte, len(p.Subrs))
		for i, subr := range p.Subrs {
			p.subrs[i] = cs.Decrypt(subr, p.lenIV())
		}
	})
	return p.subrs
}
