package cs

import "fmt"

// seac composes an accented character from a base glyph and an accent glyph,
// both addressed by their StandardEncoding codes. The base glyph is placed
// as is, the accent is shifted by (adx − asb) relative to the base's origin.
// An accent naming the glyph itself is skipped. Cycles through the base
// glyph are left to the GlyphLookup, which bounds the nesting of components.
func (ip *Interpreter) seac(st *state, cmd *Command, asb, adx, ady float32, bchar, achar int) {
	base, accent := StandardEncodingName(bchar), StandardEncodingName(achar)
	tracer().Debugf("seac %s + %s at (%g,%g)", base, accent, adx-asb, ady)
	if g, ok := ip.component(st, cmd, base, "base"); ok {
		st.path.append(g.Path)
	}
	g, ok := ip.component(st, cmd, accent, "accent")
	if !ok {
		return
	}
	dx := st.sideBearing.X + adx - asb
	dy := st.sideBearing.Y + ady
	st.path.append(g.Path.Translate(dx, dy))
}

func (ip *Interpreter) component(st *state, cmd *Command, name, role string) (Glyph, bool) {
	if name == ".notdef" {
		st.report(StageCompose, cmd, fmt.Sprintf("%s character is not in StandardEncoding", role), SeverityMajor)
		return Glyph{}, false
	}
	if role == "accent" && ip.GlyphName != "" && name == ip.GlyphName {
		st.report(StageCompose, cmd, fmt.Sprintf("%s glyph %q refers to itself", role, name), SeverityMajor)
		return Glyph{}, false
	}
	g, err := st.lookup.LookupGlyph(name)
	if err != nil {
		st.report(StageCompose, cmd, fmt.Sprintf("%s glyph %q: %v", role, name, err), SeverityMajor)
		return Glyph{}, false
	}
	return g, true
}
