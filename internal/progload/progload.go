/*
Package progload loads glyph programs from text fixtures.

A fixture describes the charstrings and subroutines of one font, one entry
per line, with binary data written in hex:

	# comment
	format 1                  charstring format, 1 or 2
	name Times-Roman          font name
	nominal 500               Type 2 nominalWidthX
	default 250               Type 2 defaultWidthX
	encrypted 4               Type 1 encryption with lenIV = 4
	subr 8b8b150b             local subroutine, in order of appearance
	gsubr 8b8b150b            global subroutine, in order of appearance
	glyph A 8bf7f80d0e        charstring of glyph "A"

Fixtures are used by tests and by the command line tools.
*/
package progload

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
)

// Load loads a glyph program fixture from a file.
func Load(path string) (*charstring.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads a glyph program fixture.
func Parse(r io.Reader) (*charstring.Program, error) {
	p := &charstring.Program{
		Format:      cs.Type2,
		CharStrings: make(map[string][]byte),
		LenIV:       -1,
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseLine(p, strings.Fields(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseLine(p *charstring.Program, fields []string) (err error) {
	key, args := fields[0], fields[1:]
	need := 1
	if key == "glyph" {
		need = 2
	}
	if len(args) != need {
		return fmt.Errorf("%s: expected %d arguments, have %d", key, need, len(args))
	}
	switch key {
	case "format":
		switch args[0] {
		case "1":
			p.Format = cs.Type1
		case "2":
			p.Format = cs.Type2
		default:
			return fmt.Errorf("unknown charstring format %q", args[0])
		}
	case "name":
		p.Name = args[0]
	case "nominal":
		p.NominalWidthX, err = parseFloat(args[0])
	case "default":
		p.DefaultWidthX, err = parseFloat(args[0])
	case "encrypted":
		p.Encrypted = true
		p.LenIV, err = strconv.Atoi(args[0])
	case "subr", "gsubr":
		var code []byte
		if code, err = hex.DecodeString(args[0]); err != nil {
			return err
		}
		if key == "subr" {
			p.Subrs = append(p.Subrs, code)
		} else {
			p.GlobalSubrs = append(p.GlobalSubrs, code)
		}
	case "glyph":
		var code []byte
		if code, err = hex.DecodeString(args[1]); err != nil {
			return err
		}
		p.CharStrings[args[0]] = code
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return err
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}
