package cs

import (
	"encoding/binary"
	"fmt"
)

// opcodes maps operator names to their byte encoding.
var opcodes = func() map[string][]byte {
	m := make(map[string][]byte)
	for b := 0; b < 32; b++ {
		if c := Lookup(byte(b)); !c.IsUnknown() {
			m[c.String()] = []byte{byte(b)}
		}
	}
	for b := 0; b < 256; b++ {
		if c := LookupEscape(escapeByte, byte(b)); !c.IsUnknown() {
			m[c.String()] = []byte{escapeByte, byte(b)}
		}
	}
	return m
}()

// program encodes a charstring from a list of tokens: ints and float64s are
// operands, strings are operator names, byte slices are copied verbatim.
func program(f Format, tokens ...any) []byte {
	var code []byte
	for _, token := range tokens {
		switch t := token.(type) {
		case int:
			code = append(code, encodeInt(f, t)...)
		case float64:
			v := int32(t * 65536)
			code = append(code, 255, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
		case string:
			op, ok := opcodes[t]
			if !ok {
				panic(fmt.Sprintf("no such operator: %s", t))
			}
			code = append(code, op...)
		case []byte:
			code = append(code, t...)
		default:
			panic(fmt.Sprintf("cannot encode %v", token))
		}
	}
	return code
}

func encodeInt(f Format, v int) []byte {
	switch {
	case v >= -107 && v <= 107:
		return []byte{byte(v + 139)}
	case v >= 108 && v <= 1131:
		v -= 108
		return []byte{byte(247 + v/256), byte(v % 256)}
	case v >= -1131 && v <= -108:
		v = -v - 108
		return []byte{byte(251 + v/256), byte(v % 256)}
	case f == Type2:
		return []byte{28, byte(v >> 8), byte(v)}
	}
	b := []byte{255, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(b[1:], uint32(int32(v)))
	return b
}

// instructions builds a decoded program directly: numbers become operands,
// strings commands of format f.
func instructions(tokens ...any) Instructions {
	var seq Instructions
	for _, token := range tokens {
		switch t := token.(type) {
		case int:
			seq = append(seq, Num(float32(t)))
		case float64:
			seq = append(seq, Num(float32(t)))
		case string:
			op, ok := opcodes[t]
			if !ok {
				panic(fmt.Sprintf("no such operator: %s", t))
			}
			if len(op) == 1 {
				seq = append(seq, Op(Lookup(op[0])))
			} else {
				seq = append(seq, Op(LookupEscape(op[0], op[1])))
			}
		default:
			panic(fmt.Sprintf("cannot encode %v", token))
		}
	}
	return seq
}
