package cs

// Type 1 charstrings are usually encrypted, and prefixed by lenIV random
// bytes. lenIV defaults to 4; a font with lenIV = -1 stores its charstrings
// in plain text.

// DefaultLenIV is the number of random leading bytes of encrypted Type 1
// charstrings, if the font does not say otherwise.
const DefaultLenIV = 4

const (
	charStringKey = 4330
	cryptC1       = 52845
	cryptC2       = 22719
)

// Decrypt decrypts a Type 1 charstring and drops its lenIV leading bytes.
// For lenIV < 0, data is returned unchanged.
func Decrypt(data []byte, lenIV int) []byte {
	if lenIV < 0 {
		return data
	}
	r := uint16(charStringKey)
	plain := make([]byte, 0, max(len(data)-lenIV, 0))
	for i, b := range data {
		if i >= lenIV {
			plain = append(plain, b^byte(r>>8))
		}
		r = (uint16(b)+r)*cryptC1 + cryptC2
	}
	return plain
}

// Encrypt is the inverse of Decrypt, with zero bytes as the lenIV prefix. It
// is provided for building test programs.
func Encrypt(plain []byte, lenIV int) []byte {
	if lenIV < 0 {
		return plain
	}
	r := uint16(charStringKey)
	data := make([]byte, 0, len(plain)+lenIV)
	for i := 0; i < lenIV+len(plain); i++ {
		var p byte
		if i >= lenIV {
			p = plain[i-lenIV]
		}
		c := p ^ byte(r>>8)
		data = append(data, c)
		r = (uint16(c)+r)*cryptC1 + cryptC2
	}
	return data
}
