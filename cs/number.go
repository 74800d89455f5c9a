package cs

// Numbers in charstrings are encoded in 1 to 5 bytes. Both formats share the
// encodings for bytes 32–254. They differ for byte 255 (Type 1: 32-bit
// integer, Type 2: 16.16 fixed point) and for byte 28, which is a 16-bit
// integer in Type 2 and not defined in Type 1.

// isNumber reports whether b starts an operand in format f.
func (f Format) isNumber(b byte) bool {
	return b >= 32 || (b == 28 && f == Type2)
}

// decodeNumber decodes the operand starting at code[pos]. It returns the value
// and the number of bytes consumed.
func (f Format) decodeNumber(code codeSegm, pos int) (float32, int, error) {
	b0, err := code.u8(pos)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case b0 >= 32 && b0 <= 246:
		return float32(int(b0) - 139), 1, nil
	case b0 >= 247 && b0 <= 250:
		b1, err := code.u8(pos + 1)
		if err != nil {
			return 0, 1, err
		}
		return float32((int(b0)-247)*256 + int(b1) + 108), 2, nil
	case b0 >= 251 && b0 <= 254:
		b1, err := code.u8(pos + 1)
		if err != nil {
			return 0, 1, err
		}
		return float32(-(int(b0)-251)*256 - int(b1) - 108), 2, nil
	case b0 == 28:
		v, err := code.i16(pos + 1)
		if err != nil {
			return 0, 1, err
		}
		return float32(v), 3, nil
	case b0 == 255 && f == Type2:
		v, err := code.i16(pos + 1)
		if err != nil {
			return 0, 1, err
		}
		frac, err := code.u16(pos + 3)
		if err != nil {
			return 0, 1, err
		}
		return float32(float64(v) + float64(frac)/65535), 5, nil
	case b0 == 255:
		v, err := code.i32(pos + 1)
		if err != nil {
			return 0, 1, err
		}
		return float32(v), 5, nil
	}
	return 0, 1, errNotANumber
}
