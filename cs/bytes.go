package cs

import "errors"

// Reading bytes from a charstring's binary representation

var errBufferBounds = errors.New("charstring truncated: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// codeSegm is a segment of charstring code, read front to back.
type codeSegm []byte

// view returns n bytes at the given offset.
func (b codeSegm) view(offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u8 returns the byte at the given offset.
func (b codeSegm) u8(i int) (uint8, error) {
	buf, err := b.view(i, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// i16 returns the big-endian signed 16-bit value at the given offset.
func (b codeSegm) i16(i int) (int16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return int16(u16(buf)), nil
}

// u16 returns the big-endian unsigned 16-bit value at the given offset.
func (b codeSegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// i32 returns the big-endian signed 32-bit value at the given offset.
func (b codeSegm) i32(i int) (int32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return int32(u32(buf)), nil
}
