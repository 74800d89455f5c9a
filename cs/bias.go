package cs

// Bias returns the subroutine bias for a Type 2 subroutine table with
// n entries. Charstrings store subroutine numbers biased, so that the most
// frequently called subroutines get the shortest operand encoding.
func Bias(n int) int {
	if n < 1240 {
		return 107
	} else if n < 33900 {
		return 1131
	}
	return 32768
}

// Resolve returns the table index addressed by a Type 2 call operand for a
// subroutine table with n entries.
func Resolve(operand, n int) int {
	return operand + Bias(n)
}

// SubrIndex returns the table index addressed by a call operand for a
// subroutine table with n entries. Type 1 subroutine numbers are not biased.
// The second return value is false if the index is out of range.
func (f Format) SubrIndex(operand, n int) (int, bool) {
	inx := operand
	if f == Type2 {
		inx = Resolve(operand, n)
	}
	if inx < 0 || inx >= n {
		return inx, false
	}
	return inx, true
}
