package ustr

// The justification functions report changed=false when width does not
// exceed len(s); the caller then hands back the original value.

func padded(s []rune, width int, fill rune, offset int) ([]rune, error) {
	if width > MaxSize {
		return nil, &OverflowError{Op: "justify", Size: width}
	}
	result := make([]rune, width)
	for i := range result {
		result[i] = fill
	}
	copy(result[offset:], s)
	return result, nil
}

// Center pads s on both sides. The left pad is padding/2 plus one when both
// padding and width are odd, reproducing the historical tie-break exactly.
func Center(s []rune, width int, fill rune) ([]rune, bool, error) {
	padding := width - len(s)
	if padding <= 0 {
		return s, false, nil
	}
	leftpad := padding/2 + (padding & width & 1)
	out, err := padded(s, width, fill, leftpad)
	return out, err == nil, err
}

func LJust(s []rune, width int, fill rune) ([]rune, bool, error) {
	if width-len(s) <= 0 {
		return s, false, nil
	}
	out, err := padded(s, width, fill, 0)
	return out, err == nil, err
}

func RJust(s []rune, width int, fill rune) ([]rune, bool, error) {
	padding := width - len(s)
	if padding <= 0 {
		return s, false, nil
	}
	out, err := padded(s, width, fill, padding)
	return out, err == nil, err
}

// Zfill left-pads s with zeros, keeping a leading '+' or '-' in front
func Zfill(s []rune, width int) ([]rune, bool, error) {
	if len(s) == 0 {
		if width <= 0 {
			return s, true, nil
		}
		out, err := padded(nil, width, '0', 0)
		return out, err == nil, err
	}
	padding := width - len(s)
	if padding <= 0 {
		return s, false, nil
	}
	out, err := padded(s, width, '0', padding)
	if err != nil {
		return nil, false, err
	}
	if s[0] == '+' || s[0] == '-' {
		out[0] = s[0]
		out[padding] = '0'
	}
	return out, true, nil
}
