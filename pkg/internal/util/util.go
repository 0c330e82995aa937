package util

const hexDigits = "0123456789abcdef"

// AppendHexColor appends r, g and b as six lowercase, zero-padded hex digits.
func AppendHexColor(dst []byte, r, g, b uint8) []byte {
	return append(dst,
		hexDigits[r>>4], hexDigits[r&0x0f],
		hexDigits[g>>4], hexDigits[g&0x0f],
		hexDigits[b>>4], hexDigits[b&0x0f],
	)
}

// ParseHexByte decodes two hex digits (either case) into a byte.
func ParseHexByte(hi, lo byte) (byte, bool) {
	h, ok := fromHexChar(hi)
	if !ok {
		return 0, false
	}
	l, ok := fromHexChar(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
