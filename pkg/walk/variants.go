package walk

import "strconv"

var (
	int8Variants  = rangeVariants(-128, 127)
	uint8Variants = rangeVariants(0, 255)
	boolVariants  = []string{"true", "false"}
	yesNoVariants = []string{"yes", "no"}
)

func rangeVariants(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

func intLabel(bits int) string {
	if bits == 0 {
		return "int"
	}
	return "int" + strconv.Itoa(bits)
}

func uintLabel(bits int) string {
	if bits == 0 {
		return "uint"
	}
	return "uint" + strconv.Itoa(bits)
}

func floatLabel(bits int) string {
	return "float" + strconv.Itoa(bits)
}

// parseBits maps a label width to the strconv bit size; 0 means the platform int.
func parseBits(bits int) int {
	if bits == 0 {
		return strconv.IntSize
	}
	return bits
}
