package derive

import "strconv"

// ContrastColor picks black or white text for a hex background color.
// Named color tokens (anything that is not #RRGGBB) get black text.
func ContrastColor(background string) string {
	if len(background) != 7 || background[0] != '#' {
		return "#000000"
	}
	r, err1 := strconv.ParseUint(background[1:3], 16, 8)
	g, err2 := strconv.ParseUint(background[3:5], 16, 8)
	b, err3 := strconv.ParseUint(background[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return "#000000"
	}
	// Perceived luminance, 0..255.
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luma > 150 {
		return "#000000"
	}
	return "#FFFFFF"
}
