package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RandomColor picks a soft display color: each channel in [60,240) keeps
// the luminance spread away from the extremes so either contrast color
// stays readable.
func RandomColor() string {
	r := 60 + rand.Intn(180)
	g := 60 + rand.Intn(180)
	b := 60 + rand.Intn(180)
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// ContrastColor returns "#000" or "#fff" for text over the given background
// color, which may be "#rrggbb" hex or "rgb(r,g,b)". Unparsable input gets
// black.
func ContrastColor(bg string) string {
	r, g, b, ok := parseColor(bg)
	if !ok {
		return "#000"
	}
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luma > 150 {
		return "#000"
	}
	return "#fff"
}

// Hex converts a stored color to "#rrggbb" for terminal styling. Colors
// already in hex pass through; unparsable input gets a neutral gray.
func Hex(color string) string {
	r, g, b, ok := parseColor(color)
	if !ok {
		return "#888888"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func parseColor(c string) (r, g, b int, ok bool) {
	c = strings.TrimSpace(c)
	switch {
	case strings.HasPrefix(c, "rgb"):
		lp := strings.IndexByte(c, '(')
		rp := strings.IndexByte(c, ')')
		if lp < 0 || rp < lp {
			return 0, 0, 0, false
		}
		parts := strings.Split(c[lp+1:rp], ",")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		vals := make([]int, 3)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return 0, 0, 0, false
			}
			vals[i] = n
		}
		return vals[0], vals[1], vals[2], true
	case strings.HasPrefix(c, "#") && len(c) == 7:
		n, err := strconv.ParseUint(c[1:], 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		return int(n >> 16 & 255), int(n >> 8 & 255), int(n & 255), true
	default:
		return 0, 0, 0, false
	}
}
