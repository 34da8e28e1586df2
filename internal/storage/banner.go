package storage

import (
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

const (
	bannerPaddingH = 5
	bannerPaddingV = 1
)

// Banner renders text centered inside a box of hash characters, measuring
// width in runes so multi-byte glyphs keep the box edges aligned. The output
// contains no timestamps so regenerated files stay byte-stable.
func Banner(text string) string {
	lines := strings.Split(text, "\n")
	maxLen := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	inner := maxLen + 2*bannerPaddingH
	border := strings.Repeat("#", inner+2)
	empty := "#" + strings.Repeat(" ", inner) + "#"

	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')
	for i := 0; i < bannerPaddingV; i++ {
		b.WriteString(empty)
		b.WriteByte('\n')
	}
	for _, line := range lines {
		pad := maxLen - utf8.RuneCountInString(line)
		left := pad / 2
		right := pad - left
		b.WriteByte('#')
		b.WriteString(strings.Repeat(" ", bannerPaddingH+left))
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", right+bannerPaddingH))
		b.WriteByte('#')
		b.WriteByte('\n')
	}
	for i := 0; i < bannerPaddingV; i++ {
		b.WriteString(empty)
		b.WriteByte('\n')
	}
	b.WriteString(border)
	b.WriteByte('\n')
	return b.String()
}

// ItemsBanner is the header written to the included items file.
func ItemsBanner() string {
	return Banner("Giantt Items\n" +
		"This file contains all include Giantt items in topological\n" +
		"order according to the REQUIRES (" + types.RelationRequires.Symbol() + ") relation.\n" +
		"You can use #include directives at the top of this file\n" +
		"to include other Giantt item files.\n" +
		"Edit this file manually at your own risk.")
}

// OccludedItemsBanner is the header written to the occluded items file.
func OccludedItemsBanner() string {
	return Banner("Giantt Occluded Items\n" +
		"This file contains all occluded Giantt items in topological\n" +
		"order according to the REQUIRES (" + types.RelationRequires.Symbol() + ") relation.\n" +
		"Edit this file manually at your own risk.")
}
