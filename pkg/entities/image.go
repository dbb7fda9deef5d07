package entities

import "strings"

// Image is a piece of text art drawn by the terminal
type Image struct {
	Name  string
	Lines []string
}

// Width returns the widest line in runes
func (i Image) Width() int {
	width := 0
	for _, l := range i.Lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	return width
}

// String joins the lines for printing
func (i Image) String() string {
	return strings.Join(i.Lines, "\n")
}
