package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "t shirts with space", in: "T Shirts", want: TShirtsLabel},
		{name: "tshirts joined", in: "tshirts", want: TShirtsLabel},
		{name: "upper case hyphenated", in: "T-SHIRTS", want: TShirtsLabel},
		{name: "singular tshirt", in: "t-shirt", want: TShirtsLabel},
		{name: "underscore separated", in: "t_shirts", want: TShirtsLabel},
		{name: "alias maps to slug", in: "Footwear", want: "shoes"},
		{name: "sweatshirt maps to hoodies", in: "SWEATSHIRT", want: "hoodies"},
		{name: "internal whitespace collapsed", in: "  t   shirts  ", want: TShirtsLabel},
		{name: "already canonical", in: "sneakers", want: "sneakers"},
		{name: "unknown passes through trimmed", in: "  Vyshyvanka  ", want: "Vyshyvanka"},
		{name: "empty input", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.in))
		})
	}
}

func TestCategory_VariantsAgree(t *testing.T) {
	// The property the storefront relies on: every spelling lands on the
	// same canonical label so the facet never splits.
	variants := []string{"T Shirts", "tshirts", "T-SHIRTS", "t-shirts", "T_shirts"}
	for _, v := range variants {
		assert.Equal(t, TShirtsLabel, Category(v), "variant %q", v)
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "grey normalizes to gray", in: "Grey", want: "gray"},
		{name: "navy folds into blue", in: "NAVY", want: "blue"},
		{name: "canonical unchanged", in: "black", want: "black"},
		{name: "multi variants", in: "Multi-Color", want: "multicolor"},
		{name: "unknown passes through trimmed", in: " burgundy ", want: "burgundy"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Color(tt.in))
		})
	}
}
