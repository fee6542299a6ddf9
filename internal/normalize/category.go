package normalize

import (
	"strings"
)

// TShirtsLabel is the one canonical label that is not a plain lower-case
// slug; upstream spells it a dozen ways and the storefront shows it as-is.
const TShirtsLabel = "T-shirts"

// categoryAliases maps recognized category spellings (compared lower-case)
// to their canonical slug. Unknown categories are left as the caller sent
// them so they stay visible and filterable rather than being coerced into
// a default bucket.
var categoryAliases = map[string]string{
	"sneakers":    "sneakers",
	"sneaker":     "sneakers",
	"shoes":       "shoes",
	"shoe":        "shoes",
	"footwear":    "shoes",
	"hoodies":     "hoodies",
	"hoodie":      "hoodies",
	"sweatshirts": "hoodies",
	"sweatshirt":  "hoodies",
	"jackets":     "jackets",
	"jacket":      "jackets",
	"outerwear":   "jackets",
	"pants":       "pants",
	"trousers":    "pants",
	"shorts":      "shorts",
	"caps":        "caps",
	"cap":         "caps",
	"hats":        "caps",
	"hat":         "caps",
	"bags":        "bags",
	"bag":         "bags",
	"backpacks":   "bags",
	"backpack":    "bags",
	"accessories": "accessories",
	"accessory":   "accessories",
	"socks":       "socks",
}

// colorAliases maps recognized color spellings to the canonical vocabulary.
var colorAliases = map[string]string{
	"black":        "black",
	"white":        "white",
	"grey":         "gray",
	"gray":         "gray",
	"red":          "red",
	"blue":         "blue",
	"navy":         "blue",
	"green":        "green",
	"olive":        "green",
	"khaki":        "green",
	"yellow":       "yellow",
	"orange":       "orange",
	"brown":        "brown",
	"beige":        "beige",
	"cream":        "beige",
	"pink":         "pink",
	"purple":       "purple",
	"violet":       "purple",
	"multicolor":   "multicolor",
	"multicolour":  "multicolor",
	"multi-color":  "multicolor",
	"multi":        "multicolor",
}

// Category canonicalizes a free-text or slug category value. Input is
// trimmed, lower-cased and internal whitespace collapsed before lookup.
// "t shirts", "t-shirts", "T_Shirts" and friends all collapse to the
// T-shirts label. Unrecognized input is returned trimmed but otherwise
// unchanged.
func Category(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	key := strings.Join(strings.Fields(strings.ToLower(trimmed)), " ")

	if lettersOnly(key) == "tshirts" || lettersOnly(key) == "tshirt" {
		return TShirtsLabel
	}

	if slug, ok := categoryAliases[key]; ok {
		return slug
	}
	return trimmed
}

// Color canonicalizes a color value the same way Category does.
// Unrecognized colors pass through trimmed.
func Color(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	key := strings.Join(strings.Fields(strings.ToLower(trimmed)), " ")
	if canonical, ok := colorAliases[key]; ok {
		return canonical
	}
	return trimmed
}

// lettersOnly strips everything but letters, so separator choice never
// splits one category into several.
func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuiltinCategories is the fallback vocabulary used when the upstream
// taxonomy endpoint returns nothing.
var BuiltinCategories = []string{
	TShirtsLabel,
	"sneakers",
	"shoes",
	"hoodies",
	"jackets",
	"pants",
	"shorts",
	"caps",
	"bags",
	"accessories",
	"socks",
}
