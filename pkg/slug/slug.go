// Package slug turns display names into URL path segments.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Latin letters with diacritics commonly found in brand and category names.
var folder = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ğ", "g", "ş", "s",
	"&", " and ",
)

// Generate lowercases name, folds accented letters to ASCII and joins the
// remaining alphanumeric runs with single hyphens.
//
//	"Ethnic Wear"    -> "ethnic-wear"
//	"Tops & Tees"    -> "tops-and-tees"
//	"  Café Décor! " -> "cafe-decor"
func Generate(name string) string {
	s := folder.Replace(strings.ToLower(strings.TrimSpace(name)))
	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}
