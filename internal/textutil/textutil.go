// Package textutil holds the string transforms shared by the extractors:
// title/description cleanup, transliterated slugs and the stable URL hash
// used for audio deduplication.
package textutil

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// descriptionTrash lists the known content-rating disclaimers the site
// appends to program descriptions. Removed as exact substrings, no fuzzy
// matching.
var descriptionTrash = []string{
	"Программа предназначена для лиц старше шестнадцати лет.",
	"Программа предназначена для лиц старше 16 лет.",
	"Программа предназначена для слушателей старше 16 лет.",
	"Программа предназначена для слушателей старше 16 лет",
	"Предназначена для слушателей старше 16 лет.",
	"Предназначена для лиц старше шестнадцати лет.",
	"Программа предназначена для слушателей старше шестнадцати лет.",
}

// CleanTitle strips the outer guillemet quotes the site wraps titles in,
// then drops age-rating annotations. When the quotes are unbalanced (an
// unterminated outer quote) only the leading one is removed, so a nested
// closing quote survives.
func CleanTitle(raw string) string {
	if !strings.HasPrefix(raw, "«") || !strings.HasSuffix(raw, "»") {
		return raw
	}

	runes := []rune(raw)
	unbalanced := strings.Count(raw, "«") > strings.Count(raw, "»")

	var title string
	if unbalanced {
		title = string(runes[1:])
	} else {
		title = string(runes[1 : len(runes)-1])
	}

	title = strings.ReplaceAll(title, " (16+)", "")
	title = strings.ReplaceAll(title, " (0+)", "")

	return title
}

// CleanDescription removes the known disclaimer phrases and trims whitespace.
func CleanDescription(raw string) string {
	cleaned := raw
	for _, phrase := range descriptionTrash {
		cleaned = strings.ReplaceAll(cleaned, phrase, "")
	}
	return strings.TrimSpace(cleaned)
}

// ruToLatin is a phonetic cyrillic-to-latin mapping. Hard and soft signs map
// to apostrophes which the slug filter drops.
var ruToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "'", 'ы': "y", 'ь': "'", 'э': "e", 'ю': "ju", 'я': "ja",
}

// Slugify turns a display title into a URL and filename safe identifier:
// transliterate, lowercase, keep alphanumerics, map spaces to underscores,
// drop everything else.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if lat, ok := ruToLatin[r]; ok {
			for _, lr := range lat {
				if unicode.IsLetter(lr) || unicode.IsDigit(lr) {
					b.WriteRune(lr)
				}
			}
			continue
		}
		switch {
		case r == ' ':
			b.WriteRune('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StringHash returns the hex md5 of s. Used as the cache key for audio file
// URLs and as the stable feed entry GUID; fast and collision-resistant
// enough for both, not security-sensitive.
func StringHash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
