package helper

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reDomainInvalid = regexp.MustCompile(`[^a-z0-9.-]+`)
	reFileInvalid   = regexp.MustCompile(`[^a-z0-9._-]+`)
	reHyphen        = regexp.MustCompile(`-+`)
	reDots          = regexp.MustCompile(`\.+`)
)

// stripMarks lowercases s and removes diacritics (é -> e).
func stripMarks(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDomain turns user input like "https://Sekolah-Ku.id/" into
// "sekolah-ku.id". Returns "" when nothing usable is left.
func NormalizeDomain(s string) string {
	s = stripMarks(s)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = reDomainInvalid.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = reDots.ReplaceAllString(s, ".")
	return strings.Trim(s, "-.")
}

// SafeFilename keeps the extension and reduces the rest to [a-z0-9._-].
func SafeFilename(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(name))
	base := stripMarks(strings.TrimSuffix(name, filepath.Ext(name)))
	base = reFileInvalid.ReplaceAllString(base, "-")
	base = reHyphen.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "file"
	}
	if utf8.RuneCountInString(base) > maxLen {
		base = strings.Trim(string([]rune(base)[:maxLen]), "-.")
	}
	return base + reFileInvalid.ReplaceAllString(ext, "")
}
