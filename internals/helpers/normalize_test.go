package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"https://Sekolah-Ku.id/":  "sekolah-ku.id",
		"  alpha.school.test ":    "alpha.school.test",
		"Café Academy.edu":        "cafe-academy.edu",
		"a..b":                    "a.b",
		"http://x.test/path?q=1":  "x.test",
		"---":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDomain(in), in)
	}
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "lesson-plan-1.pdf", SafeFilename("Lesson Plan (1).PDF", 0))
	assert.Equal(t, "passwd", SafeFilename("../../etc/passwd", 0))
	assert.Equal(t, "file.png", SafeFilename("???.png", 0))
	assert.Equal(t, "resume.docx", SafeFilename(`C:\tmp\Résumé.docx`, 0))
}
