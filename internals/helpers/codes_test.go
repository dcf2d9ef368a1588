package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCode(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 59, 1, 0, time.UTC)
	assert.Regexp(t, `^STU251231235901\d{4}$`, NewCode("STU", at))
}

func TestWithGeneratedCode(t *testing.T) {
	gen := func(time.Time) string { return "X" }

	calls := 0
	err := WithGeneratedCode("thing", 5, gen, func(string) error {
		calls++
		if calls < 4 {
			return ErrCodeTaken
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, calls)

	calls = 0
	err = WithGeneratedCode("thing", 5, gen, func(string) error { calls++; return ErrCodeTaken })
	assert.True(t, IsKind(err, KindInternal))
	assert.Equal(t, "failed to generate unique thing", err.Error())
	assert.Equal(t, 5, calls)

	boom := errors.New("boom")
	err = WithGeneratedCode("thing", 5, gen, func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
}
