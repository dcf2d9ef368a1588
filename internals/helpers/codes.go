package helper

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// ErrCodeTaken is returned by a create callback when its code collides.
var ErrCodeTaken = errors.New("code already taken")

// NewCode returns prefix + yymmddHHMMSS + 4 random digits.
func NewCode(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, now.UTC().Format("060102150405"), rand.IntN(10000))
}

// WithGeneratedCode calls create with fresh codes until it stops reporting
// ErrCodeTaken, at most attempts times.
func WithGeneratedCode(what string, attempts int, gen func(time.Time) string, create func(code string) error) error {
	for i := 1; i <= attempts; i++ {
		code := gen(time.Now())
		err := create(code)
		if !errors.Is(err, ErrCodeTaken) {
			return err
		}
		zap.L().Warn("generated code collided, retrying",
			zap.String("kind", what), zap.String("code", code), zap.Int("attempt", i))
	}
	return ErrInternal(fmt.Sprintf("failed to generate unique %s", what), nil)
}
