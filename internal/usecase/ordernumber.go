package usecase

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// unbiasedLimit is the largest multiple of 36 that fits in a byte; bytes at or
// above it are redrawn.
const unbiasedLimit = 256 - 256%len(base36)

// NewOrderNumber builds ORD-<base36 millis>-<5 random base36>, upper-cased.
func NewOrderNumber(now time.Time) (string, error) {
	return orderNumber(now, rand.Reader)
}

func orderNumber(now time.Time, r io.Reader) (string, error) {
	suffix := make([]byte, 0, 5)
	raw := make([]byte, 8)
	for len(suffix) < cap(suffix) {
		if _, err := io.ReadFull(r, raw); err != nil {
			return "", fmt.Errorf("order number entropy: %w", err)
		}
		for _, b := range raw {
			if int(b) >= unbiasedLimit || len(suffix) == cap(suffix) {
				continue
			}
			suffix = append(suffix, base36[int(b)%len(base36)])
		}
	}
	n := "ORD-" + strconv.FormatInt(now.UnixMilli(), 36) + "-" + string(suffix)
	return strings.ToUpper(n), nil
}
