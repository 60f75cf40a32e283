package round

import (
	"fmt"
	"strconv"
	"strings"
)

// Confidence is the player's stated probability that their chosen answer is
// correct. The zero value is Unset, which is never a valid submission.
type Confidence int

const (
	Unset  Confidence = 0
	Conf55 Confidence = 55
	Conf65 Confidence = 65
	Conf75 Confidence = 75
	Conf85 Confidence = 85
	Conf95 Confidence = 95
)

var levels = [...]Confidence{Conf55, Conf65, Conf75, Conf85, Conf95}

// Levels returns the allowed confidence levels in ascending order.
func Levels() []Confidence {
	out := make([]Confidence, len(levels))
	copy(out, levels[:])
	return out
}

// Valid reports whether c is one of the allowed levels.
func (c Confidence) Valid() bool {
	for _, l := range levels {
		if c == l {
			return true
		}
	}
	return false
}

// IsSet reports whether a level has been chosen.
func (c Confidence) IsSet() bool {
	return c != Unset
}

// Percent returns the level as an integer percentage.
func (c Confidence) Percent() int {
	return int(c)
}

// Fraction returns the level as a probability in [0, 1].
func (c Confidence) Fraction() float64 {
	return float64(c) / 100
}

func (c Confidence) String() string {
	if c == Unset {
		return "unset"
	}
	return fmt.Sprintf("%d%%", int(c))
}

// Index returns the position of c in Levels, or -1.
func (c Confidence) Index() int {
	for i, l := range levels {
		if c == l {
			return i
		}
	}
	return -1
}

// ParseConfidence parses "75", "75%" or "0.75". The result is always a valid
// level; anything else is an error, never a default.
func ParseConfidence(s string) (Confidence, error) {
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if v == "" {
		return Unset, fmt.Errorf("confidence is empty")
	}

	var pct int
	if strings.Contains(v, ".") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Unset, fmt.Errorf("parse confidence %q: %w", s, err)
		}
		if f <= 1 {
			f *= 100
		}
		pct = int(f + 0.5)
	} else {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Unset, fmt.Errorf("parse confidence %q: %w", s, err)
		}
		pct = n
	}

	c := Confidence(pct)
	if !c.Valid() {
		return Unset, fmt.Errorf("confidence %q is not one of 55, 65, 75, 85, 95", s)
	}
	return c, nil
}
