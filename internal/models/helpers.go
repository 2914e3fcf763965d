package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

func GenerateSessionID() string {
	return fmt.Sprintf("sess_%s", uuid.New().String())
}

// TruncatePoints drops the fractional part, toward zero.
func TruncatePoints(points float64) int64 {
	return int64(math.Trunc(points))
}

// FormatPoints truncates and groups thousands: 10200.7 -> "10,200".
func FormatPoints(points float64) string {
	n := TruncatePoints(points)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}

// FormatDelta renders a signed point change: +200 / -1,000.
func FormatDelta(delta int64) string {
	if delta >= 0 {
		return "+" + FormatPoints(float64(delta))
	}
	return FormatPoints(float64(delta))
}

func WelcomeMessage(name string, isNewUser bool) string {
	if isNewUser {
		return fmt.Sprintf("Welcome to the challenge! You start with %sp.", FormatPoints(StartingPoints))
	}
	return fmt.Sprintf("Welcome back, '%s'!", name)
}
