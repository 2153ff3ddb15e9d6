package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when a quantity has no leading integer
var ErrNotANumber = errors.New("quantity is not a number")

// ErrQuantityOutOfRange is returned when a quantity does not fit in 32 bits
var ErrQuantityOutOfRange = errors.New("quantity out of range")

// ParseQuantity coerces user input to an integer the way a numeric form field does:
// surrounding whitespace is ignored, an optional sign and the leading digits are read,
// and anything after them ("3.7", "4 units") is dropped.
func ParseQuantity(input string) (int, error) {
	s := strings.TrimSpace(input)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}

	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrQuantityOutOfRange, input)
	}
	return int(n), nil
}

// DecodeQuantity accepts a JSON number or a JSON string and coerces it with ParseQuantity
func DecodeQuantity(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: missing", ErrNotANumber)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseQuantity(s)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotANumber, string(raw))
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s", ErrQuantityOutOfRange, string(raw))
	}
	return int(math.Trunc(f)), nil
}
