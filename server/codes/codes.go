package codes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 10000

	First Code = "A00000"
	Last  Code = "Z99999"

	maxNumber = 99999
)

var codeRegex = regexp.MustCompile(`^[A-Z]\d{5}$`)

// Code is a six character identifier made of one uppercase letter followed by five digits.
type Code string

func (c Code) String() string {
	return string(c)
}

func (c Code) Letter() byte {
	return c[0]
}

func (c Code) Number() int {
	n, _ := strconv.Atoi(string(c[1:]))
	return n
}

// FormatError is returned when a starting code does not match the letter + 5 digit pattern.
type FormatError struct {
	Code string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid code format %q: expected one uppercase letter followed by five digits", e.Code)
}

// RangeError is returned when the requested quantity is outside [MinQuantity, MaxQuantity].
type RangeError struct {
	Quantity int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("quantity %d out of range: must be between %d and %d", e.Quantity, MinQuantity, MaxQuantity)
}

func Validate(s string) bool {
	return codeRegex.MatchString(s)
}

// Normalize trims surrounding whitespace and uppercases user input. It does not validate.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func Parse(s string) (Code, error) {
	if !Validate(s) {
		return "", &FormatError{Code: s}
	}
	return Code(s), nil
}

// Increment returns the code following c. The letter advances when the number rolls over
// and Z99999 saturates. Invalid input is returned unchanged.
func Increment(c Code) Code {
	if !Validate(string(c)) {
		return c
	}

	if number := c.Number(); number < maxNumber {
		return Code(fmt.Sprintf("%c%05d", c.Letter(), number+1))
	}

	if c.Letter() == 'Z' {
		return c
	}
	return Code(string(c.Letter()+1) + "00000")
}

// Remaining returns how many distinct codes exist from c up to and including Last.
func Remaining(c Code) int {
	if !Validate(string(c)) {
		return 0
	}
	return int('Z'-c.Letter())*(maxNumber+1) + (maxNumber - c.Number()) + 1
}

// Generate returns quantity codes starting at start, each one the Increment of the previous.
// Once Last is reached the remaining entries repeat it.
func Generate(start string, quantity int) ([]Code, error) {
	current, err := Parse(start)
	if err != nil {
		return nil, err
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, &RangeError{Quantity: quantity}
	}

	codes := make([]Code, 0, quantity)
	for range quantity {
		codes = append(codes, current)
		current = Increment(current)
	}
	return codes, nil
}

func Strings(codes []Code) []string {
	s := make([]string, len(codes))
	for i, c := range codes {
		s[i] = string(c)
	}
	return s
}
