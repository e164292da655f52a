package gfx

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Choices names the values of an enumerated parameter; the index of a name
// is its value. Matching ignores case, spaces, dashes and underscores.
type Choices[T ~int] []string

// Name returns the name of v, or a numeric placeholder when v is out of range.
func (c Choices[T]) Name(v T) string {
	if int(v) < 0 || int(v) >= len(c) {
		return "choice(" + strconv.Itoa(int(v)) + ")"
	}
	return c[v]
}

// Valid reports whether v names a known choice.
func (c Choices[T]) Valid(v T) bool {
	return int(v) >= 0 && int(v) < len(c)
}

// Check returns ErrUnknownChoice when v is out of range.
func (c Choices[T]) Check(param string, v T) error {
	if !c.Valid(v) {
		return fmt.Errorf("%w: %s = %d", ErrUnknownChoice, param, int(v))
	}
	return nil
}

// Parse looks up a choice by name or by its integer value.
func (c Choices[T]) Parse(s string) (T, error) {
	key := choiceKey(s)
	for i, name := range c {
		if choiceKey(name) == key {
			return T(i), nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 0 && n < len(c) {
		return T(n), nil
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownChoice, s, strings.Join(c, ", "))
}

// Unmarshal decodes a YAML scalar into *v.
func (c Choices[T]) Unmarshal(node *yaml.Node, v *T) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := c.Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

func choiceKey(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s))
}
