package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AnswerValue is a raw submitted answer: a single option index or a list of
// indices. It is kept as submitted; normalization happens at match time.
type AnswerValue struct {
	indices []int
	list    bool
}

// Single builds a scalar answer.
func Single(index int) AnswerValue {
	return AnswerValue{indices: []int{index}}
}

// Multi builds a list answer.
func Multi(indices ...int) AnswerValue {
	return AnswerValue{indices: append([]int{}, indices...), list: true}
}

// Indices returns the submitted indices in submission order.
func (a AnswerValue) Indices() []int {
	return append([]int{}, a.indices...)
}

// IsList reports whether the answer was submitted as a list.
func (a AnswerValue) IsList() bool { return a.list }

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if !a.list && len(a.indices) == 1 {
		return []byte(strconv.Itoa(a.indices[0])), nil
	}
	if a.indices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.indices)
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{list: true}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := AnswerValue{indices: make([]int, 0, len(raw)), list: true}
		for _, elem := range raw {
			n, err := parseIndex(elem)
			if err != nil {
				return err
			}
			out.indices = append(out.indices, n)
		}
		*a = out
		return nil
	}
	n, err := parseIndex(data)
	if err != nil {
		return err
	}
	*a = Single(n)
	return nil
}

// parseIndex accepts a JSON integer, an integral float, or a quoted integer.
func parseIndex(data json.RawMessage) (int, error) {
	var num json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		num = json.Number(strings.TrimSpace(s))
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&num); err != nil {
			return 0, fmt.Errorf("option index must be a number: %w", err)
		}
	}
	if n, err := num.Int64(); err == nil {
		return int(n), nil
	}
	f, err := num.Float64()
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("option index %q is not an integer", num.String())
	}
	return int(f), nil
}

// OptionSet is a normalized set of 0-indexed option numbers, sorted
// ascending without duplicates. It decodes from a comma-joined string
// ("1,2"), a single integer, or a list of integers, and encodes as a
// comma-joined string.
type OptionSet []int

// ParseOptionSet parses a comma-joined list of 0-indexed integers. Blank
// input yields an empty set.
func ParseOptionSet(raw string) (OptionSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OptionSet{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid option index %q", p)
		}
		out = append(out, n)
	}
	return NewOptionSet(out...), nil
}

// NewOptionSet normalizes indices into a set.
func NewOptionSet(indices ...int) OptionSet {
	seen := make(map[int]struct{}, len(indices))
	out := make(OptionSet, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Equal reports exact set equality.
func (s OptionSet) Equal(other OptionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the comma-joined storage form.
func (s OptionSet) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (s OptionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OptionSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = OptionSet{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseOptionSet(raw)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		var v AnswerValue
		if err := v.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("correct_options: %w", err)
		}
		*s = NewOptionSet(v.indices...)
		return nil
	}
}
