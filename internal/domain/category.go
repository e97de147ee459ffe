// Package domain defines the core entities of the laptop price estimator.
//
// This file holds the category codecs: the fixed label to ordinal tables the
// regression model was fit against. A label's code is its position in the
// table, so the order of each table is part of the model contract and must
// never be rearranged.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Category is an immutable mapping from display labels to fitted ordinal codes.
type Category struct {
	name   string
	labels []string
	codes  map[string]int
}

func newCategory(name string, labels ...string) Category {
	codes := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, dup := codes[label]; dup {
			panic(fmt.Sprintf("category %s: duplicate label %q", name, label))
		}
		codes[label] = i
	}
	return Category{name: name, labels: labels, codes: codes}
}

// Categorical features in fitted order.
var (
	CoreCategory = newCategory("core",
		"2-Core Entry",
		"4-Core Entry",
		"6-Core Mainstream",
		"8-Core Performance",
		"8-Core Hybrid (4P+4E)",
		"10-Core High-Perf",
		"12-14 Core Power",
		"16+ Core Extreme",
	)
	RAMCategory = newCategory("ram",
		"4 GB DDR4",
		"8 GB DDR4",
		"16 GB DDR4",
		"8 GB LPDDR5",
		"16 GB LPDDR5",
		"Others",
	)
	SSDCategory = newCategory("ssd",
		"128 GB",
		"256 GB",
		"512 GB",
		"1 TB",
		"2 TB",
		"Others",
	)
	DisplayCategory = newCategory("display",
		"FHD",
		"Touch",
		"OLED",
		"Others",
	)
	GraphicsCategory = newCategory("graphics",
		"Intel",
		"NVIDIA",
		"AMD",
		"Integrated",
		"Others",
	)
	OSCategory = newCategory("os",
		"Windows 10",
		"Windows 11",
		"Linux",
		"Mac",
		"Others",
	)
)

// Categories returns every categorical feature in feature-row order.
func Categories() []Category {
	return []Category{CoreCategory, RAMCategory, SSDCategory, DisplayCategory, GraphicsCategory, OSCategory}
}

// Name returns the feature name.
func (c Category) Name() string {
	return c.name
}

// Labels returns a copy of the labels in code order.
func (c Category) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Label returns the label for code.
func (c Category) Label(code int) (string, bool) {
	if code < 0 || code >= len(c.labels) {
		return "", false
	}
	return c.labels[code], true
}

// Encode returns the fitted code for label. Labels must come from Labels or
// Resolve; anything else is a programming error and panics.
func (c Category) Encode(label string) int {
	code, ok := c.codes[label]
	if !ok {
		panic(fmt.Sprintf("category %s: unknown label %q", c.name, label))
	}
	return code
}

// Resolve maps free-form user input onto a canonical label. Matching ignores
// case, whitespace and Unicode width; a bare numeric code is accepted too.
func (c Category) Resolve(input string) (string, bool) {
	key := labelKey(input)
	if key == "" {
		return "", false
	}
	for _, label := range c.labels {
		if labelKey(label) == key {
			return label, true
		}
	}
	if code, err := strconv.Atoi(key); err == nil {
		return c.Label(code)
	}
	return "", false
}

func labelKey(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return cases.Fold().String(s)
}
