package domain_test

import (
	"testing"

	"github.com/doeshing/laptopprice/internal/domain"
)

func TestCategoryEncodeIsInjective(t *testing.T) {
	for _, category := range domain.Categories() {
		t.Run(category.Name(), func(t *testing.T) {
			seen := make(map[int]string)
			for i, label := range category.Labels() {
				code := category.Encode(label)
				if code != i {
					t.Errorf("Encode(%q) = %d, want %d", label, code, i)
				}
				if prev, dup := seen[code]; dup {
					t.Errorf("labels %q and %q share code %d", prev, label, code)
				}
				seen[code] = label
				if again := category.Encode(label); again != code {
					t.Errorf("Encode(%q) not deterministic: %d then %d", label, code, again)
				}
			}
		})
	}
}

func TestCategoryCanonicalCodes(t *testing.T) {
	tests := []struct {
		category domain.Category
		label    string
		want     int
	}{
		{domain.CoreCategory, "2-Core Entry", 0},
		{domain.CoreCategory, "8-Core Performance", 3},
		{domain.CoreCategory, "8-Core Hybrid (4P+4E)", 4},
		{domain.CoreCategory, "16+ Core Extreme", 7},
		{domain.RAMCategory, "16 GB DDR4", 2},
		{domain.RAMCategory, "8 GB LPDDR5", 3},
		{domain.RAMCategory, "Others", 5},
		{domain.SSDCategory, "512 GB", 2},
		{domain.SSDCategory, "2 TB", 4},
		{domain.DisplayCategory, "OLED", 2},
		{domain.GraphicsCategory, "NVIDIA", 1},
		{domain.GraphicsCategory, "Integrated", 3},
		{domain.OSCategory, "Windows 11", 1},
		{domain.OSCategory, "Mac", 3},
	}

	for _, tt := range tests {
		t.Run(tt.category.Name()+"/"+tt.label, func(t *testing.T) {
			if got := tt.category.Encode(tt.label); got != tt.want {
				t.Errorf("Encode(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestCategoryEncodePanicsOnUnknownLabel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown label")
		}
	}()
	domain.RAMCategory.Encode("64 GB DDR5")
}

func TestCategoryResolve(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		input    string
		want     string
		wantOK   bool
	}{
		{"exact", domain.RAMCategory, "16 GB DDR4", "16 GB DDR4", true},
		{"no space", domain.RAMCategory, "16GB DDR4", "16 GB DDR4", true},
		{"lower case", domain.GraphicsCategory, "nvidia", "NVIDIA", true},
		{"full width", domain.DisplayCategory, "ＯＬＥＤ", "OLED", true},
		{"numeric code", domain.OSCategory, "3", "Mac", true},
		{"code out of range", domain.OSCategory, "9", "", false},
		{"unknown", domain.SSDCategory, "4 TB", "", false},
		{"empty", domain.CoreCategory, "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.category.Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
