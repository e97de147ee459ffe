package domain

import (
	"fmt"
	"math"
)

// Canonicalize resolves every label in s onto its canonical spelling and
// checks the numeric inputs against their domains. Out-of-range values are
// rejected, never clamped.
func (s Selection) Canonicalize() (Selection, error) {
	fields := []struct {
		category Category
		value    *string
	}{
		{CoreCategory, &s.Core},
		{RAMCategory, &s.RAM},
		{SSDCategory, &s.SSD},
		{DisplayCategory, &s.Display},
		{GraphicsCategory, &s.Graphics},
		{OSCategory, &s.OS},
	}
	for _, f := range fields {
		label, ok := f.category.Resolve(*f.value)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %s %q is not one of %v", ErrInvalidSelection, f.category.Name(), *f.value, f.category.labels)
		}
		*f.value = label
	}
	if err := s.validateNumbers(); err != nil {
		return Selection{}, err
	}
	return s, nil
}

func (s Selection) validateNumbers() error {
	if s.Generation < MinGeneration || s.Generation > MaxGeneration {
		return fmt.Errorf("%w: generation %d outside %d-%d", ErrInvalidSelection, s.Generation, MinGeneration, MaxGeneration)
	}
	if s.Warranty < MinWarranty || s.Warranty > MaxWarranty {
		return fmt.Errorf("%w: warranty %d outside %d-%d", ErrInvalidSelection, s.Warranty, MinWarranty, MaxWarranty)
	}
	if math.IsNaN(s.Rating) || s.Rating < MinRating || s.Rating > MaxRating {
		return fmt.Errorf("%w: rating %.2f outside %.1f-%.1f", ErrInvalidSelection, s.Rating, MinRating, MaxRating)
	}
	return nil
}
