package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/doeshing/laptopprice/internal/domain"
)

// Prompter collects form input from a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints prompt and returns the trimmed reply. io.EOF is returned only
// when the input ends with nothing left to read.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Selection walks the form, offering def as the preselected value of every
// field. Invalid replies are rejected and asked again.
func (p *Prompter) Selection(def domain.Selection) (domain.Selection, error) {
	var (
		sel domain.Selection
		err error
	)
	fields := []struct {
		cat  domain.Category
		def  string
		dest *string
	}{
		{domain.CoreCategory, def.Core, &sel.Core},
		{domain.RAMCategory, def.RAM, &sel.RAM},
		{domain.SSDCategory, def.SSD, &sel.SSD},
		{domain.DisplayCategory, def.Display, &sel.Display},
		{domain.GraphicsCategory, def.Graphics, &sel.Graphics},
		{domain.OSCategory, def.OS, &sel.OS},
	}
	for _, f := range fields {
		if *f.dest, err = p.Choose(f.cat, f.def); err != nil {
			return domain.Selection{}, err
		}
	}
	if sel.Generation, err = p.Int("Processor generation", def.Generation, domain.MinGeneration, domain.MaxGeneration); err != nil {
		return domain.Selection{}, err
	}
	if sel.Warranty, err = p.Int("Warranty (years)", def.Warranty, domain.MinWarranty, domain.MaxWarranty); err != nil {
		return domain.Selection{}, err
	}
	if sel.Rating, err = p.Float("Rating", def.Rating, domain.MinRating, domain.MaxRating); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// Choose lists the labels of cat with their codes and accepts a code, a
// label, or an empty reply for def.
func (p *Prompter) Choose(cat domain.Category, def string) (string, error) {
	fmt.Fprintf(p.out, "\n%s:\n", cat.Name())
	for code, label := range cat.Labels() {
		marker := " "
		if label == def {
			marker = "*"
		}
		fmt.Fprintf(p.out, " %s %d) %s\n", marker, code, label)
	}
	for {
		line, err := p.Line(fmt.Sprintf("%s [%s]: ", cat.Name(), def))
		if err != nil {
			return "", err
		}
		if line == "" {
			return def, nil
		}
		if label, ok := cat.Resolve(line); ok {
			return label, nil
		}
		fmt.Fprintf(p.out, "Unknown %s %q, pick a number from the list.\n", strings.ToLower(cat.Name()), line)
	}
}

// Int asks for an integer in [lo, hi]. Out-of-range replies are rejected.
func (p *Prompter) Int(name string, def, lo, hi int) (int, error) {
	for {
		line, err := p.Line(fmt.Sprintf("%s (%d-%d) [%d]: ", name, lo, hi, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, err := strconv.Atoi(line)
		if err == nil && v >= lo && v <= hi {
			return v, nil
		}
		fmt.Fprintf(p.out, "%s must be a whole number between %d and %d.\n", name, lo, hi)
	}
}

// Float asks for a number in [lo, hi]. Out-of-range replies are rejected.
func (p *Prompter) Float(name string, def, lo, hi float64) (float64, error) {
	for {
		line, err := p.Line(fmt.Sprintf("%s (%.1f-%.1f) [%.1f]: ", name, lo, hi, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil && v >= lo && v <= hi {
			return v, nil
		}
		fmt.Fprintf(p.out, "%s must be a number between %.1f and %.1f.\n", name, lo, hi)
	}
}
