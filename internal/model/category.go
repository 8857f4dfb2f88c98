package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fixed is one of the built-in wardrobe categories.
type Fixed string

const (
	Tops      Fixed = "tops"
	Bottoms   Fixed = "bottoms"
	Outerwear Fixed = "outerwear"
	Other     Fixed = "other"
)

// FixedCategories lists built-in categories in display order.
var FixedCategories = []Fixed{Tops, Bottoms, Outerwear, Other}

const customPrefix = "custom-"

// ErrInvalidCategory is returned when a category string cannot be parsed.
var ErrInvalidCategory = errors.New("invalid category")

// Category is either a built-in category or a reference to a custom section.
// Exactly one of fixed and section is set on a valid value.
type Category struct {
	fixed   Fixed
	section string
}

// FixedCategory builds a built-in category.
func FixedCategory(f Fixed) Category { return Category{fixed: f} }

// CustomCategory builds a category pointing at the custom section with the given id.
func CustomCategory(sectionID string) Category { return Category{section: sectionID} }

// ParseCategory parses the wire form: tops|bottoms|outerwear|other|custom-<sectionId>.
func ParseCategory(s string) (Category, error) {
	switch f := Fixed(s); f {
	case Tops, Bottoms, Outerwear, Other:
		return FixedCategory(f), nil
	}
	if id, ok := strings.CutPrefix(s, customPrefix); ok && id != "" {
		return CustomCategory(id), nil
	}
	return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MustParseCategory is ParseCategory for literals known to be valid.
func MustParseCategory(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Category) String() string {
	if c.section != "" {
		return customPrefix + c.section
	}
	return string(c.fixed)
}

// IsZero reports whether c is the unset category.
func (c Category) IsZero() bool { return c.fixed == "" && c.section == "" }

// Fixed returns the built-in category and true, or "" and false for custom sections.
func (c Category) Fixed() (Fixed, bool) { return c.fixed, c.fixed != "" }

// SectionID returns the custom section id and true, or "" and false for built-in categories.
func (c Category) SectionID() (string, bool) { return c.section, c.section != "" }

// IsCustom reports whether c references a custom section.
func (c Category) IsCustom() bool { return c.section != "" }

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores the category in its wire form.
func (c Category) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.String(), nil
}

// Scan reads the wire form back from the database.
func (c *Category) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*c = Category{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("category: unsupported scan type %T", src)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
