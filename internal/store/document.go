package store

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"Wardrobe/internal/model"
)

// DocumentVersion is the only export format version this build reads and writes.
const DocumentVersion = 1

// Document is the self-contained backup format.
type Document struct {
	Version        int            `json:"version"`
	ExportDate     FlexTime       `json:"exportDate"`
	Items          []ItemDoc      `json:"items"`
	Images         []ImageDoc     `json:"images"`
	WeeklyPlan     []WeeklyDoc    `json:"weeklyPlan"`
	SavedOutfits   []OutfitDoc    `json:"savedOutfits"`
	CustomSections []SectionDoc   `json:"customSections"`
	ShoppingList   []ShoppingDoc  `json:"shoppingList"`
	Settings       ExportSettings `json:"settings"`
}

// ItemDoc is an item or, with Deleted set, a trash entry.
type ItemDoc struct {
	ID               FlexID   `json:"id"`
	ImageID          FlexID   `json:"imageId"`
	Category         string   `json:"category"`
	Favorite         bool     `json:"favorite"`
	Laundry          bool     `json:"laundry"`
	Deleted          bool     `json:"deleted"`
	DateAdded        FlexTime `json:"dateAdded"`
	DeletedDate      FlexTime `json:"deletedDate,omitzero"`
	OriginalCategory string   `json:"originalCategory,omitempty"`
}

type ImageDoc struct {
	ID   FlexID    `json:"id"`
	Data ImageData `json:"data"`
}

type WeeklyDoc struct {
	Day   string   `json:"day"`
	Type  string   `json:"type"`
	Items []FlexID `json:"items"`
	Notes string   `json:"notes"`
}

type OutfitDoc struct {
	ID    FlexID   `json:"id"`
	Items []FlexID `json:"items"`
	Notes string   `json:"notes"`
	Date  string   `json:"date"`
}

type SectionDoc struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

type ShoppingDoc struct {
	ID      FlexID `json:"id"`
	Name    string `json:"name"`
	Desc    string `json:"desc"`
	Price   string `json:"price"`
	ImageID FlexID `json:"imageId,omitempty"`
}

// ExportSettings is the settings subset carried by backups. Nil fields are left untouched on import.
type ExportSettings struct {
	UserName *string         `json:"userName,omitempty"`
	Theme    *string         `json:"theme,omitempty"`
	Location *model.Location `json:"location,omitempty"`
	TempUnit *string         `json:"tempUnit,omitempty"`
}

// DecodeDocument parses a backup. Any syntax or type problem is a *FormatError.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, &FormatError{Err: err}
	}
	return &doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// FlexID is an identifier that may arrive as a JSON string or number.
// Numbers keep their literal text, so 1699999999123.45 becomes "1699999999123.45".
type FlexID string

func (id FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	*id = FlexID(n.String())
	return nil
}

func flexIDs(ids []FlexID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, string(id))
		}
	}
	return out
}

func toFlexIDs(ids []string) []FlexID {
	out := make([]FlexID, len(ids))
	for i, id := range ids {
		out[i] = FlexID(id)
	}
	return out
}

// FlexTime accepts RFC 3339 strings or unix milliseconds and writes RFC 3339.
type FlexTime struct {
	time.Time
}

func (t FlexTime) IsZero() bool { return t.Time.IsZero() }

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q", s)
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// ImageData is image bytes encoded as standard base64. On input a data URL
// ("data:image/jpeg;base64,...") is accepted too.
type ImageData []byte

func (d ImageData) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(d))
}

func (d *ImageData) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("image data must be a string")
	}
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return fmt.Errorf("unsupported data URL")
		}
		s = payload
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("image data is not base64: %w", err)
	}
	*d = raw
	return nil
}
