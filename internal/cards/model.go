package cards

import (
	"errors"
	"strings"
	"time"
)

// Request is the user input for one card. Photo and Logo are optional raw
// PNG or JPEG bytes.
type Request struct {
	Name       string `json:"name"`
	Date       string `json:"date"`
	Age        string `json:"age"`
	Profession string `json:"profession,omitempty"`
	Photo      []byte `json:"-"`
	Logo       []byte `json:"-"`
}

// Validate checks the fields the card form marks as required.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(r.Age) == "" {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ValidationError lists missing required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ErrNotFound is returned by stores for unknown or expired cards.
var ErrNotFound = errors.New("card not found")

// Card is a rendered card.
type Card struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	Name      string    `json:"name"`
	Greeting  string    `json:"greeting"`
	CreatedAt time.Time `json:"created_at"`
	PNG       []byte    `json:"-"`
}
