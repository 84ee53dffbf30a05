package project

import (
	"regexp"
	"strings"
	"time"

	"github.com/hpungsan/folio/internal/errors"
)

// Field names used as keys in validation failures.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldTags        = "tags"
	FieldDate        = "date"
)

// imageURLRegex is a scheme-prefix check, not full URL validation.
var imageURLRegex = regexp.MustCompile(`^https?://.+`)

// Draft is a raw, unvalidated submission from a form or tool call.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Tags        string `json:"tags"` // comma-separated
	Date        string `json:"date,omitempty"`
}

// ValidateOptions supplies the clock, id source and category default.
// Zero values fall back to time.Now, NewID and DefaultCategory.
type ValidateOptions struct {
	Now             func() time.Time
	NewID           func() (ID, error)
	DefaultCategory string
}

// Validate checks every field of d and builds a Project on success.
// All failing fields are reported together in a VALIDATION_FAILED error.
// Category never fails.
func Validate(d Draft, opts ValidateOptions) (*Project, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = NewID
	}

	failures := make(map[string]string)

	title := strings.TrimSpace(d.Title)
	if title == "" {
		failures[FieldTitle] = "Title is required"
	}

	description := strings.TrimSpace(d.Description)
	if description == "" {
		failures[FieldDescription] = "Description is required"
	}

	image := strings.TrimSpace(d.Image)
	if image == "" {
		failures[FieldImage] = "Image URL is required"
	} else if !imageURLRegex.MatchString(image) {
		failures[FieldImage] = "Please enter a valid URL"
	}

	// " , ," passes the blank check but yields no tokens
	tags := ParseTags(d.Tags)
	if strings.TrimSpace(d.Tags) == "" || len(tags) == 0 {
		failures[FieldTags] = "At least one tag is required"
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = Today(opts.Now())
	} else if _, err := ParseDate(date); err != nil {
		failures[FieldDate] = "Please enter a valid date"
	}

	if len(failures) > 0 {
		return nil, errors.NewValidationFailed(failures)
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = opts.DefaultCategory
	}
	if category == "" {
		category = DefaultCategory
	}

	id, err := opts.NewID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &Project{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Image:       image,
		Tags:        tags,
		Date:        date,
	}, nil
}
