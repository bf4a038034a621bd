package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"deckforge/internal/models"
)

// maxBodyBytes caps the size of a slideshow request body.
const maxBodyBytes = 1 << 20

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Pointer fields distinguish an absent key from an empty string: every
// required field must be present, but empty text is accepted.

type slideshowRequest struct {
	TitleSlide *titleSlideRequest `json:"titleSlide" validate:"required"`
	Slides     []slideRequest     `json:"slides" validate:"required,max=200,dive"`
}

type titleSlideRequest struct {
	PresentationName     *string `json:"presentationName" validate:"required,max=1000"`
	PresentationSubtitle *string `json:"presentationSubtitle" validate:"required,max=1000"`
}

type slideRequest struct {
	Title    *string       `json:"title" validate:"required,max=1000"`
	Subtitle *string       `json:"subtitle" validate:"omitempty,max=1000"`
	Bullets  []string      `json:"bullets" validate:"omitempty,max=50,dive,max=1000"`
	Image    *imageRequest `json:"image" validate:"omitnil"`
}

type imageRequest struct {
	URL     *string `json:"url" validate:"required,max=2000"`
	Caption *string `json:"caption" validate:"omitempty,max=1000"`
}

// decodeSlideshow reads and validates a slideshow request body. The error
// describes the first problem found and is meant for logs only.
func decodeSlideshow(r *http.Request) (*models.Slideshow, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, errors.New("body too large")
	}

	var req slideshowRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("validate body: %w", err)
	}
	return req.toModel(), nil
}

// toModel converts a validated request into a slideshow.
func (req *slideshowRequest) toModel() *models.Slideshow {
	show := &models.Slideshow{
		TitleSlide: models.TitleSlide{
			PresentationName:     *req.TitleSlide.PresentationName,
			PresentationSubtitle: *req.TitleSlide.PresentationSubtitle,
		},
		Slides: make([]models.Slide, 0, len(req.Slides)),
	}
	for _, s := range req.Slides {
		slide := models.Slide{
			Title:   *s.Title,
			Bullets: s.Bullets,
		}
		if s.Subtitle != nil {
			slide.Subtitle = *s.Subtitle
		}
		if s.Image != nil {
			slide.Image = &models.Image{URL: *s.Image.URL}
			if s.Image.Caption != nil {
				slide.Image.Caption = *s.Image.Caption
			}
		}
		show.Slides = append(show.Slides, slide)
	}
	return show
}
