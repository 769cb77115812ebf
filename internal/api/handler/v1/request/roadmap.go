package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/pkg/slug"
)

var (
	itemLabels = []interface{}{domain.LabelTechnique, domain.LabelPhysical, domain.LabelSparring, domain.LabelPerformance}
	videoTypes = []interface{}{domain.VideoTypeYoutube, domain.VideoTypeInstagram, domain.VideoTypeOther}
)

type CategoryRequest struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	AccentColor string  `json:"accent_color"`
	Slug        string  `json:"slug"`
	Icon        *string `json:"icon"`
	ParentID    *string `json:"parent_id"`
}

func (req *CategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Subtitle, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.AccentColor, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Slug, validation.Length(1, 100), validation.Match(slug.Pattern)),
	)
}

// Category converts the request; blank icon and parent values become nil.
func (req *CategoryRequest) Category() domain.Category {
	return domain.Category{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		AccentColor: req.AccentColor,
		Slug:        req.Slug,
		Icon:        blankToNil(req.Icon),
		ParentID:    blankToNil(req.ParentID),
	}
}

type ItemRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Label         string `json:"label"`
	VideoURL      string `json:"video_url"`
	VideoType     string `json:"video_type"`
	DetailContent string `json:"detail_content"`
	Icon          string `json:"icon"`
	CategoryID    string `json:"category_id"`
}

func (req *ItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Label, validation.Required, validation.In(itemLabels...)),
		validation.Field(&req.VideoURL, is.URL),
		validation.Field(&req.VideoType, validation.In(videoTypes...)),
		validation.Field(&req.Icon, validation.Length(1, 50)),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

func (req *ItemRequest) Item(id string) domain.Item {
	return domain.Item{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Label:         req.Label,
		VideoURL:      req.VideoURL,
		VideoType:     req.VideoType,
		DetailContent: req.DetailContent,
		Icon:          req.Icon,
		CategoryID:    req.CategoryID,
	}
}

// CreateItemRequest carries the caller-chosen item id, which doubles as its URL slug.
type CreateItemRequest struct {
	ID string `json:"id"`
	ItemRequest
}

func (req *CreateItemRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required, validation.Length(1, 120), validation.Match(slug.Pattern)),
	)
	if err != nil {
		return err
	}

	return req.ItemRequest.Validate()
}

type CommentRequest struct {
	Body       string  `json:"body"`
	AuthorName string  `json:"author_name"`
	ParentID   *string `json:"parent_id"`
}

func (req *CommentRequest) Validate() error {
	req.Body = strings.TrimSpace(req.Body)
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Body, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.AuthorName, validation.Length(0, 50)),
	)
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
