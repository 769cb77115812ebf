package domain

import "time"

const (
	LabelTechnique   = "Teknik"
	LabelPhysical    = "Fisik"
	LabelSparring    = "Tanding"
	LabelPerformance = "Tampil"

	VideoTypeYoutube   = "youtube"
	VideoTypeInstagram = "instagram"
	VideoTypeOther     = "other"

	DefaultItemIcon = "star"
)

// Category is a roadmap category. Root categories have a nil ParentID; the tree is at most two
// levels deep.
type Category struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Description   string     `json:"description"`
	AccentColor   string     `json:"accent_color"`
	Slug          string     `json:"slug"`
	Icon          *string    `json:"icon"`
	ParentID      *string    `json:"parent_id"`
	Items         []Item     `json:"items"`
	SubCategories []Category `json:"sub_categories,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Label         string    `json:"label"`
	VideoURL      string    `json:"video_url"`
	VideoType     string    `json:"video_type"`
	DetailContent string    `json:"detail_content"`
	Icon          string    `json:"icon"`
	CategoryID    string    `json:"category_id"`
	Comments      []Comment `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Stats struct {
	TotalMembers   int64 `json:"total_members"`
	TotalMaterials int64 `json:"total_materials"`
}
