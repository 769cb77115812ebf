package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type Comment struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Body            string    `gorm:"type:text;not null"`
	AuthorName      string    `gorm:"not null"`
	AuthorAvatarURL string    `gorm:"not null"`
	LikeCount       int       `gorm:"not null;default:0"`
	Liked           bool      `gorm:"not null;default:false"`
	ItemID          string    `gorm:"type:varchar(120);not null;index"`
	ParentID        *string   `gorm:"type:varchar(36);index"`
	Replies         []Comment `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt       time.Time
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) FindTopLevelByItemID(ctx context.Context, itemID string) ([]Comment, error) {
	var comments []Comment

	result := d.db.WithContext(ctx).
		Where("item_id = ? AND parent_id IS NULL", itemID).
		Scopes(orderByCreatedDesc).
		Preload("Replies", orderByCreatedAsc).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

func (d *CommentDAO) FindByID(ctx context.Context, id string) (Comment, error) {
	var comment Comment

	result := d.db.WithContext(ctx).First(&comment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Comment{}, ErrCommentNotFound
		}

		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) Insert(ctx context.Context, comment Comment) (Comment, error) {
	result := d.db.WithContext(ctx).Omit("Replies").Create(&comment)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Comment{}, ErrItemNotFound
		}

		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// ToggleLike flips the shared liked flag and moves like_count by one in the same statement, so
// concurrent toggles cannot lose an update.
func (d *CommentDAO) ToggleLike(ctx context.Context, id string) (Comment, error) {
	var comment Comment

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"like_count": gorm.Expr("CASE WHEN liked THEN like_count - 1 ELSE like_count + 1 END"),
			"liked":      gorm.Expr("NOT liked"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCommentNotFound
		}

		return tx.First(&comment, "id = ?", id).Error
	})
	if err != nil {
		return Comment{}, err
	}

	return comment, nil
}
