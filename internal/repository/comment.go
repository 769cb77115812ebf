package repository

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
)

var ErrCommentNotFound = dao.ErrCommentNotFound

type CommentDAO interface {
	FindTopLevelByItemID(ctx context.Context, itemID string) ([]dao.Comment, error)
	FindByID(ctx context.Context, id string) (dao.Comment, error)
	Insert(ctx context.Context, comment dao.Comment) (dao.Comment, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (dao.Comment, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) FindTopLevelByItemID(ctx context.Context, itemID string) ([]domain.Comment, error) {
	found, err := r.dao.FindTopLevelByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTopLevelByItemID -> %w", err)
	}

	return commentsDaoToDomain(found), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (domain.Comment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return commentDaoToDomain(found), nil
}

func (r *CommentRepository) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	created, err := r.dao.Insert(ctx, dao.Comment{
		Body:            c.Body,
		AuthorName:      c.AuthorName,
		AuthorAvatarURL: c.AuthorAvatarURL,
		ItemID:          c.ItemID,
		ParentID:        c.ParentID,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return commentDaoToDomain(created), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CommentRepository) ToggleLike(ctx context.Context, id string) (domain.Comment, error) {
	toggled, err := r.dao.ToggleLike(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.ToggleLike -> %w", err)
	}

	return commentDaoToDomain(toggled), nil
}

func commentsDaoToDomain(comments []dao.Comment) []domain.Comment {
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentDaoToDomain(c))
	}

	return out
}

func commentDaoToDomain(c dao.Comment) domain.Comment {
	return domain.Comment{
		ID:              c.ID,
		Body:            c.Body,
		AuthorName:      c.AuthorName,
		AuthorAvatarURL: c.AuthorAvatarURL,
		LikeCount:       c.LikeCount,
		Liked:           c.Liked,
		ItemID:          c.ItemID,
		ParentID:        c.ParentID,
		Replies:         commentsDaoToDomain(c.Replies),
		CreatedAt:       c.CreatedAt,
	}
}
