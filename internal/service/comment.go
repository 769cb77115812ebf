package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/pkg/avatar"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var (
	ErrCommentNotFound       = repository.ErrCommentNotFound
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrInvalidParentComment  = errors.New("parent comment belongs to another item")
	ErrEmptyCommentBody      = errors.New("comment body is required")
	ErrCommentForbidden      = errors.New("only the author or an admin can delete this comment")
)

type CommentRepository interface {
	FindTopLevelByItemID(ctx context.Context, itemID string) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (domain.Comment, error)
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (domain.Comment, error)
}

type CommentItemRepository interface {
	FindItemByID(ctx context.Context, id string) (domain.Item, error)
}

type CommentService struct {
	repo          CommentRepository
	itemRepo      CommentItemRepository
	avatarBaseURL string
}

func NewCommentService(repo CommentRepository, itemRepo CommentItemRepository, avatarBaseURL string) *CommentService {
	return &CommentService{
		repo:          repo,
		itemRepo:      itemRepo,
		avatarBaseURL: avatarBaseURL,
	}
}

// CheckItem returns ErrItemNotFound when itemID does not exist.
func (s *CommentService) CheckItem(ctx context.Context, itemID string) error {
	if _, err := s.itemRepo.FindItemByID(ctx, itemID); err != nil {
		return fmt.Errorf("s.itemRepo.FindItemByID -> %w", err)
	}

	return nil
}

func (s *CommentService) ListComments(ctx context.Context, itemID string) ([]domain.Comment, error) {
	comments, err := s.repo.FindTopLevelByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTopLevelByItemID -> %w", err)
	}

	return comments, nil
}

// CreateComment stores c on its item. A reply to a reply is attached to the top-level comment
// so threads stay one level deep.
func (s *CommentService) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	c.Body = strings.TrimSpace(c.Body)
	if c.Body == "" {
		return domain.Comment{}, ErrEmptyCommentBody
	}

	c.AuthorName = strings.TrimSpace(c.AuthorName)
	if c.AuthorName == "" {
		c.AuthorName = domain.AnonymousAuthor
	}
	c.AuthorAvatarURL = avatar.URL(s.avatarBaseURL, c.AuthorName)

	if _, err := s.itemRepo.FindItemByID(ctx, c.ItemID); err != nil {
		return domain.Comment{}, fmt.Errorf("s.itemRepo.FindItemByID -> %w", err)
	}

	if c.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *c.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return domain.Comment{}, ErrParentCommentNotFound
			}

			return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if parent.ItemID != c.ItemID {
			return domain.Comment{}, ErrInvalidParentComment
		}
		if parent.IsReply() {
			c.ParentID = parent.ParentID
		}
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// DeleteComment removes a comment and its replies. The caller must either be an ADMIN principal
// or supply the comment's author name. The deleted comment is returned.
func (s *CommentService) DeleteComment(ctx context.Context, id string, principal *domain.Principal, authorName string) (domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isAdmin := principal != nil && principal.IsAdmin()
	if !isAdmin && strings.TrimSpace(authorName) != comment.AuthorName {
		return domain.Comment{}, ErrCommentForbidden
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return comment, nil
}

func (s *CommentService) ToggleLike(ctx context.Context, id string) (domain.Comment, error) {
	comment, err := s.repo.ToggleLike(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.ToggleLike -> %w", err)
	}

	return comment, nil
}
