package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-silat/km-silat-api/internal/domain"
)

const testAvatarBaseURL = "https://avatars.example.com/svg"

func newCommentFixture(t *testing.T) (*CommentService, *fakeCommentRepo) {
	t.Helper()

	roadmap := newFakeRoadmapRepo()
	for _, id := range []string{"pukulan-dasar", "jurus-ganda"} {
		_, err := roadmap.CreateItem(context.Background(), domain.Item{ID: id})
		require.NoError(t, err)
	}

	comments := newFakeCommentRepo()
	return NewCommentService(comments, roadmap, testAvatarBaseURL), comments
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCommentFixture(t)

	t.Run("anonymous author", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, domain.Comment{Body: "  Mantap  ", AuthorName: "   ", ItemID: "pukulan-dasar"})
		require.NoError(t, err)
		assert.Equal(t, "Mantap", c.Body)
		assert.Equal(t, domain.AnonymousAuthor, c.AuthorName)
		assert.Equal(t, testAvatarBaseURL+"?seed=Anonymous", c.AuthorAvatarURL)
	})

	t.Run("named author", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, domain.Comment{Body: "Bagus", AuthorName: "Budi Santoso", ItemID: "pukulan-dasar"})
		require.NoError(t, err)
		assert.Equal(t, testAvatarBaseURL+"?seed=Budi%20Santoso", c.AuthorAvatarURL)
	})

	t.Run("blank body", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, domain.Comment{Body: " \n ", ItemID: "pukulan-dasar"})
		assert.ErrorIs(t, err, ErrEmptyCommentBody)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, domain.Comment{Body: "x", ItemID: "missing"})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, domain.Comment{Body: "x", ItemID: "pukulan-dasar", ParentID: ptr("missing")})
		assert.ErrorIs(t, err, ErrParentCommentNotFound)
	})
}

func TestCommentService_Replies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCommentFixture(t)

	root, err := svc.CreateComment(ctx, domain.Comment{Body: "Pertanyaan", ItemID: "pukulan-dasar"})
	require.NoError(t, err)

	reply, err := svc.CreateComment(ctx, domain.Comment{Body: "Jawaban", ItemID: "pukulan-dasar", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	nested, err := svc.CreateComment(ctx, domain.Comment{Body: "Terima kasih", ItemID: "pukulan-dasar", ParentID: &reply.ID})
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, root.ID, *nested.ParentID)

	_, err = svc.CreateComment(ctx, domain.Comment{Body: "Salah tempat", ItemID: "jurus-ganda", ParentID: &root.ID})
	assert.ErrorIs(t, err, ErrInvalidParentComment)

	top, err := svc.ListComments(ctx, "pukulan-dasar")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, root.ID, top[0].ID)
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCommentFixture(t)

	c, err := svc.CreateComment(ctx, domain.Comment{Body: "Halo", AuthorName: "Rina", ItemID: "pukulan-dasar"})
	require.NoError(t, err)
	reply, err := svc.CreateComment(ctx, domain.Comment{Body: "Halo juga", ItemID: "pukulan-dasar", ParentID: &c.ID})
	require.NoError(t, err)

	_, err = svc.DeleteComment(ctx, c.ID, nil, "")
	assert.ErrorIs(t, err, ErrCommentForbidden)

	_, err = svc.DeleteComment(ctx, c.ID, nil, "Budi")
	assert.ErrorIs(t, err, ErrCommentForbidden)

	deleted, err := svc.DeleteComment(ctx, c.ID, nil, " Rina ")
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	_, err = repo.FindByID(ctx, reply.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	other, err := svc.CreateComment(ctx, domain.Comment{Body: "Spam", AuthorName: "Someone", ItemID: "pukulan-dasar"})
	require.NoError(t, err)

	editor := &domain.Principal{ID: "2", Username: "editor", Role: domain.RoleUser}
	_, err = svc.DeleteComment(ctx, other.ID, editor, "")
	assert.ErrorIs(t, err, ErrCommentForbidden)

	_, err = svc.DeleteComment(ctx, other.ID, &domain.Principal{ID: "1", Username: "admin", Role: domain.RoleAdmin}, "")
	assert.NoError(t, err)

	own, err := svc.CreateComment(ctx, domain.Comment{Body: "Ralat", AuthorName: "editor", ItemID: "pukulan-dasar"})
	require.NoError(t, err)
	_, err = svc.DeleteComment(ctx, own.ID, editor, "editor")
	assert.NoError(t, err)

	_, err = svc.DeleteComment(ctx, "missing", nil, "")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCommentFixture(t)

	c, err := svc.CreateComment(ctx, domain.Comment{Body: "Halo", ItemID: "pukulan-dasar"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, err := svc.ToggleLike(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikeCount)

	_, err = svc.ToggleLike(ctx, "missing")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
