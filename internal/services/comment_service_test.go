package services

import (
	"testing"

	"chirp/internal/db"
	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	commenter := createTestUser(t, "commenter@example.com")
	post := createTestPost(t, owner.ID, "discuss")

	comment, err := svc.CreateComment(commenter.ID, post.ID, "first!")
	require.NoError(t, err)

	assert.NotZero(t, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)
	require.NotNil(t, comment.UserID)
	assert.Equal(t, commenter.ID, *comment.UserID)
	assert.Equal(t, "first!", comment.Content)

	// The fan-out lands on the post owner with the resolved references.
	var notifications []models.Notification
	require.NoError(t, db.DB.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, owner.ID, n.UserID)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, commenter.ID, *n.SenderID)
	require.NotNil(t, n.PostID)
	assert.Equal(t, post.ID, *n.PostID)
	assert.Equal(t, models.NotificationTypeComment, n.Type)

	// The post's comment count reflects the new comment.
	reloaded, err := NewPostService().GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.CommentCount)
}

func TestCreateCommentValidation(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	user := createTestUser(t, "user@example.com")
	post := createTestPost(t, user.ID, "here")

	_, err := svc.CreateComment(user.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateComment(user.ID, 9999, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateComment(9999, post.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.EqualValues(t, 0, countRows(t, &models.Comment{}))
	assert.EqualValues(t, 0, countRows(t, &models.Notification{}))
}

func TestCreateCommentOnOrphanedPost(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	commenter := createTestUser(t, "commenter@example.com")
	post := createTestPost(t, owner.ID, "orphan")
	require.NoError(t, NewUserService().DeleteUser(owner.ID))

	comment, err := svc.CreateComment(commenter.ID, post.ID, "still works")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.EqualValues(t, 0, countRows(t, &models.Notification{}))
}

func TestUpdateCommentOwnership(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	other := createTestUser(t, "other@example.com")
	post := createTestPost(t, owner.ID, "post")
	comment, err := svc.CreateComment(owner.ID, post.ID, "original")
	require.NoError(t, err)

	_, err = svc.UpdateComment(comment.ID, other.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	unchanged, err := svc.GetComment(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Content)

	updated, err := svc.UpdateComment(comment.ID, owner.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteComment(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	other := createTestUser(t, "other@example.com")
	post := createTestPost(t, owner.ID, "post")
	comment, err := svc.CreateComment(owner.ID, post.ID, "bye")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteComment(comment.ID, other.ID), ErrForbidden)
	require.NoError(t, svc.DeleteComment(comment.ID, owner.ID))

	_, err = svc.GetComment(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteComment(comment.ID, owner.ID), ErrNotFound)
}

func TestCommentsForPost(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	commenter := createTestUser(t, "commenter@example.com")
	post := createTestPost(t, owner.ID, "busy thread")
	otherPost := createTestPost(t, owner.ID, "quiet thread")

	_, err := svc.CreateComment(commenter.ID, post.ID, "one")
	require.NoError(t, err)
	_, err = svc.CreateComment(commenter.ID, post.ID, "two")
	require.NoError(t, err)
	_, err = svc.CreateComment(commenter.ID, otherPost.ID, "elsewhere")
	require.NoError(t, err)

	page, err := svc.CommentsForPost(post.ID, PageRequest{Page: 0, PageSize: 10, SortField: "id", SortDir: SortAsc})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "one", page.Items[0].Content)
	assert.Equal(t, commenter.Username, page.Items[0].Username)
	assert.Equal(t, post.ID, page.Items[0].PostID)

	_, err = svc.CommentsForPost(9999, PageRequest{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchComments(t *testing.T) {
	resetDB(t)
	svc := NewCommentService()
	owner := createTestUser(t, "owner@example.com")
	post := createTestPost(t, owner.ID, "thread")
	other := createTestPost(t, owner.ID, "other thread")

	_, err := svc.CreateComment(owner.ID, post.ID, "Totally agree")
	require.NoError(t, err)
	_, err = svc.CreateComment(owner.ID, post.ID, "hard disagree")
	require.NoError(t, err)
	_, err = svc.CreateComment(owner.ID, other.ID, "agree elsewhere")
	require.NoError(t, err)

	page, err := svc.SearchComments("AGREE", post.ID, PageRequest{Page: 0, PageSize: 10, SortField: "id", SortDir: SortAsc})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Totally agree", page.Items[0].Content)

	_, err = svc.SearchComments("  ", post.ID, PageRequest{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SearchComments("agree", 9999, PageRequest{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}
