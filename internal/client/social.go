package client

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// FeedQuery carries the parameters of one feed page fetch. Cursor is the
// opaque continuation token from the previous page, empty for the first.
type FeedQuery struct {
	Mode     models.FeedMode
	CircleID string
	Cursor   string
	Limit    int
}

// FeedPage fetches one page of the social feed.
func (c *Client) FeedPage(ctx context.Context, q FeedQuery) (*models.FeedPage, error) {
	query := url.Values{}
	query.Set("mode", string(q.Mode))
	if q.CircleID != "" {
		query.Set("circle_id", q.CircleID)
	}
	if q.Cursor != "" {
		query.Set("cursor", q.Cursor)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var page models.FeedPage
	err := c.doJSON(ctx, "GET", "/social/feed", query, nil, func(r io.Reader) error {
		return models.DecodeValid(r, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePost publishes a new post and returns the server's record of it.
func (c *Client) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, "POST", "/social/posts", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post owned by the caller (or any post for admins).
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.doJSON(ctx, "DELETE", "/social/posts/"+url.PathEscape(postID), nil, nil, nil)
}

// LikePost records a like on a post.
func (c *Client) LikePost(ctx context.Context, postID string) error {
	return c.doJSON(ctx, "POST", "/social/posts/"+url.PathEscape(postID)+"/like", nil, nil, nil)
}

// UnlikePost removes the caller's like from a post.
func (c *Client) UnlikePost(ctx context.Context, postID string) error {
	return c.doJSON(ctx, "DELETE", "/social/posts/"+url.PathEscape(postID)+"/like", nil, nil, nil)
}

// ListComments returns a post's comments, newest first.
func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.doJSON(ctx, "GET", "/social/posts/"+url.PathEscape(postID)+"/comments", nil, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &comments)
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment appends a comment to a post and returns the created record.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*models.Comment, error) {
	var comment models.Comment
	req := models.AddCommentRequest{Text: text}
	err := c.doJSON(ctx, "POST", "/social/posts/"+url.PathEscape(postID)+"/comments", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment by identifier.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.doJSON(ctx, "DELETE", "/social/comments/"+url.PathEscape(commentID), nil, nil, nil)
}

// ListCircles returns all circles, including the caller's membership flag
// when the request is authenticated.
func (c *Client) ListCircles(ctx context.Context) ([]models.Circle, error) {
	var circles []models.Circle
	err := c.doJSON(ctx, "GET", "/social/circles", nil, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &circles)
	})
	if err != nil {
		return nil, err
	}
	return circles, nil
}

// JoinCircle adds the caller to a circle.
func (c *Client) JoinCircle(ctx context.Context, circleID string) error {
	return c.doJSON(ctx, "POST", "/social/circles/"+url.PathEscape(circleID)+"/join", nil, nil, nil)
}

// LeaveCircle removes the caller from a circle.
func (c *Client) LeaveCircle(ctx context.Context, circleID string) error {
	return c.doJSON(ctx, "DELETE", "/social/circles/"+url.PathEscape(circleID)+"/leave", nil, nil, nil)
}

// ListNotifications returns the most recent notifications, newest first,
// capped at limit.
func (c *Client) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var notifications []models.Notification
	err := c.doJSON(ctx, "GET", "/social/notifications", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &notifications)
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.doJSON(ctx, "POST", "/social/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil, nil)
}
