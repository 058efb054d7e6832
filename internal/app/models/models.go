// Package models defines the typed records the client exchanges with the
// ScholarSphere backend. Field names follow the backend's snake_case wire
// contract; required fields are enforced at the network boundary through
// validator tags (see validate.go) so a malformed response is rejected
// instead of flowing through the app with zero values.
package models

import "time"

// UserType represents the role attached to a profile
type UserType string

const (
	UserTypeStudent    UserType = "student"
	UserTypeResearcher UserType = "researcher"
	UserTypeAdmin      UserType = "admin"
)

// IsAdmin reports whether the profile carries the admin role.
// Advisory only; the server is the authority on every admin operation.
func (t UserType) IsAdmin() bool {
	return t == UserTypeAdmin
}

// UserProfile represents the authenticated user's profile as returned by /auth/me
type UserProfile struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email,omitempty"`
	University     string   `json:"university,omitempty"`
	Program        string   `json:"program,omitempty"`
	Year           int      `json:"year,omitempty"`
	UserType       UserType `json:"user_type,omitempty"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
}

// Visibility controls which audience a post is shown to
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityUniversity Visibility = "university"
)

// Attachment represents a file or link attached to a post
type Attachment struct {
	URL   string `json:"url" validate:"required"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Post represents a feed post with author fields denormalized at read time
type Post struct {
	ID               string       `json:"id" validate:"required"`
	AuthorID         string       `json:"author_id,omitempty"`
	AuthorName       string       `json:"author_name,omitempty"`
	AuthorPicture    string       `json:"author_picture,omitempty"`
	AuthorRole       UserType     `json:"author_role,omitempty"`
	AuthorUniversity string       `json:"author_university,omitempty"`
	Text             string       `json:"text,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty" validate:"dive"`
	Visibility       Visibility   `json:"visibility,omitempty"`
	Likes            int          `json:"likes"`
	Comments         int          `json:"comments"`
	IsLiked          bool         `json:"is_liked"`
	CreatedAt        time.Time    `json:"created_at,omitempty"`
}

// FeedMode is the dimension along which the feed is filtered server-side
type FeedMode string

const (
	FeedModeGlobal     FeedMode = "global"
	FeedModeFollowing  FeedMode = "following"
	FeedModeUniversity FeedMode = "university"
	FeedModeCircle     FeedMode = "circle"
)

// IsValid reports whether the mode is one the backend understands
func (m FeedMode) IsValid() bool {
	switch m {
	case FeedModeGlobal, FeedModeFollowing, FeedModeUniversity, FeedModeCircle:
		return true
	}
	return false
}

// FeedPage is one page of the paginated feed. Cursor is opaque and echoed
// back verbatim on the next fetch; an empty cursor with HasMore false
// marks the end of the feed.
type FeedPage struct {
	Posts   []Post `json:"posts"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

// Comment represents a comment on a post; lists are newest-first
type Comment struct {
	ID            string    `json:"id" validate:"required"`
	PostID        string    `json:"post_id,omitempty"`
	AuthorID      string    `json:"author_id,omitempty"`
	AuthorName    string    `json:"author_name,omitempty"`
	AuthorPicture string    `json:"author_picture,omitempty"`
	Text          string    `json:"text,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Circle represents a joinable topical sub-community
type Circle struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
	IsMember    bool   `json:"is_member"`
}

// NotificationType represents the kind of event a notification describes
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
)

// Notification represents one entry of the notification list
type Notification struct {
	ID           string           `json:"id" validate:"required"`
	Type         NotificationType `json:"type,omitempty"`
	ActorName    string           `json:"actor_name,omitempty"`
	ActorPicture string           `json:"actor_picture,omitempty"`
	Read         bool             `json:"read"`
	PostID       string           `json:"post_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at,omitempty"`
}

// CreatePostRequest represents the body of POST /social/posts
type CreatePostRequest struct {
	Text        string       `json:"text"`
	Tags        []string     `json:"tags,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Visibility  Visibility   `json:"visibility,omitempty"`
	CircleID    string       `json:"circle_id,omitempty"`
}

// AddCommentRequest represents the body of POST /social/posts/{id}/comments
type AddCommentRequest struct {
	Text string `json:"text"`
}
