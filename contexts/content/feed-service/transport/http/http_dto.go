// Package http defines the wire-level request and response shapes of the
// feed service.
package http

import "time"

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Data    []FieldViolation `json:"data,omitempty"`
}

type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImagePath string `json:"imagePath,omitempty"`
}

// UpdatePostRequest carries a post edit. ImagePath distinguishes three
// cases: absent keeps the current attachment, an empty string clears it,
// and a non-empty value replaces it.
type UpdatePostRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	ImagePath *string `json:"imagePath,omitempty"`
}

type Post struct {
	ID          string    `json:"post_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	ImagePath   string    `json:"imagePath,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PostResponse struct {
	Status string `json:"status"`
	Data   Post   `json:"data"`
}

type ListPostsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Posts      []Post `json:"posts"`
		TotalPosts int    `json:"totalPosts"`
	} `json:"data"`
}

type DeletePostResponse struct {
	Status string `json:"status"`
	Data   struct {
		PostID string `json:"post_id"`
	} `json:"data"`
}

type UploadImageResponse struct {
	Status string `json:"status"`
	Data   struct {
		FilePath string `json:"filePath,omitempty"`
		Message  string `json:"message"`
	} `json:"data"`
}
