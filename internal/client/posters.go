package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// ListPosters returns posters filtered server-side by status and university.
// Both filters are optional; empty values are omitted from the query.
func (c *Client) ListPosters(ctx context.Context, status models.PosterStatus, university string) ([]models.Poster, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if university != "" {
		query.Set("university", university)
	}

	var posters []models.Poster
	err := c.doJSON(ctx, "GET", "/posters", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &posters)
	})
	if err != nil {
		return nil, err
	}
	return posters, nil
}

// SubmitPoster creates a poster record. The PosterURL field must carry the
// file identifier returned by UploadPosterFile; if the record creation
// fails after a successful upload, no compensating delete is attempted —
// the orphaned file is accepted and left to server-side cleanup.
func (c *Client) SubmitPoster(ctx context.Context, req models.SubmitPosterRequest) (*models.Poster, error) {
	var poster models.Poster
	err := c.doJSON(ctx, "POST", "/posters", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &poster)
	})
	if err != nil {
		return nil, err
	}
	return &poster, nil
}

// UploadPosterFile uploads the poster file via multipart form and returns
// the file identifier to use as poster_url on submission.
func (c *Client) UploadPosterFile(ctx context.Context, filename string, file io.Reader) (*models.UploadResult, error) {
	return c.uploadFile(ctx, "/posters/upload", filename, file)
}

// ReviewPoster sets the review status of a poster (admin only).
func (c *Client) ReviewPoster(ctx context.Context, posterID string, req models.ReviewPosterRequest) (*models.Poster, error) {
	var poster models.Poster
	err := c.doJSON(ctx, "PUT", "/posters/"+url.PathEscape(posterID)+"/review", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &poster)
	})
	if err != nil {
		return nil, err
	}
	return &poster, nil
}

// DeletePoster removes a poster (admin or owner).
func (c *Client) DeletePoster(ctx context.Context, posterID string) error {
	return c.doJSON(ctx, "DELETE", "/posters/"+url.PathEscape(posterID), nil, nil, nil)
}

// uploadFile sends a multipart upload to path with the file under the
// "file" form field and decodes the UploadResult. The whole payload is
// buffered before sending; poster and article files are small enough that
// streaming would buy nothing.
func (c *Client) uploadFile(ctx context.Context, path, filename string, file io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("client: creating multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("client: buffering upload %q: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("client: finalizing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, "POST", path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result models.UploadResult
	err = c.execute(req, func(r io.Reader) error {
		return models.DecodeValid(r, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
