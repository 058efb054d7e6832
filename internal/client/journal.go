package client

import (
	"context"
	"io"
	"net/url"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// ListArticles returns all journal articles.
func (c *Client) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := c.doJSON(ctx, "GET", "/journal/articles", nil, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &articles)
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle returns one article by its identifier (id or slug).
func (c *Client) GetArticle(ctx context.Context, identifier string) (*models.Article, error) {
	var article models.Article
	err := c.doJSON(ctx, "GET", "/journal/article/"+url.PathEscape(identifier), nil, nil, func(r io.Reader) error {
		return models.DecodeValid(r, &article)
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// SubmitArticle creates a journal article record.
func (c *Client) SubmitArticle(ctx context.Context, req models.SubmitArticleRequest) (*models.Article, error) {
	var article models.Article
	err := c.doJSON(ctx, "POST", "/journal/articles", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &article)
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// UploadArticleFile uploads an article manuscript and returns its file
// identifier for use as file_url on submission.
func (c *Client) UploadArticleFile(ctx context.Context, filename string, file io.Reader) (*models.UploadResult, error) {
	return c.uploadFile(ctx, "/journal/articles/upload", filename, file)
}
