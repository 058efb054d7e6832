package client

import (
	"context"
	"io"
	"net/url"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// Admin console CRUD. Every operation here requires an admin credential;
// the server enforces that, the client just forwards the bearer token and
// maps a rejection onto ErrUnauthenticated.

// AdminCreateProfessor creates a professor network entry.
func (c *Client) AdminCreateProfessor(ctx context.Context, profile models.ProfessorProfile) (*models.ProfessorProfile, error) {
	var created models.ProfessorProfile
	err := c.doJSON(ctx, "POST", "/admin/professor-network", nil, profile, func(r io.Reader) error {
		return models.DecodeValid(r, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AdminUpdateProfessor updates a professor network entry.
func (c *Client) AdminUpdateProfessor(ctx context.Context, id string, profile models.ProfessorProfile) (*models.ProfessorProfile, error) {
	var updated models.ProfessorProfile
	err := c.doJSON(ctx, "PUT", "/admin/professor-network/"+url.PathEscape(id), nil, profile, func(r io.Reader) error {
		return models.DecodeValid(r, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AdminDeleteProfessor removes a professor network entry.
func (c *Client) AdminDeleteProfessor(ctx context.Context, id string) error {
	return c.doJSON(ctx, "DELETE", "/admin/professor-network/"+url.PathEscape(id), nil, nil, nil)
}

// AdminCreateVolunteerOpportunity creates a volunteer listing.
func (c *Client) AdminCreateVolunteerOpportunity(ctx context.Context, opp models.VolunteerOpportunity) (*models.VolunteerOpportunity, error) {
	var created models.VolunteerOpportunity
	err := c.doJSON(ctx, "POST", "/admin/volunteer-opportunities", nil, opp, func(r io.Reader) error {
		return models.DecodeValid(r, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AdminUpdateVolunteerOpportunity updates a volunteer listing.
func (c *Client) AdminUpdateVolunteerOpportunity(ctx context.Context, id string, opp models.VolunteerOpportunity) (*models.VolunteerOpportunity, error) {
	var updated models.VolunteerOpportunity
	err := c.doJSON(ctx, "PUT", "/admin/volunteer-opportunities/"+url.PathEscape(id), nil, opp, func(r io.Reader) error {
		return models.DecodeValid(r, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AdminDeleteVolunteerOpportunity removes a volunteer listing.
func (c *Client) AdminDeleteVolunteerOpportunity(ctx context.Context, id string) error {
	return c.doJSON(ctx, "DELETE", "/admin/volunteer-opportunities/"+url.PathEscape(id), nil, nil, nil)
}

// AdminCreateECProfile creates an extracurricular profile entry.
func (c *Client) AdminCreateECProfile(ctx context.Context, profile models.ECProfile) (*models.ECProfile, error) {
	var created models.ECProfile
	err := c.doJSON(ctx, "POST", "/admin/ec-profiles", nil, profile, func(r io.Reader) error {
		return models.DecodeValid(r, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AdminUpdateECProfile updates an extracurricular profile entry.
func (c *Client) AdminUpdateECProfile(ctx context.Context, id string, profile models.ECProfile) (*models.ECProfile, error) {
	var updated models.ECProfile
	err := c.doJSON(ctx, "PUT", "/admin/ec-profiles/"+url.PathEscape(id), nil, profile, func(r io.Reader) error {
		return models.DecodeValid(r, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AdminDeleteECProfile removes an extracurricular profile entry.
func (c *Client) AdminDeleteECProfile(ctx context.Context, id string) error {
	return c.doJSON(ctx, "DELETE", "/admin/ec-profiles/"+url.PathEscape(id), nil, nil, nil)
}

// AdminListPosters returns the poster queue for the admin console,
// optionally filtered by review status.
func (c *Client) AdminListPosters(ctx context.Context, status models.PosterStatus) ([]models.Poster, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var posters []models.Poster
	err := c.doJSON(ctx, "GET", "/admin/posters", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &posters)
	})
	if err != nil {
		return nil, err
	}
	return posters, nil
}
