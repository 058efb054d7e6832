package client

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// ECProfileFilter carries the server-side filters of the EC profile list.
type ECProfileFilter struct {
	Category   string
	University string
	Search     string
}

// ListECProfiles returns extracurricular profiles matching the filter.
func (c *Client) ListECProfiles(ctx context.Context, filter ECProfileFilter) ([]models.ECProfile, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.University != "" {
		query.Set("university", filter.University)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var profiles []models.ECProfile
	err := c.doJSON(ctx, "GET", "/ec-profiles", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &profiles)
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ECStats returns the aggregate statistics of the EC profile collection.
func (c *Client) ECStats(ctx context.Context) (*models.ECStats, error) {
	var stats models.ECStats
	err := c.doJSON(ctx, "GET", "/ec-profiles/stats", nil, nil, func(r io.Reader) error {
		return models.DecodeValid(r, &stats)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProfessorFilter carries the server-side filters of the professor network.
type ProfessorFilter struct {
	University   string
	Department   string
	ResearchArea string
}

// ListProfessors returns professor network entries matching the filter.
func (c *Client) ListProfessors(ctx context.Context, filter ProfessorFilter) ([]models.ProfessorProfile, error) {
	query := url.Values{}
	if filter.University != "" {
		query.Set("university", filter.University)
	}
	if filter.Department != "" {
		query.Set("department", filter.Department)
	}
	if filter.ResearchArea != "" {
		query.Set("research_area", filter.ResearchArea)
	}

	var professors []models.ProfessorProfile
	err := c.doJSON(ctx, "GET", "/professor-network", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &professors)
	})
	if err != nil {
		return nil, err
	}
	return professors, nil
}

// StudentFilter carries the server-side filters of the student directory.
type StudentFilter struct {
	University string
	Program    string
	Year       int
}

// ListStudents returns student network entries matching the filter.
func (c *Client) ListStudents(ctx context.Context, filter StudentFilter) ([]models.StudentProfile, error) {
	query := url.Values{}
	if filter.University != "" {
		query.Set("university", filter.University)
	}
	if filter.Program != "" {
		query.Set("program", filter.Program)
	}
	if filter.Year > 0 {
		query.Set("year", strconv.Itoa(filter.Year))
	}

	var students []models.StudentProfile
	err := c.doJSON(ctx, "GET", "/student-network", query, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &students)
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// ListVolunteerOpportunities returns the complete volunteer listing in one
// unfiltered fetch. Filtering is done client-side over this snapshot (see
// listing.VolunteerBoard); the asymmetry with the other directory views is
// deliberate.
func (c *Client) ListVolunteerOpportunities(ctx context.Context) ([]models.VolunteerOpportunity, error) {
	var opportunities []models.VolunteerOpportunity
	err := c.doJSON(ctx, "GET", "/volunteer-opportunities", nil, nil, func(r io.Reader) error {
		return models.DecodeValidSlice(r, &opportunities)
	})
	if err != nil {
		return nil, err
	}
	return opportunities, nil
}
