package retort

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Project is a workspace on the service that submissions are recorded
// against.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Attempt is one recorded submission within a project.
type Attempt struct {
	ID        string `json:"id,omitempty"`
	CreatedOn int64  `json:"createdOn,omitempty"`
	Status    string `json:"status,omitempty"`
}

// CreateProject creates a project and selects it on this client, so
// subsequent project-scoped submissions use it without an explicit
// SetProject call.
func (c *Client) CreateProject(ctx context.Context, name string, invitations ...string) (*Project, error) {
	if name == "" {
		return nil, validationError("project name required")
	}
	if invitations == nil {
		invitations = []string{}
	}

	req := &Request{
		Method: "POST",
		Path:   "projects",
		Body: map[string]any{
			"name":        name,
			"invitations": invitations,
		},
		Family: FamilyProject,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	project, err := decodePayload[Project](c, req, body)
	if err != nil {
		return nil, err
	}
	c.SetProject(project.ID)
	return &project, nil
}

// ListProjects returns all projects visible to the API key.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	req := &Request{
		Method: "GET",
		Path:   "projects",
		Family: FamilyProject,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	listing, err := decodePayload[struct {
		Content []Project `json:"content,omitempty"`
	}](c, req, body)
	if err != nil {
		return nil, err
	}
	return listing.Content, nil
}

// ListAttempts returns one page of the selected project's attempts sorted
// by creation date.
func (c *Client) ListAttempts(ctx context.Context, page, size int, ascending bool) ([]Attempt, error) {
	if err := c.requireProject(); err != nil {
		return nil, err
	}
	if page < 0 || size <= 0 {
		return nil, validationError("page must be >= 0 and size > 0")
	}

	order := "DESC"
	if ascending {
		order = "ASC"
	}
	req := &Request{
		Method: "GET",
		Path:   fmt.Sprintf("projects/%s/attempts", c.projectID),
		Query: url.Values{
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(size)},
			"sort": {"createdOn|" + order},
		},
		Family: FamilyProject,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	listing, err := decodePayload[struct {
		Content []Attempt `json:"content,omitempty"`
	}](c, req, body)
	if err != nil {
		return nil, err
	}
	return listing.Content, nil
}
