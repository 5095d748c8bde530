package catalog

import (
	"context"

	"portfolio/internal"
)

const (
	FeaturedLimit     = 12
	FeaturedSlideSize = 3
	GalleryLimit      = 50
)

// ProjectSource is what the service needs from the remote API.
type ProjectSource interface {
	GetProjects(ctx context.Context, params internal.ProjectsQueryParams) (internal.ProjectsResponse, error)
	GetProject(ctx context.Context, id string) (*internal.Project, error)
}

type Service struct {
	source ProjectSource
}

func NewService(source ProjectSource) *Service {
	return &Service{source: source}
}

// GalleryPage is one rendering of the projects gallery.
type GalleryPage struct {
	Projects     []internal.Project
	Technologies []string
	Counts       map[string]int
	Total        int
	Search       string
	Technology   string
}

func (g GalleryPage) Filtered() bool {
	return g.Search != "" || g.Technology != ""
}

// Featured returns up to FeaturedLimit projects grouped into slides.
func (s *Service) Featured(ctx context.Context) ([][]internal.Project, error) {
	resp, err := s.source.GetProjects(ctx, internal.ProjectsQueryParams{Limit: FeaturedLimit})
	return Chunk(resp.Projects, FeaturedSlideSize), err
}

// Browse fetches the gallery with the filters passed upstream and applies them
// again locally, since the API may ignore them.
func (s *Service) Browse(ctx context.Context, search, technology string) (GalleryPage, error) {
	resp, err := s.source.GetProjects(ctx, internal.ProjectsQueryParams{
		Limit:      GalleryLimit,
		Search:     search,
		Technology: technology,
	})

	idx := BuildIndex(resp.Projects)
	counts := make(map[string]int, len(idx.ByTechnology))
	for tech, positions := range idx.ByTechnology {
		counts[tech] = len(positions)
	}

	return GalleryPage{
		Projects:     idx.Filter(search, technology),
		Technologies: idx.Technologies(),
		Counts:       counts,
		Total:        resp.Total,
		Search:       search,
		Technology:   technology,
	}, err
}

// Project returns nil without error when the project does not exist.
func (s *Service) Project(ctx context.Context, id string) (*internal.Project, error) {
	return s.source.GetProject(ctx, id)
}

// Chunk splits projects into consecutive groups of size.
func Chunk(projects []internal.Project, size int) [][]internal.Project {
	if size <= 0 || len(projects) == 0 {
		return [][]internal.Project{}
	}
	out := make([][]internal.Project, 0, (len(projects)+size-1)/size)
	for start := 0; start < len(projects); start += size {
		end := min(start+size, len(projects))
		out = append(out, projects[start:end])
	}
	return out
}
