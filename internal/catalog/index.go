package catalog

import (
	"sort"
	"strings"

	"portfolio/internal"
	"portfolio/internal/util"
)

// Index groups a fetched page of projects for the gallery filters.
type Index struct {
	Projects     []internal.Project
	ByTechnology map[string][]int

	foldedTitles       []string
	foldedDescriptions []string
}

func BuildIndex(projects []internal.Project) *Index {
	idx := &Index{
		Projects:           projects,
		ByTechnology:       map[string][]int{},
		foldedTitles:       make([]string, len(projects)),
		foldedDescriptions: make([]string, len(projects)),
	}

	for i, p := range projects {
		for _, tech := range p.Technologies {
			idx.ByTechnology[tech] = append(idx.ByTechnology[tech], i)
		}
		idx.foldedTitles[i] = util.Fold(p.Title)
		idx.foldedDescriptions[i] = util.Fold(p.Description)
	}

	return idx
}

// Technologies returns every technology seen, sorted.
func (idx *Index) Technologies() []string {
	out := make([]string, 0, len(idx.ByTechnology))
	for tech := range idx.ByTechnology {
		out = append(out, tech)
	}
	sort.Strings(out)
	return out
}

// Filter keeps projects whose title or description contains search (ignoring
// case) and that list technology exactly. Empty criteria match everything.
// Order of the fetched page is preserved.
func (idx *Index) Filter(search, technology string) []internal.Project {
	needle := util.Fold(strings.TrimSpace(search))
	out := make([]internal.Project, 0, len(idx.Projects))

	for i, p := range idx.Projects {
		if technology != "" && !hasTechnology(p, technology) {
			continue
		}
		if needle != "" && !strings.Contains(idx.foldedTitles[i], needle) && !strings.Contains(idx.foldedDescriptions[i], needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasTechnology(p internal.Project, technology string) bool {
	for _, tech := range p.Technologies {
		if tech == technology {
			return true
		}
	}
	return false
}
