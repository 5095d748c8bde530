package catalog

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"portfolio/internal"
	"portfolio/internal/util"
)

// Upstream key spellings, consulted in order. The first non-empty value wins.
var (
	idKeys               = []string{"id", "uuid", "slug", "pk", "projectId"}
	titleKeys            = []string{"title", "name", "project_title"}
	descriptionKeys      = []string{"description", "fullDescription", "details"}
	shortDescriptionKeys = []string{"shortDescription", "short_description", "summary"}
	previewImageKeys     = []string{"previewImage", "preview_image", "preview", "cover", "image", "thumbnail"}
	galleryKeys          = []string{"images", "gallery", "photos", "media"}
	galleryEntryKeys     = []string{"url", "image", "src", "path"}
	technologyKeys       = []string{"technologies", "tech_stack", "stack", "tags", "tech"}
	technologyEntryKeys  = []string{"name", "title", "label", "slug"}
	demoURLKeys          = []string{"demoUrl", "demo_url", "demo", "link", "url"}
	reviewKeys           = []string{"clientReview", "client_review", "review"}
	reviewNameKeys       = []string{"name", "author", "client", "customer"}
	reviewTextKeys       = []string{"text", "comment", "body", "message"}
	reviewRatingKeys     = []string{"rating", "score"}
)

// envelopeShape describes one pagination convention of the list endpoint.
type envelopeShape struct {
	listKey   string
	totalKeys []string
	pageKeys  []string
	limitKeys []string
}

// Checked in order; only the first shape whose list key holds an array is used.
var envelopeShapes = []envelopeShape{
	{listKey: "projects", totalKeys: []string{"total"}, pageKeys: []string{"page"}, limitKeys: []string{"limit"}},
	{listKey: "results", totalKeys: []string{"count", "total"}, pageKeys: []string{"page"}, limitKeys: []string{"page_size", "limit"}},
	{listKey: "data", totalKeys: []string{"total"}, pageKeys: []string{"page"}, limitKeys: []string{"limit"}},
}

// Normalizer maps loosely shaped API payloads onto the canonical project model.
// It holds only immutable configuration and is safe for concurrent use.
type Normalizer struct {
	baseURL string
	origin  string
}

func NewNormalizer(baseURL string) *Normalizer {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Normalizer{baseURL: base, origin: apiOrigin(base)}
}

// Origin returns the API origin used for root-relative assets, or "".
func (n *Normalizer) Origin() string {
	return n.origin
}

// DecodeJSON decodes a payload keeping numbers as json.Number.
func DecodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseProject normalizes a raw single-project body. Invalid JSON yields a placeholder.
func (n *Normalizer) ParseProject(body []byte) internal.Project {
	raw, _ := DecodeJSON(body)
	return n.NormalizeProject(raw)
}

// ParseProjectsResponse normalizes a raw list body. Invalid JSON yields the fallback response.
func (n *Normalizer) ParseProjectsResponse(body []byte, params internal.ProjectsQueryParams) internal.ProjectsResponse {
	raw, _ := DecodeJSON(body)
	return n.NormalizeProjectsResponse(raw, params)
}

func (n *Normalizer) NormalizeProject(raw any) internal.Project {
	rec, ok := asRecord(raw)
	if !ok {
		return placeholderProject()
	}

	project := internal.Project{
		ID:               resolveID(rec),
		Title:            firstString(rec, titleKeys),
		Description:      firstString(rec, descriptionKeys),
		ShortDescription: firstString(rec, shortDescriptionKeys),
		Technologies:     collectTechnologies(rec),
		DemoURL:          firstString(rec, demoURLKeys),
	}
	if project.Title == "" {
		project.Title = internal.DefaultTitle
	}
	if project.Description == "" {
		project.Description = internal.DefaultDescription
	}

	images := n.collectImages(rec)
	project.PreviewImage = images[0]
	if len(images) > 1 {
		project.Images = images
	}

	if review, ok := firstRecord(rec, reviewKeys); ok {
		project.ClientReview = normalizeClientReview(review)
	}

	return project
}

func (n *Normalizer) NormalizeProjectsResponse(data any, params internal.ProjectsQueryParams) internal.ProjectsResponse {
	fallback := FallbackResponse(params)

	if items, ok := asList(data); ok {
		projects := n.normalizeAll(items)
		return internal.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
			Page:     fallback.Page,
			Limit:    fallback.Limit,
		}
	}

	rec, ok := asRecord(data)
	if !ok {
		return fallback
	}
	for _, shape := range envelopeShapes {
		items, ok := asList(rec[shape.listKey])
		if !ok {
			continue
		}
		projects := n.normalizeAll(items)
		return internal.ProjectsResponse{
			Projects: projects,
			Total:    intOrFallback(rec, shape.totalKeys, len(projects)),
			Page:     intOrFallback(rec, shape.pageKeys, fallback.Page),
			Limit:    intOrFallback(rec, shape.limitKeys, fallback.Limit),
		}
	}
	return fallback
}

// FallbackResponse is the empty list returned when nothing usable came back,
// echoing the requested page and limit.
func FallbackResponse(params internal.ProjectsQueryParams) internal.ProjectsResponse {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = internal.DefaultProjectsLimit
	}
	return internal.ProjectsResponse{Projects: []internal.Project{}, Total: 0, Page: page, Limit: limit}
}

func (n *Normalizer) normalizeAll(items []any) []internal.Project {
	out := make([]internal.Project, 0, len(items))
	for _, item := range items {
		out = append(out, n.NormalizeProject(item))
	}
	return out
}

func placeholderProject() internal.Project {
	return internal.Project{
		ID:           generateFallbackID(),
		Title:        internal.DefaultTitle,
		Description:  internal.DefaultDescription,
		PreviewImage: internal.DefaultProjectImage,
		Technologies: []string{},
	}
}

func resolveID(rec map[string]any) string {
	for _, key := range idKeys {
		if id := toID(rec[key]); id != "" {
			return id
		}
	}
	return generateFallbackID()
}

func generateFallbackID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return "project-" + randomToken(8)
}

func randomToken(length int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// collectImages gathers the preview candidate and every gallery entry,
// resolved and deduplicated. The result is never empty.
func (n *Normalizer) collectImages(rec map[string]any) []string {
	images := make([]string, 0)
	images = util.AppendUnique(images, n.ResolveAssetURL(firstString(rec, previewImageKeys)))

	for _, key := range galleryKeys {
		items, ok := asList(rec[key])
		if !ok {
			continue
		}
		for _, item := range items {
			candidate := toString(item)
			if entry, ok := asRecord(item); ok {
				candidate = firstString(entry, galleryEntryKeys)
			}
			images = util.AppendUnique(images, n.ResolveAssetURL(candidate))
		}
	}

	if len(images) == 0 {
		images = append(images, internal.DefaultProjectImage)
	}
	return images
}

func collectTechnologies(rec map[string]any) []string {
	out := make([]string, 0)
	for _, key := range technologyKeys {
		switch source := rec[key].(type) {
		case string:
			out = util.AppendUnique(out, util.SplitList(source)...)
		default:
			items, ok := asList(source)
			if !ok {
				continue
			}
			for _, item := range items {
				out = util.AppendUnique(out, normalizeTechnology(item))
			}
		}
	}
	return out
}

func normalizeTechnology(v any) string {
	if entry, ok := asRecord(v); ok {
		return firstString(entry, technologyEntryKeys)
	}
	return toString(v)
}

func normalizeClientReview(review map[string]any) *internal.ClientReview {
	name := firstString(review, reviewNameKeys)
	text := firstString(review, reviewTextKeys)
	if name == "" && text == "" {
		return nil
	}
	rating, _ := firstFloat(review, reviewRatingKeys)
	return &internal.ClientReview{Name: name, Text: text, Rating: rating}
}
