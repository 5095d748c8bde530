package internal

const (
	DefaultProjectsLimit = 12
	DefaultProjectImage  = "https://placehold.co/600x400?text=Project"
	DefaultTitle         = "Без названия"
	DefaultDescription   = "Описание будет добавлено позже."
)

type ClientReview struct {
	Name   string  `json:"name"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

type Project struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"shortDescription,omitempty"`
	PreviewImage     string        `json:"previewImage"`
	Images           []string      `json:"images,omitempty"`
	Technologies     []string      `json:"technologies"`
	DemoURL          string        `json:"demoUrl,omitempty"`
	ClientReview     *ClientReview `json:"clientReview,omitempty"`
}

// Gallery returns the images to show on a detail page: the full gallery when
// present, otherwise just the preview.
func (p Project) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	return []string{p.PreviewImage}
}

type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// ProjectsQueryParams mirrors the list endpoint's query string. Zero values are unset.
type ProjectsQueryParams struct {
	Page       int
	Limit      int
	Technology string
	Search     string
}

type OrderMode string

type SocialNetwork string

const (
	OrderFull   OrderMode = "full"
	OrderSimple OrderMode = "simple"

	SocialTelegram SocialNetwork = "telegram"
	SocialWhatsApp SocialNetwork = "whatsapp"
)

type OrderRequest struct {
	Mode          OrderMode
	ProjectIdea   string
	Contacts      string
	Name          string
	SocialNetwork SocialNetwork
	SocialContact string
}
