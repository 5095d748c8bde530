package web

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio/internal"
)

const (
	msgRequired    = "Обязательное поле"
	msgTooLong     = "Слишком длинное значение"
	msgBadNetwork  = "Выберите Телеграм или Ватсап"
	maxIdeaLength  = 5000
	maxFieldLength = 500
)

type orderPage struct {
	Form    internal.OrderRequest
	Errors  map[string]string
	Success bool
}

// OrderForm handles GET /order
func (h *Handler) OrderForm(w http.ResponseWriter, r *http.Request) {
	form := internal.OrderRequest{
		Mode:          parseOrderMode(r.URL.Query().Get("mode")),
		SocialNetwork: internal.SocialTelegram,
	}
	h.render(w, r, http.StatusOK, "order", view{Title: "Заказать проект", Data: orderPage{Form: form}})
}

// SubmitOrder handles POST /order. Leads are only logged; nothing is stored.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Некорректные данные формы")
		return
	}

	form := internal.OrderRequest{
		Mode:          parseOrderMode(r.PostForm.Get("mode")),
		ProjectIdea:   strings.TrimSpace(r.PostForm.Get("projectIdea")),
		Contacts:      strings.TrimSpace(r.PostForm.Get("contacts")),
		Name:          strings.TrimSpace(r.PostForm.Get("name")),
		SocialNetwork: internal.SocialNetwork(strings.TrimSpace(r.PostForm.Get("socialNetwork"))),
		SocialContact: strings.TrimSpace(r.PostForm.Get("socialContact")),
	}
	if form.SocialNetwork == "" {
		form.SocialNetwork = internal.SocialTelegram
	}

	if errs := ValidateOrder(form); len(errs) > 0 {
		h.render(w, r, http.StatusUnprocessableEntity, "order", view{
			Title: "Заказать проект",
			Data:  orderPage{Form: form, Errors: errs},
		})
		return
	}

	if h.submitDelay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(h.submitDelay):
		}
	}

	h.logger.Info("order received",
		"mode", form.Mode,
		"network", form.SocialNetwork,
		"idea_chars", utf8.RuneCountInString(form.ProjectIdea),
	)
	h.render(w, r, http.StatusOK, "order", view{
		Title: "Заказать проект",
		Data:  orderPage{Form: internal.OrderRequest{Mode: form.Mode, SocialNetwork: internal.SocialTelegram}, Success: true},
	})
}

// ValidateOrder returns field name to message for every problem found.
func ValidateOrder(form internal.OrderRequest) map[string]string {
	errs := map[string]string{}
	check := func(field, value string, limit int) {
		switch {
		case value == "":
			errs[field] = msgRequired
		case utf8.RuneCountInString(value) > limit:
			errs[field] = msgTooLong
		}
	}

	switch form.Mode {
	case internal.OrderSimple:
		check("name", form.Name, maxFieldLength)
		check("socialContact", form.SocialContact, maxFieldLength)
		if form.SocialNetwork != internal.SocialTelegram && form.SocialNetwork != internal.SocialWhatsApp {
			errs["socialNetwork"] = msgBadNetwork
		}
	default:
		check("projectIdea", form.ProjectIdea, maxIdeaLength)
		check("contacts", form.Contacts, maxFieldLength)
	}
	return errs
}

func parseOrderMode(raw string) internal.OrderMode {
	if internal.OrderMode(strings.TrimSpace(raw)) == internal.OrderSimple {
		return internal.OrderSimple
	}
	return internal.OrderFull
}
