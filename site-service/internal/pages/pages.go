// Package pages maps request paths onto the fixed set of site pages.
// The static host serves one bundle for every path, so unmatched paths
// land on home instead of a 404.
package pages

import "net/url"

type Page string

const (
	Home       Page = "home"
	Tienda     Page = "tienda"
	Perfil     Page = "perfil"
	Login      Page = "login"
	Matricula  Page = "matricula"
	Navidad    Page = "registro-actividad-navidad"
	Graduacion Page = "graduacion"
	Verano     Page = "taller-verano"
	Torneo     Page = "torneo-interno"
	Examen     Page = "examen-grado"
)

// HeaderOffsetPx compensates for the sticky header when the client
// scrolls to a section anchor.
const HeaderOffsetPx = 90

var table = map[string]Page{
	"/":           Home,
	"/tienda":     Tienda,
	"/perfil":     Perfil,
	"/login":      Login,
	"/matricula":  Matricula,
	"/navidad":    Navidad,
	"/graduacion": Graduacion,
	"/verano":     Verano,
	"/torneo":     Torneo,
	"/examen":     Examen,
}

// Resolution is what the client needs to render: which page to show,
// the canonical path for the history entry, and an optional section to
// scroll to once that section has mounted.
type Resolution struct {
	Page         Page   `json:"page"`
	Path         string `json:"path"`
	Section      string `json:"section,omitempty"`
	HeaderOffset int    `json:"header_offset"`
}

// Resolve matches a path against the page table. A redirect query
// parameter wins over the request path; the static host rewrites
// unknown URLs to /?redirect=<original> and the original path must be
// restored before matching.
func Resolve(path string, query url.Values) Resolution {
	if redirect := query.Get("redirect"); redirect != "" {
		if u, err := url.Parse(redirect); err == nil && u.Path != "" {
			path = u.Path
			if u.RawQuery != "" {
				if inner, err := url.ParseQuery(u.RawQuery); err == nil && inner.Get("section") != "" {
					query = inner
				}
			}
		}
	}

	page, ok := table[path]
	if !ok {
		page = Home
		path = "/"
	}
	return Resolution{
		Page:         page,
		Path:         path,
		Section:      query.Get("section"),
		HeaderOffset: HeaderOffsetPx,
	}
}
