// Package programs holds the fixed table of academy programs a visitor
// can register for, each with its own intake webhook and required-field
// set.
package programs

import (
	"fmt"
	"regexp"

	"github.com/amasacademy/portal/registration-service/internal/domain/models"
)

type Definition struct {
	Slug              string
	Title             string
	WebhookPath       string
	Fee               int
	UniformPrice      int // 0 when the form sells no uniforms
	RequiresGuardian  bool
	RequiresBirthDate bool
	AllowsAttachment  bool
}

// permissive on purpose: the webhook side revalidates addresses.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var table = []Definition{
	{Slug: "matricula", Title: "Matricula regular", WebhookPath: "/webhook/matricula",
		Fee: 150, UniformPrice: 180, RequiresGuardian: true, RequiresBirthDate: true},
	{Slug: "navidad", Title: "Actividad de Navidad", WebhookPath: "/webhook/registro-actividad-navidad",
		Fee: 50, RequiresGuardian: true},
	{Slug: "graduacion", Title: "Graduacion", WebhookPath: "/webhook/graduacion",
		Fee: 80, RequiresBirthDate: true, AllowsAttachment: true},
	{Slug: "verano", Title: "Taller de verano", WebhookPath: "/webhook/taller-verano",
		Fee: 120, UniformPrice: 180, RequiresGuardian: true, RequiresBirthDate: true},
	{Slug: "torneo", Title: "Torneo interno", WebhookPath: "/webhook/torneo-interno",
		Fee: 40},
	{Slug: "examen", Title: "Examen de grado", WebhookPath: "/webhook/examen-grado",
		Fee: 100, AllowsAttachment: true},
}

func All() []Definition {
	out := make([]Definition, len(table))
	copy(out, table)
	return out
}

func Find(slug string) (Definition, bool) {
	for _, def := range table {
		if def.Slug == slug {
			return def, true
		}
	}
	return Definition{}, false
}

// Validate checks the program's required fields before anything goes on
// the wire. Keys in the returned map are payload field names.
func (d Definition) Validate(reg models.Registration) map[string]string {
	fieldErrs := make(map[string]string)
	if reg.NombreAlumno == "" {
		fieldErrs["nombre_alumno"] = "es obligatorio"
	}
	if reg.Telefono == "" {
		fieldErrs["telefono"] = "es obligatorio"
	}
	if reg.Correo == "" {
		fieldErrs["correo"] = "es obligatorio"
	} else if !emailRe.MatchString(reg.Correo) {
		fieldErrs["correo"] = "no es un correo valido"
	}
	if d.RequiresGuardian && reg.NombreApoderado == "" {
		fieldErrs["nombre_apoderado"] = "es obligatorio"
	}
	if d.RequiresBirthDate && reg.FechaNacimiento == "" {
		fieldErrs["fecha_nacimiento"] = "es obligatorio"
	}
	if reg.CantidadUniformes < 0 {
		fieldErrs["cantidad_uniformes"] = "no puede ser negativo"
	}
	if d.UniformPrice > 0 && reg.CantidadUniformes > 0 && reg.TallaUniforme == "" {
		fieldErrs["talla_uniforme"] = "es obligatorio"
	}
	if reg.Adjunto != "" && !d.AllowsAttachment {
		fieldErrs["adjunto"] = "este programa no acepta adjuntos"
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// Total derives the price the webhook payload carries: program fee plus
// any extra uniforms picked on the form.
func (d Definition) Total(reg models.Registration) int {
	return d.Fee + reg.CantidadUniformes*d.UniformPrice
}

func (d Definition) WebhookURL(base string) string {
	return fmt.Sprintf("%s%s", base, d.WebhookPath)
}
