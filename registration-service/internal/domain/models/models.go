package models

import "time"

// Registration is the normalized payload every program webhook receives.
// The receiving automation flows expect Spanish snake_case keys; one
// shared schema replaces the per-form ad hoc field names the old site
// accumulated.
type Registration struct {
	Programa          string    `json:"programa"`
	NombreAlumno      string    `json:"nombre_alumno"`
	NombreApoderado   string    `json:"nombre_apoderado,omitempty"`
	FechaNacimiento   string    `json:"fecha_nacimiento,omitempty"`
	Correo            string    `json:"correo"`
	Telefono          string    `json:"telefono"`
	TallaUniforme     string    `json:"talla_uniforme,omitempty"`
	CantidadUniformes int       `json:"cantidad_uniformes,omitempty"`
	Comentario        string    `json:"comentario,omitempty"`
	Adjunto           string    `json:"adjunto,omitempty"`
	Total             int       `json:"total"`
	EnviadoEn         time.Time `json:"enviado_en"`
}
