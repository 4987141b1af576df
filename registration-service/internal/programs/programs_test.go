package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amasacademy/portal/registration-service/internal/domain/models"
)

func validRegistration() models.Registration {
	return models.Registration{
		NombreAlumno:    "Luis Paredes",
		NombreApoderado: "Carmen Paredes",
		FechaNacimiento: "2014-03-09",
		Correo:          "carmen@example.com",
		Telefono:        "+51 999 111 222",
	}
}

func TestFindKnownPrograms(t *testing.T) {
	for _, def := range All() {
		found, ok := Find(def.Slug)
		assert.True(t, ok)
		assert.Equal(t, def.Title, found.Title)
	}

	_, ok := Find("yoga")
	assert.False(t, ok)
}

func TestValidateRequiredFields(t *testing.T) {
	def, _ := Find("matricula")

	errs := def.Validate(models.Registration{})
	assert.Contains(t, errs, "nombre_alumno")
	assert.Contains(t, errs, "nombre_apoderado")
	assert.Contains(t, errs, "fecha_nacimiento")
	assert.Contains(t, errs, "correo")
	assert.Contains(t, errs, "telefono")

	assert.Nil(t, def.Validate(validRegistration()))
}

func TestValidateEmailShape(t *testing.T) {
	def, _ := Find("torneo")
	reg := validRegistration()

	for _, bad := range []string{"sin-arroba", "dos@arro@bas", "con espacios@mail.com", "sinpunto@mail"} {
		reg.Correo = bad
		errs := def.Validate(reg)
		assert.Contains(t, errs, "correo", "correo %q should be rejected", bad)
	}

	// permissive: anything user@host.tld shaped passes
	reg.Correo = "x@y.z"
	assert.Nil(t, def.Validate(reg))
}

func TestValidateProgramSpecificRules(t *testing.T) {
	reg := validRegistration()

	// torneo needs no guardian or birth date
	torneo, _ := Find("torneo")
	assert.Nil(t, torneo.Validate(models.Registration{
		NombreAlumno: "Luis", Correo: "l@p.com", Telefono: "999",
	}))

	// uniform quantity without a size
	matricula, _ := Find("matricula")
	reg.CantidadUniformes = 2
	errs := matricula.Validate(reg)
	assert.Contains(t, errs, "talla_uniforme")

	reg.TallaUniforme = "M"
	assert.Nil(t, matricula.Validate(reg))

	reg.CantidadUniformes = -1
	errs = matricula.Validate(reg)
	assert.Contains(t, errs, "cantidad_uniformes")

	// attachments only where the program allows them
	reg = validRegistration()
	reg.Adjunto = "data:image/png;base64,aGk="
	errs = matricula.Validate(reg)
	assert.Contains(t, errs, "adjunto")

	examen, _ := Find("examen")
	assert.Nil(t, examen.Validate(reg))
}

func TestTotalDerivedFromFeeAndUniforms(t *testing.T) {
	matricula, _ := Find("matricula")
	assert.Equal(t, 150, matricula.Total(models.Registration{}))
	assert.Equal(t, 150+2*180, matricula.Total(models.Registration{CantidadUniformes: 2}))

	// programs without uniforms ignore the quantity
	torneo, _ := Find("torneo")
	assert.Equal(t, 40, torneo.Total(models.Registration{CantidadUniformes: 3}))
}

func TestWebhookURL(t *testing.T) {
	navidad, _ := Find("navidad")
	assert.Equal(t,
		"https://hooks.amasacademy.com/webhook/registro-actividad-navidad",
		navidad.WebhookURL("https://hooks.amasacademy.com"))
}
