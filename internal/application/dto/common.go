package dto

import (
	"github.com/go-playground/validator/v10"
)

// instancia única del validador de requests; las reglas sobre cantidades
// decimales viven en los casos de uso (el validador no conoce decimal.Decimal).
var validate = validator.New()

// Validate aplica las etiquetas `validate` de un request en la frontera HTTP.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
