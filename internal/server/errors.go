package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-studio/internal/compile"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/templates"
)

// HTTPStatus maps domain errors to response codes. Validation rejections are
// 422 so clients can show them as inline hints; collaborator failures are 502.
func HTTPStatus(err error) int {
	var (
		lastVisible *layout.ErrLastVisibleSection
		unknownSec  *layout.ErrUnknownSection
		invalidOpt  *layout.ErrInvalidOption
		badOrder    *overrides.ErrOrderNotPermutation
		emptyName   *templates.ErrEmptyName
		notFound    *templates.ErrTemplateNotFound
		builtIn     *templates.ErrBuiltInImmutable
		noVariation *session.ErrNoVariation
		noContent   *session.ErrNoContent
		compileErr  *compile.CompilationError
		decodeErr   *compile.DecodeError
	)

	switch {
	case errors.As(err, &lastVisible),
		errors.As(err, &unknownSec),
		errors.As(err, &invalidOpt),
		errors.As(err, &badOrder),
		errors.As(err, &emptyName):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound), errors.As(err, &noVariation):
		return http.StatusNotFound
	case errors.As(err, &builtIn):
		return http.StatusConflict
	case errors.As(err, &noContent):
		return http.StatusPreconditionFailed
	case errors.As(err, &compileErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
