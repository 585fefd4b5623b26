package http

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apierrors "subpix/internal/errors"
)

// validate is the shared struct validator. Error messages use JSON field
// names so they line up with what the caller sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts a validator error into the API envelope.
func validationError(err error) *apierrors.APIError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return apierrors.ErrValidation(first.Field(), "failed on rule "+first.Tag())
	}
	return apierrors.InvalidRequestWithError(err)
}

// urlUUID parses the {id} URL parameter.
func urlUUID(r *http.Request) (uuid.UUID, *apierrors.APIError) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apierrors.ErrValidation("id", "must be a UUID")
	}
	return id, nil
}

// renderError writes an APIError, falling back to 500 for unknown errors.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		render.Render(w, r, apiErr)
		return
	}
	render.Render(w, r, apierrors.InternalError(err))
}
