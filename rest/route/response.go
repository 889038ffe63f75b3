package route

import (
	"fmt"
	"net/http"

	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

// makeErrorResponder produces an error responder carrying the
// platform's uniform error envelope with the given status code.
func makeErrorResponder(statusCode int, msg string) gimlet.Responder {
	resp := gimlet.NewJSONErrorResponse(model.NewErrorEnvelope(msg))
	if err := resp.SetStatus(statusCode); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "setting response status"))
	}
	return resp
}

func makeNotFoundResponder(entity, id string) gimlet.Responder {
	return makeErrorResponder(http.StatusNotFound, fmt.Sprintf("%s '%s' not found", entity, id))
}

func makeUnauthorizedResponder(msg string) gimlet.Responder {
	return makeErrorResponder(http.StatusUnauthorized, msg)
}

func makeValidationErrorResponder(err error) gimlet.Responder {
	return makeErrorResponder(http.StatusBadRequest, err.Error())
}

func makeInternalErrorResponder(err error) gimlet.Responder {
	return makeErrorResponder(http.StatusInternalServerError, err.Error())
}

// makeCreatedResponder wraps a newly-created entity; creation always
// responds 201.
func makeCreatedResponder(data any) gimlet.Responder {
	resp := gimlet.NewJSONResponse(model.NewDataEnvelope(data))
	if err := resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "setting response status"))
	}
	return resp
}
