package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyperspot/fileparser/internal/parser"
	"github.com/hyperspot/fileparser/internal/pathguard"
	"github.com/hyperspot/fileparser/internal/service"
)

// Problem is the error body shape for all failed requests.
type Problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// problemFor maps the service error taxonomy onto client-facing problems.
// Security and size rejections pass through verbatim, never downgraded or
// remapped to a generic not-found.
func problemFor(err error) Problem {
	var traversal *pathguard.TraversalError
	if errors.As(err, &traversal) {
		return Problem{
			Status: http.StatusForbidden,
			Title:  "Path Traversal Blocked",
			Detail: traversal.Error(),
		}
	}

	var notFound *pathguard.NotFoundError
	if errors.As(err, &notFound) {
		return Problem{
			Status: http.StatusNotFound,
			Title:  "File Not Found",
			Detail: notFound.Error(),
		}
	}

	var tooLarge *service.SizeExceededError
	if errors.As(err, &tooLarge) {
		return Problem{
			Status: http.StatusRequestEntityTooLarge,
			Title:  "File Too Large",
			Detail: tooLarge.Error(),
		}
	}

	var corrupt *parser.CorruptError
	if errors.As(err, &corrupt) {
		return Problem{
			Status: http.StatusUnprocessableEntity,
			Title:  "Unparsable Document",
			Detail: corrupt.Error(),
		}
	}

	return Problem{
		Status: http.StatusInternalServerError,
		Title:  "Internal Server Error",
		Detail: err.Error(),
	}
}

func writeProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

func writeError(w http.ResponseWriter, err error) {
	writeProblem(w, problemFor(err))
}

func badRequest(w http.ResponseWriter, detail string) {
	writeProblem(w, Problem{Status: http.StatusBadRequest, Title: "Bad Request", Detail: detail})
}
