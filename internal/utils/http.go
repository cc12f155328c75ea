package utils

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a named path parameter from the request context.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName(paramName)
}
