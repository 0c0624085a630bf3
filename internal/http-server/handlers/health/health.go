package health

import (
	"bookmyslot/internal/lib/api/response"
	"github.com/go-chi/render"
	"net/http"
)

// New reports that the frontend process is serving. It does not call the
// booking API.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	}
}
