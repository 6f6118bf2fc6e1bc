package handlers

import (
	"net/http"

	"github.com/T14g/react-tdd/internal/models"
	"github.com/T14g/react-tdd/internal/transport"
)

func (s *Server) GetServices(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"services": models.SelectableServices,
	})
}
