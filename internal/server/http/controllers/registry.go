package controllers

import (
	"github.com/go-chi/chi/v5"

	"github.com/lyle8341/flake/internal/runtime"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general *GeneralController
	ids     *IDsController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, svc *idsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt),
		ids:     NewIDsController(svc),
	}
}

// RegisterAllRoutes registers all controller routes with the given router.
func (r *ControllerRegistry) RegisterAllRoutes(router chi.Router) {
	r.general.RegisterRoutes(router)
	r.ids.RegisterRoutes(router)
}
