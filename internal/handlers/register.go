package handlers

import (
	"tgrouter/internal/router"
)

// Register добавляет все роутеры в реестр. Fallback идет последним,
// так как бот вызывает первый подходящий обработчик.
func (h *Handlers) Register(reg *router.Registry) {
	reg.IncludeRouter(h.AdminRouter())
	reg.IncludeRouter(h.UserRouter())
	reg.IncludeRouter(h.FallbackRouter())
}
