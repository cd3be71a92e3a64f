package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cartctrl "littlelemon/internal/cart/controller"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
	identityctrl "littlelemon/internal/identity/controller"
	menuctrl "littlelemon/internal/menu/controller"
	orderctrl "littlelemon/internal/order/controller"
	userctrl "littlelemon/internal/user/controller"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Register          *userctrl.RegisterController
	Tokens            *identityctrl.TokenController
	Menu              *menuctrl.MenuController
	Cart              *cartctrl.CartController
	Orders            *orderctrl.OrderController
	ManagerGroup      *userctrl.GroupController
	DeliveryCrewGroup *userctrl.GroupController
}

func NewRouter(h Handlers, auth identity.Authenticator, db Pinger, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(Recovery(logger))

	r.Get("/health", health(db, logger))

	r.Group(func(r chi.Router) {
		r.Use(identity.Middleware(auth, logger))

		r.Post("/register", h.Register.Register)
		r.Post("/token/login", h.Tokens.Login)
		r.Post("/token/logout", h.Tokens.Logout)

		r.Get("/categories", h.Menu.ListCategories)
		r.Post("/categories", h.Menu.CreateCategory)

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", h.Menu.ListItems)
			r.Post("/", h.Menu.CreateItem)
			r.Get("/{menuItemId}", h.Menu.GetItem)
			r.Put("/{menuItemId}", h.Menu.ReplaceItem)
			r.Patch("/{menuItemId}", h.Menu.PatchItem)
			r.Delete("/{menuItemId}", h.Menu.DeleteItem)
		})

		r.Route("/cart/menu-items", func(r chi.Router) {
			r.Get("/", h.Cart.List)
			r.Post("/", h.Cart.Add)
			r.Delete("/", h.Cart.Clear)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Post("/", h.Orders.Create)
			r.Get("/{orderId}", h.Orders.Get)
			r.Patch("/{orderId}", h.Orders.Update)
			r.Delete("/{orderId}", h.Orders.Delete)
		})

		mountGroup(r, "/groups/manager/users", h.ManagerGroup)
		mountGroup(r, "/groups/delivery-crew/users", h.DeliveryCrewGroup)
	})

	return r
}

func mountGroup(r chi.Router, path string, c *userctrl.GroupController) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Add)
		r.Delete("/{userId}", c.Remove)
	})
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			httpx.WriteJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
