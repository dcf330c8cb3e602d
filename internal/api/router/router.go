package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api"
	m "github.com/RoyceAzure/lab/kitchenhub/internal/api/middleware"
	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/token"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Server     *api.Server
	TokenMaker token.Maker
	Resolver   m.IdentityResolver
	Limiter    ratelimit.Limiter
	Logger     *zerolog.Logger
	// TrustProxyHeaders 只在前面有可信任的 proxy 時開啟，否則 X-Forwarded-For 可被偽造
	TrustProxyHeaders bool
}

func SetupRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	server := deps.Server

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	if deps.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(m.AuthPayloadMiddleware(deps.TokenMaker))
	r.Use(m.LoggerMiddleware(deps.Logger))
	r.Use(m.RecoverMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	customerOnly := m.RequireRole(deps.Resolver, model.RoleCustomer)
	ownerOnly := m.RequireRole(deps.Resolver, model.RoleOwner)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(m.RateLimitMiddleware(deps.Limiter))
		}

		r.Post("/customers/register", server.AccountHandler.RegisterCustomer)
		r.Post("/customers/login", server.AccountHandler.Login(model.RoleCustomer))
		r.Post("/owners/register", server.AccountHandler.RegisterOwner)
		r.Post("/owners/login", server.AccountHandler.Login(model.RoleOwner))
		r.Post("/admins/register", server.AccountHandler.RegisterAdmin)
		r.Post("/admins/login", server.AccountHandler.Login(model.RoleAdmin))

		// 顧客
		r.Group(func(r chi.Router) {
			r.Use(customerOnly)
			r.Get("/products", server.ProductHandler.ListProducts)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.ListCart)
				r.Post("/items", server.CartHandler.AddToCart)
				r.Delete("/items/{productID}", server.CartHandler.RemoveFromCart)
				r.Patch("/items/{productID}", server.CartHandler.AdjustQuantity)
			})

			r.Post("/checkout", server.CheckoutHandler.Checkout)
			r.Get("/orders", server.OrderHandler.GetCustomerOrders)
		})

		// 廚房
		r.Route("/owner", func(r chi.Router) {
			r.Use(ownerOnly)
			r.Get("/products", server.ProductHandler.ListOwnerProducts)
			r.Post("/products", server.ProductHandler.AddProduct)
			r.Delete("/products/{productID}", server.ProductHandler.DeleteProduct)

			r.Get("/orders", server.OrderHandler.GetOwnerOrders)
			r.Put("/orders/status", server.OrderHandler.UpdateStatus)
			r.Get("/orders/{orderID}/history", server.OrderHandler.GetStatusHistory)
		})
	})

	return r
}
