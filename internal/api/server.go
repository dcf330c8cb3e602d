package api

import "github.com/RoyceAzure/lab/kitchenhub/internal/api/handler"

type Server struct {
	AccountHandler  *handler.AccountHandler
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
}

func NewServer(
	accountHandler *handler.AccountHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		AccountHandler:  accountHandler,
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
		OrderHandler:    orderHandler,
	}
}
