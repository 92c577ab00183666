package session

import (
	"context"
	"errors"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/cart"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/validation"
	"pos-terminal/internal/service/catalog"
)

func (s *Service) ViewCart(sessionID string) *types.Response {
	session, err := s.Load(sessionID)
	if err != nil {
		return s.loadError(err)
	}
	return cartResponse(session, "")
}

func (s *Service) AddToCart(sessionID string, req *AddToCartRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	session, err := s.Load(sessionID)
	if err != nil {
		return s.loadError(err)
	}

	ctx, cancel := context.WithTimeout(s.ctx, warmTimeout)
	defer cancel()
	item, err := s.catalog.FindItem(ctx, session.Auth.Token, req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Item not found", Error: err})
		}
		return backend.ErrorResponse(err, "Failed to load item")
	}

	session, err = s.Mutate(sessionID, func(session *types.Session) error {
		session.EnsureCart().Add(cart.Item{ItemID: item.ItemID, Name: item.Name, Price: item.Price})
		return nil
	})
	if err != nil {
		return s.loadError(err)
	}
	return cartResponse(session, item.Name+" added to cart")
}

func (s *Service) RemoveFromCart(sessionID, itemID string) *types.Response {
	session, err := s.Mutate(sessionID, func(session *types.Session) error {
		session.EnsureCart().Remove(itemID)
		return nil
	})
	if err != nil {
		return s.loadError(err)
	}
	return cartResponse(session, "")
}

// SetQuantity rejects n < 1 here; the cart itself stores whatever it is given.
func (s *Service) SetQuantity(sessionID, itemID string, req *SetQuantityRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: err.Error(), Error: err})
	}

	session, err := s.Mutate(sessionID, func(session *types.Session) error {
		session.EnsureCart().SetQuantity(itemID, req.Quantity)
		return nil
	})
	if err != nil {
		return s.loadError(err)
	}
	return cartResponse(session, "")
}

func (s *Service) ClearCart(sessionID string) *types.Response {
	session, err := s.Mutate(sessionID, func(session *types.Session) error {
		session.EnsureCart().Clear()
		return nil
	})
	if err != nil {
		return s.loadError(err)
	}
	return cartResponse(session, "")
}

func cartResponse(session *types.Session, message string) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    session.EnsureCart().View(),
	})
}
