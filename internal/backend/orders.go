package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

func (s *Session) ListOrders(ctx context.Context, filter domain.OrderFilter) (*domain.OrderList, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	var out domain.OrderList
	req := request{action: "list_orders", method: http.MethodGet, path: "/orders", query: q}
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Orders == nil {
		out.Orders = []domain.Order{}
	}
	return &out, nil
}

func (s *Session) CreateOrder(ctx context.Context, in domain.CreateOrderRequest) (*domain.Order, error) {
	req, err := jsonRequest("create_order", http.MethodPost, "/orders", in)
	if err != nil {
		return nil, err
	}
	var out domain.Order
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	req := request{action: "get_order", method: http.MethodGet, path: "/orders/" + url.PathEscape(id)}
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	req, err := jsonRequest("update_order", http.MethodPatch, "/orders/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	var out domain.Order
	if err := s.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
