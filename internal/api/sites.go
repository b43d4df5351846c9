package api

import (
	"context"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
	"rotierp/pkg/pagination"

	"github.com/shopspring/decimal"
)

// Counters wraps the /counters endpoints
type Counters struct {
	c *apiclient.Client
}

type CreateCounterRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

func (s *Counters) List(ctx context.Context, q pagination.Query) (pagination.List[model.Counter], error) {
	return list[model.Counter](ctx, s.c, "/counters", q)
}

func (s *Counters) Create(ctx context.Context, req CreateCounterRequest) (*model.Counter, error) {
	var c model.Counter
	if err := s.c.Post(ctx, "/counters", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Counters) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/counters/"+id)
}

// Hotels wraps the /hotels endpoints
type Hotels struct {
	c *apiclient.Client
}

type CreateBookingRequest struct {
	GuestName string          `json:"guestName"`
	RoomNo    string          `json:"roomNo"`
	Rate      decimal.Decimal `json:"rate"`
}

func (s *Hotels) List(ctx context.Context, q pagination.Query) (pagination.List[model.Hotel], error) {
	return list[model.Hotel](ctx, s.c, "/hotels", q)
}

func (s *Hotels) ListBookings(ctx context.Context, hotelID string, q pagination.Query) (pagination.List[model.HotelBooking], error) {
	return list[model.HotelBooking](ctx, s.c, "/hotels/"+hotelID+"/bookings", q)
}

func (s *Hotels) CreateBooking(ctx context.Context, hotelID string, req CreateBookingRequest) (*model.HotelBooking, error) {
	var b model.HotelBooking
	if err := s.c.Post(ctx, "/hotels/"+hotelID+"/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Hostels wraps the /hostels endpoints
type Hostels struct {
	c *apiclient.Client
}

func (s *Hostels) List(ctx context.Context, q pagination.Query) (pagination.List[model.Hostel], error) {
	return list[model.Hostel](ctx, s.c, "/hostels", q)
}

// Franchises wraps the /franchises endpoints
type Franchises struct {
	c *apiclient.Client
}

type CreateFranchiseRequest struct {
	Name        string          `json:"name"`
	OwnerName   string          `json:"ownerName"`
	Phone       string          `json:"phone,omitempty"`
	Location    string          `json:"location,omitempty"`
	RoyaltyRate decimal.Decimal `json:"royaltyRate"`
}

func (s *Franchises) List(ctx context.Context, q pagination.Query) (pagination.List[model.Franchise], error) {
	return list[model.Franchise](ctx, s.c, "/franchises", q)
}

func (s *Franchises) Create(ctx context.Context, req CreateFranchiseRequest) (*model.Franchise, error) {
	var f model.Franchise
	if err := s.c.Post(ctx, "/franchises", req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Settings wraps the /settings endpoints
type Settings struct {
	c *apiclient.Client
}

func (s *Settings) List(ctx context.Context) ([]model.Setting, error) {
	var out []model.Setting
	if err := s.c.Get(ctx, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Settings) Set(ctx context.Context, key, value string) (*model.Setting, error) {
	var out model.Setting
	body := map[string]string{"key": key, "value": value}
	if err := s.c.Put(ctx, "/settings/"+key, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
