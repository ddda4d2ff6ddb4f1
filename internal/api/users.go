package api

import (
	"context"
	"net/http"

	"github.com/dookkeobi/leakpot/internal/model"
)

// GetUserInfo fetches the authenticated user's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*model.UserInfo, error) {
	var payload struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Gender string `json:"gender"`
		Age    int    `json:"age"`
	}
	if err := c.get(ctx, "/api/users", &payload); err != nil {
		return nil, err
	}

	return &model.UserInfo{
		Name:   payload.Name,
		Email:  payload.Email,
		Gender: payload.Gender,
		Age:    payload.Age,
	}, nil
}

// CardInfo is the user's registered payment card. The server calls the
// account field cardNo.
type CardInfo struct {
	Account string
	CVC     string
}

type cardPayload struct {
	CardNo string `json:"cardNo"`
	CVC    string `json:"cvc"`
}

// GetCard fetches the registered card, if any.
func (c *Client) GetCard(ctx context.Context) (*CardInfo, error) {
	var payload cardPayload
	if err := c.get(ctx, "/api/cards", &payload); err != nil {
		return nil, err
	}
	return &CardInfo{Account: payload.CardNo, CVC: payload.CVC}, nil
}

// RegisterCard registers a payment card for transaction ingestion.
func (c *Client) RegisterCard(ctx context.Context, cardNo, cvc string) (*CardInfo, error) {
	body := cardPayload{CardNo: cardNo, CVC: cvc}

	var payload cardPayload
	if err := c.do(ctx, http.MethodPost, "/api/cards", body, &payload); err != nil {
		return nil, err
	}
	return &CardInfo{Account: payload.CardNo, CVC: payload.CVC}, nil
}

// DeleteCard removes the registered card.
func (c *Client) DeleteCard(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cards", nil, nil)
}
