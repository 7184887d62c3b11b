package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Login authenticates and returns the issued token. No auth header is sent.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, call{
		method: "POST",
		path:   "/api/auth/login",
		body:   map[string]string{"username": username, "password": password},
		noAuth: true,
	}, &out)
	if err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" || out.Type == "" {
		return LoginResponse{}, &Error{Kind: KindServer, Message: "login response missing token or type"}
	}
	return out, nil
}

// Register creates a new user. No auth header is sent.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.doJSON(ctx, call{
		method: "POST",
		path:   "/api/auth/register",
		body:   in,
		noAuth: true,
	}, nil)
}

// ListAccounts returns the current user's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.doJSON(ctx, call{method: "GET", path: "/api/accounts/user"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountByNumber resolves an account number to the full record,
// including the canonical id.
func (c *Client) AccountByNumber(ctx context.Context, number string) (Account, error) {
	var out Account
	err := c.doJSON(ctx, call{
		method: "GET",
		path:   "/api/accounts/" + url.PathEscape(number),
	}, &out)
	return out, err
}

// CreateAccount opens a new account. The backend reads the type from the
// query string and the body both, so we send it in both places.
func (c *Client) CreateAccount(ctx context.Context, accountType string, balance float64, currency string) (Account, error) {
	var out Account
	err := c.doJSON(ctx, call{
		method: "POST",
		path:   "/api/accounts/create",
		query:  url.Values{"accountType": {accountType}},
		body: map[string]any{
			"accountType": accountType,
			"balance":     balance,
			"currency":    currency,
		},
	}, &out)
	return out, err
}

// DeleteAccount deletes by backend id.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.doJSON(ctx, call{
		method: "DELETE",
		path:   "/api/accounts/" + strconv.FormatInt(id, 10),
	}, nil)
}

// ListCards returns the current user's cards.
func (c *Client) ListCards(ctx context.Context) ([]Card, error) {
	var out []Card
	if err := c.doJSON(ctx, call{method: "GET", path: "/api/cards/user"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCard applies for a card linked to an account. The backend wants
// this one form-encoded.
func (c *Client) CreateCard(ctx context.Context, cardType string, accountID int64) (Card, error) {
	var out Card
	err := c.doJSON(ctx, call{
		method: "POST",
		path:   "/api/cards/create",
		form: url.Values{
			"cardType":  {cardType},
			"accountId": {strconv.FormatInt(accountID, 10)},
		},
	}, &out)
	return out, err
}

// SetCardStatus toggles a card between ACTIVE and INACTIVE.
func (c *Client) SetCardStatus(ctx context.Context, id int64, status string) error {
	return c.doJSON(ctx, call{
		method: "PUT",
		path:   fmt.Sprintf("/api/cards/%d/status", id),
		query:  url.Values{"status": {status}},
	}, nil)
}

// DeleteCard deletes by card id.
func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.doJSON(ctx, call{
		method: "DELETE",
		path:   "/api/cards/" + strconv.FormatInt(id, 10),
	}, nil)
}

// AccountTransactions lists transactions for one account, newest first.
func (c *Client) AccountTransactions(ctx context.Context, accountID int64) ([]Transaction, error) {
	var out []Transaction
	err := c.doJSON(ctx, call{
		method: "GET",
		path:   "/api/transactions/account/" + strconv.FormatInt(accountID, 10),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transfer moves money between accounts and returns the server-issued
// transaction reference.
func (c *Client) Transfer(ctx context.Context, in TransferInput) (TransferReceipt, error) {
	var out TransferReceipt
	err := c.doJSON(ctx, call{
		method: "POST",
		path:   "/api/transactions/transfer",
		body:   in,
	}, &out)
	return out, err
}

// Profile reads the current user. /api/users/me is the canonical route;
// older backends only serve /api/auth/me, so that is tried second.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var out User
	err := c.doJSON(ctx, call{method: "GET", path: "/api/users/me"}, &out)
	if err == nil {
		return out, nil
	}
	if IsKind(err, KindUnauthenticated) {
		// no point retrying the legacy route without a token
		return User{}, err
	}
	if fallbackErr := c.doJSON(ctx, call{method: "GET", path: "/api/auth/me"}, &out); fallbackErr == nil {
		return out, nil
	}
	return User{}, err
}

// UpdateProfile saves profile edits.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) error {
	return c.doJSON(ctx, call{
		method: "PUT",
		path:   "/api/users/me",
		body:   in,
	}, nil)
}
