package api

import "encoding/json"

// Wire types mirror the backend's JSON. Balance and amount fields stay
// json.Number because the backend has been observed sending both bare
// numbers and strings for decimals.

// Account is a bank account record. ID is the canonical identifier for
// every network operation; any positional numbering is presentation-only.
type Account struct {
	ID            int64       `json:"id"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   string      `json:"accountType"`
	Balance       json.Number `json:"balance"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
}

// Card is a payment card record. CardNumber arrives unmasked; the store
// layer masks it before anything displays it.
type Card struct {
	ID             int64  `json:"id"`
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	CardType       string `json:"cardType"`
	ExpiryDate     string `json:"expiryDate"`
	Status         string `json:"status"`
	AccountID      int64  `json:"accountId"`
}

// Card statuses as the backend spells them.
const (
	CardActive   = "ACTIVE"
	CardInactive = "INACTIVE"
)

// Account types as the backend spells them.
const (
	AccountSavings = "SAVINGS"
	AccountCurrent = "CURRENT"
)

// Transaction is read-only from the client's perspective.
type Transaction struct {
	Reference   string      `json:"transactionReference"`
	AccountID   int64       `json:"accountId"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Timestamp   int64       `json:"timestamp"` // epoch millis
}

// LoginResponse is the body of a successful POST /api/auth/login.
type LoginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Username string `json:"username"`
}

// RegisterInput is the body of POST /api/auth/register.
type RegisterInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Password    string `json:"password"`
}

// TransferInput is the body of POST /api/transactions/transfer.
type TransferInput struct {
	FromAccountNumber string  `json:"fromAccountNumber"`
	ToAccountNumber   string  `json:"toAccountNumber"`
	Amount            float64 `json:"amount"`
	Description       string  `json:"description"`
}

// TransferReceipt carries the server-issued reference for a transfer.
type TransferReceipt struct {
	TransactionReference string `json:"transactionReference"`
}

// User is the profile record behind /api/users/me.
type User struct {
	Username      string `json:"username"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"dateOfBirth"`
	AccountStatus string `json:"accountStatus"`
	MemberSince   string `json:"memberSince"`
	LastLogin     string `json:"lastLogin"`
}

// ProfileInput is the body of PUT /api/users/me.
type ProfileInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
}
