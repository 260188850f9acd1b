package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DestinationType string

const (
	DestinationOwn      DestinationType = "own"
	DestinationOther    DestinationType = "other"
	DestinationExternal DestinationType = "external"
)

type DeliveryMode string

const (
	DeliveryImmediate DeliveryMode = "immediate"
	DeliveryScheduled DeliveryMode = "scheduled"
)

type TransferStatus string

const (
	StatusPending    TransferStatus = "pending"
	StatusCompleted  TransferStatus = "completed"
	StatusFailed     TransferStatus = "failed"
	StatusScheduled  TransferStatus = "scheduled"
	StatusProcessing TransferStatus = "processing" // claimed by a scheduler run
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var Currencies = []Currency{
	{Code: "NPR", Symbol: "रू", Name: "Nepalese Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
}

// LookupCurrency returns the currency with the given ISO code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

type Limits struct {
	PerTransaction decimal.Decimal `json:"per_transaction"`
	Daily          decimal.Decimal `json:"daily"`
	Monthly        decimal.Decimal `json:"monthly"` // zero disables the check
}

type Account struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransferRequest is the input of the amount checks.
type TransferRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	DailyUsed        decimal.Decimal `json:"daily_used"`
	MonthlyUsed      decimal.Decimal `json:"monthly_used"`
	Limits           Limits          `json:"limits"`
}

// TransferForm is the raw wizard input, as typed by the user.
type TransferForm struct {
	Amount                 string          `json:"amount"`
	Currency               string          `json:"currency"`
	SourceAccountID        string          `json:"source_account_id"`
	DestinationType        DestinationType `json:"destination_type"`
	DestinationAccountID   string          `json:"destination_account_id,omitempty"`
	RecipientName          string          `json:"recipient_name,omitempty"`
	RecipientAccountNumber string          `json:"recipient_account_number,omitempty"`
	RecipientBankName      string          `json:"recipient_bank_name,omitempty"`
	IFSCCode               string          `json:"ifsc_code,omitempty"`
	Description            string          `json:"description,omitempty"`
	Delivery               DeliveryMode    `json:"delivery"`
	ScheduledDate          string          `json:"scheduled_date,omitempty"` // YYYY-MM-DD
}

// TransferContext is what the ledger knows about the source account at validation time.
type TransferContext struct {
	SourceFound      bool
	AvailableBalance decimal.Decimal
	DailyUsed        decimal.Decimal
	MonthlyUsed      decimal.Decimal
	Limits           Limits
}

type Transfer struct {
	ID                     uuid.UUID       `json:"id"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	SourceAccountID        string          `json:"source_account_id"`
	DestinationType        DestinationType `json:"destination_type"`
	DestinationAccountID   string          `json:"destination_account_id,omitempty"`
	RecipientName          string          `json:"recipient_name,omitempty"`
	RecipientAccountNumber string          `json:"recipient_account_number,omitempty"`
	RecipientBankName      string          `json:"recipient_bank_name,omitempty"`
	IFSCCode               string          `json:"ifsc_code,omitempty"`
	Description            string          `json:"description,omitempty"`
	Status                 TransferStatus  `json:"status"`
	ScheduledFor           *time.Time      `json:"scheduled_for,omitempty"`
	FailureReason          string          `json:"failure_reason,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	CompletedAt            *time.Time      `json:"completed_at,omitempty"`
}

type TransferReview struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        Currency        `json:"currency"`
	SourceAccountID string          `json:"source_account_id"`
	Destination     string          `json:"destination"`
	Delivery        DeliveryMode    `json:"delivery"`
	ScheduledFor    *time.Time      `json:"scheduled_for,omitempty"`
	RemainingDaily  decimal.Decimal `json:"remaining_daily"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
}

type WizardStep string

const (
	StepForm    WizardStep = "form"
	StepReview  WizardStep = "review"
	StepSuccess WizardStep = "success"
)
