package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bankcalc/domain"
)

const (
	FieldAmount                 = "amount"
	FieldCurrency               = "currency"
	FieldSourceAccount          = "source_account"
	FieldDestination            = "destination"
	FieldRecipientName          = "recipient_name"
	FieldRecipientAccountNumber = "recipient_account_number"
	FieldIFSCCode               = "ifsc_code"
	FieldDelivery               = "delivery"
	FieldScheduledDate          = "scheduled_date"

	dateLayout      = "2006-01-02"
	defaultCurrency = "NPR"
)

// Four bank letters, a literal zero, six branch characters.
var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// formatMoney renders d with thousands separators, e.g. रू50,000.
func formatMoney(symbol string, d decimal.Decimal) string {
	printer := message.NewPrinter(language.English)
	if d.IsInteger() {
		return printer.Sprintf("%s%d", symbol, d.IntPart())
	}
	return printer.Sprintf("%s%.2f", symbol, d.InexactFloat64())
}

func currencySymbol(code string) string {
	if code == "" {
		code = defaultCurrency
	}
	c, _ := domain.LookupCurrency(code)
	return c.Symbol
}

func fieldError(field string, kind domain.ErrorKind, msg string) *domain.FieldError {
	return &domain.FieldError{Field: field, Kind: kind, Message: msg}
}

func limitError(kind domain.ErrorKind, msg string, allowance decimal.Decimal) *domain.FieldError {
	e := fieldError(FieldAmount, kind, msg)
	e.Allowance = &allowance
	return e
}

// periodLimitError words a daily or monthly limit breach for the amount field.
func periodLimitError(lerr *domain.LimitError, symbol string) *domain.FieldError {
	period := "daily"
	if lerr.Kind == domain.KindExceedsMonthlyLimit {
		period = "monthly"
	}
	return limitError(lerr.Kind,
		"Amount exceeds "+period+" limit. Remaining: "+formatMoney(symbol, lerr.Remaining),
		lerr.Remaining)
}

// checkAmount applies the amount rules in order and reports the first one
// violated. The balance check is skipped when the source account is unknown.
func checkAmount(
	amount decimal.Decimal,
	symbol string,
	balance *decimal.Decimal,
	dailyUsed, monthlyUsed decimal.Decimal,
	limits domain.Limits,
) *domain.FieldError {
	switch {
	case !amount.IsPositive():
		return fieldError(FieldAmount, domain.KindInvalidAmount, "Please enter a valid amount")

	case amount.GreaterThan(limits.PerTransaction):
		return limitError(domain.KindExceedsPerTransactionLimit,
			"Amount exceeds per transaction limit of "+formatMoney(symbol, limits.PerTransaction),
			limits.PerTransaction)

	case dailyUsed.Add(amount).GreaterThan(limits.Daily):
		return periodLimitError(&domain.LimitError{
			Kind:      domain.KindExceedsDailyLimit,
			Remaining: decimal.Max(decimal.Zero, limits.Daily.Sub(dailyUsed)),
		}, symbol)

	case limits.Monthly.IsPositive() && monthlyUsed.Add(amount).GreaterThan(limits.Monthly):
		return periodLimitError(&domain.LimitError{
			Kind:      domain.KindExceedsMonthlyLimit,
			Remaining: decimal.Max(decimal.Zero, limits.Monthly.Sub(monthlyUsed)),
		}, symbol)

	case balance != nil && amount.GreaterThan(*balance):
		return fieldError(FieldAmount, domain.KindInsufficientBalance, "Insufficient balance in source account")
	}
	return nil
}

// ValidateTransfer decides whether an amount may leave an account given its
// balance, what it already sent today and this month, and the limits.
func ValidateTransfer(req domain.TransferRequest) domain.ValidationOutcome {
	balance := req.AvailableBalance
	if e := checkAmount(req.Amount, currencySymbol(req.Currency), &balance, req.DailyUsed, req.MonthlyUsed, req.Limits); e != nil {
		return domain.ValidationOutcome{Reasons: domain.FieldErrors{*e}}
	}
	return domain.ValidationOutcome{OK: true}
}

// ValidateTransferForm checks every field of the wizard form and returns all
// violations at once, at most one per field.
func ValidateTransferForm(form domain.TransferForm, tc domain.TransferContext, now time.Time) domain.FieldErrors {
	var errs domain.FieldErrors
	add := func(e *domain.FieldError) {
		if e != nil {
			errs = append(errs, *e)
		}
	}

	currency := form.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	c, knownCurrency := domain.LookupCurrency(currency)
	if !knownCurrency {
		add(fieldError(FieldCurrency, domain.KindInvalidFormat, "Unsupported currency "+form.Currency))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil {
		add(fieldError(FieldAmount, domain.KindInvalidAmount, "Please enter a valid amount"))
	} else {
		var balance *decimal.Decimal
		if tc.SourceFound {
			balance = &tc.AvailableBalance
		}
		add(checkAmount(amount, c.Symbol, balance, tc.DailyUsed, tc.MonthlyUsed, tc.Limits))
	}

	switch {
	case strings.TrimSpace(form.SourceAccountID) == "":
		add(fieldError(FieldSourceAccount, domain.KindMissingRequiredField, "Please select a source account"))
	case !tc.SourceFound:
		add(fieldError(FieldSourceAccount, domain.KindInvalidInput, "Selected source account does not exist"))
	}

	validateDestination(form, add)
	validateSchedule(form, now, add)

	return errs
}

func validateDestination(form domain.TransferForm, add func(*domain.FieldError)) {
	switch form.DestinationType {
	case domain.DestinationOther, domain.DestinationExternal:
		if strings.TrimSpace(form.RecipientName) == "" {
			add(fieldError(FieldRecipientName, domain.KindMissingRequiredField, "Please enter recipient name"))
		}
		if strings.TrimSpace(form.RecipientAccountNumber) == "" {
			add(fieldError(FieldRecipientAccountNumber, domain.KindMissingRequiredField, "Please enter recipient account number"))
		}
		if form.DestinationType != domain.DestinationExternal {
			return
		}
		ifsc := strings.ToUpper(strings.TrimSpace(form.IFSCCode))
		switch {
		case ifsc == "":
			add(fieldError(FieldIFSCCode, domain.KindMissingRequiredField, "Please enter IFSC code for external transfers"))
		case !ifscPattern.MatchString(ifsc):
			add(fieldError(FieldIFSCCode, domain.KindInvalidFormat, "IFSC code must be 11 characters: 4 letters, 0, then 6 letters or digits"))
		}

	case domain.DestinationOwn, "":
		switch {
		case strings.TrimSpace(form.DestinationAccountID) == "":
			add(fieldError(FieldDestination, domain.KindMissingRequiredField, "Please select destination account"))
		case form.DestinationAccountID == form.SourceAccountID:
			add(fieldError(FieldDestination, domain.KindInvalidInput, "Destination account must differ from source account"))
		}

	default:
		add(fieldError(FieldDestination, domain.KindInvalidInput, "Unknown destination type "+string(form.DestinationType)))
	}
}

func validateSchedule(form domain.TransferForm, now time.Time, add func(*domain.FieldError)) {
	switch form.Delivery {
	case domain.DeliveryImmediate, "":
		return
	case domain.DeliveryScheduled:
	default:
		add(fieldError(FieldDelivery, domain.KindInvalidInput, "Unknown delivery mode "+string(form.Delivery)))
		return
	}

	if strings.TrimSpace(form.ScheduledDate) == "" {
		add(fieldError(FieldScheduledDate, domain.KindMissingRequiredField, "Please select a scheduled date"))
		return
	}
	date, err := ParseScheduledDate(form.ScheduledDate, now.Location())
	if err != nil {
		add(fieldError(FieldScheduledDate, domain.KindInvalidFormat, "Scheduled date must use the YYYY-MM-DD format"))
		return
	}

	today := startOfDay(now)
	switch {
	case !date.After(today):
		add(fieldError(FieldScheduledDate, domain.KindInvalidInput, "Scheduled date must be in the future"))
	case date.After(today.AddDate(0, 0, MaxScheduleDays)):
		add(fieldError(FieldScheduledDate, domain.KindInvalidInput, "Scheduled date must be within 30 days"))
	}
}

// ParseScheduledDate reads a YYYY-MM-DD date as midnight in loc.
func ParseScheduledDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
}

// ScheduleDateOptions lists the dates a transfer can be scheduled for.
func ScheduleDateOptions(now time.Time) []string {
	today := startOfDay(now)
	dates := make([]string, 0, MaxScheduleDays)
	for i := 1; i <= MaxScheduleDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
