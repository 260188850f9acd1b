package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/repository"
	"bankcalc/service"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newLoanHandler() *LoanHandler {
	svc := service.NewLoanService(
		repository.NewLoanRepositoryMemory(),
		repository.NewMemoryCache(),
		time.Hour,
		testLogger(),
	)
	return NewLoanHandler(svc, testLogger())
}

func TestCalculateLoanHandler_OK(t *testing.T) {
	handler := newLoanHandler()

	body := []byte(`{
		"amount": 10000,
		"interest_rate": 12,
		"tenure": 24
	}`)

	req := httptest.NewRequest(http.MethodPost, "/loans/emi", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.LoanResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.MonthlyPayment != 471 {
		t.Errorf("expected EMI 471, got %v", result.MonthlyPayment)
	}
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {
	handler := newLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/loans/emi", bytes.NewBuffer([]byte(`{invalid-json}`)))
	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_UnknownField(t *testing.T) {
	handler := newLoanHandler()

	body := []byte(`{"monto": 10000, "tasa_anual": 12, "plazo_meses": 24}`)
	req := httptest.NewRequest(http.MethodPost, "/loans/emi", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_InvalidInput(t *testing.T) {
	handler := newLoanHandler()

	body := []byte(`{"amount": -5, "interest_rate": 12, "tenure": 24}`)
	req := httptest.NewRequest(http.MethodPost, "/loans/emi", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_UnsupportedMediaType(t *testing.T) {
	handler := newLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/loans/emi", bytes.NewBufferString("amount=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestScheduleHandler_OK(t *testing.T) {
	handler := newLoanHandler()

	body := []byte(`{"amount": 100000, "interest_rate": 12, "tenure": 1, "tenure_unit": "years", "start_date": "2026-01-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/loans/schedule", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.Schedule(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp scheduleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(resp.Installments))
	}
	if resp.Summary.MonthlyPayment != 8885 {
		t.Errorf("expected EMI 8885, got %v", resp.Summary.MonthlyPayment)
	}
	if last := resp.Installments[11]; last.Balance != 0 {
		t.Errorf("expected closing balance 0, got %v", last.Balance)
	}
}

func TestScheduleHandler_BadStartDate(t *testing.T) {
	handler := newLoanHandler()

	body := []byte(`{"amount": 1000, "interest_rate": 12, "tenure": 12, "start_date": "15/01/2026"}`)
	req := httptest.NewRequest(http.MethodPost, "/loans/schedule", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.Schedule(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
