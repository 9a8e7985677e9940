package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oyvindh/bankbook/internal/bank"
)

// BankHandler handles HTTP requests for the banking ledger.
//
// Business-rule rejections (insufficient funds, limits, non-positive
// amounts) are not HTTP errors: the FAILED transaction comes back with the
// same status as a successful one and the caller inspects its status field.
// Structural problems (unknown account, bad construction arguments) map to
// 4xx responses.
type BankHandler struct {
	ledger *bank.Ledger
	log    *logrus.Logger
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(ledger *bank.Ledger, log *logrus.Logger) *BankHandler {
	return &BankHandler{ledger: ledger, log: log}
}

// RegisterRoutes sets up the banking routes on the given router
func (h *BankHandler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Open)
		r.Get("/", h.List)
		r.Get("/{number}", h.Get)
		r.Delete("/{number}", h.Close)
		r.Get("/{number}/balance", h.GetBalance)
		r.Get("/{number}/transactions", h.ListTransactions)
		r.Get("/{number}/statement", h.GetStatement)
		r.Post("/{number}/deposits", h.Deposit)
		r.Post("/{number}/withdrawals", h.Withdraw)
	})
	r.Post("/transfers", h.Transfer)
	r.Post("/interest", h.ApplyInterest)
}

// OpenAccountRequest is the payload for opening a new account
type OpenAccountRequest struct {
	HolderName     string           `json:"holder_name"`
	AccountType    bank.AccountType `json:"account_type"`
	InitialDeposit decimal.Decimal  `json:"initial_deposit"`
}

// AmountRequest is the payload for deposits and withdrawals
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest is the payload for transfers
type TransferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}

// Open handles POST /accounts
func (h *BankHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	number, err := h.ledger.OpenAccount(req.HolderName, req.AccountType, req.InitialDeposit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.WithFields(logrus.Fields{
		"account_number": number,
		"account_type":   req.AccountType,
	}).Info("Account opened")

	info, err := h.ledger.AccountInfo(number)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// List handles GET /accounts
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Accounts())
}

// Get handles GET /accounts/{number}
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.ledger.AccountInfo(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Close handles DELETE /accounts/{number}
func (h *BankHandler) Close(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if err := h.ledger.CloseAccount(number); err != nil {
		switch {
		case errors.Is(err, bank.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, bank.ErrNonZeroBalance):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to close account")
		}
		return
	}

	h.log.WithField("account_number", number).Info("Account closed")
	w.WriteHeader(http.StatusNoContent)
}

// GetBalance handles GET /accounts/{number}/balance
func (h *BankHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	balance, err := h.ledger.Balance(number)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account_number": number,
		"balance":        balance,
	})
}

// ListTransactions handles GET /accounts/{number}/transactions
// Optional query parameters: from and to (RFC 3339) bound the history
// window, inclusive on both ends.
func (h *BankHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	var history []bank.Transaction
	var err error
	if fromParam == "" && toParam == "" {
		history, err = h.ledger.History(number)
	} else {
		start, end, perr := parseWindow(fromParam, toParam)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid from/to format: use RFC 3339 (e.g., 2026-08-01T00:00:00Z)")
			return
		}
		history, err = h.ledger.HistoryBetween(number, start, end)
	}
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if history == nil {
		history = []bank.Transaction{}
	}
	writeJSON(w, http.StatusOK, history)
}

// GetStatement handles GET /accounts/{number}/statement
func (h *BankHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.ledger.MonthlyStatement(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeText(w, http.StatusOK, statement)
}

// Deposit handles POST /accounts/{number}/deposits
func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.ledger.Deposit(number, req.Amount)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logTransaction(number, tx)
	writeJSON(w, http.StatusOK, tx)
}

// Withdraw handles POST /accounts/{number}/withdrawals
func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.ledger.Withdraw(number, req.Amount)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logTransaction(number, tx)
	writeJSON(w, http.StatusOK, tx)
}

// Transfer handles POST /transfers
func (h *BankHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.ledger.Transfer(req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, bank.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, bank.ErrSameAccount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to transfer")
		}
		return
	}

	h.log.WithFields(logrus.Fields{
		"from":   req.FromAccount,
		"to":     req.ToAccount,
		"amount": req.Amount.String(),
		"status": result.Outgoing.Status,
	}).Info("Transfer processed")

	writeJSON(w, http.StatusOK, result)
}

// ApplyInterest handles POST /interest
// Credits monthly interest to every savings account.
func (h *BankHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	h.ledger.ApplyMonthlyInterest()
	h.log.Info("Monthly interest applied")
	w.WriteHeader(http.StatusNoContent)
}

func (h *BankHandler) logTransaction(number string, tx bank.Transaction) {
	entry := h.log.WithFields(logrus.Fields{
		"account_number": number,
		"type":           tx.Type,
		"amount":         tx.Amount.String(),
		"status":         tx.Status,
	})
	if tx.Failed() {
		entry.WithField("reason", tx.FailureReason).Info("Transaction rejected")
		return
	}
	entry.Info("Transaction processed")
}

func parseWindow(fromParam, toParam string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

	if fromParam != "" {
		parsed, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if toParam != "" {
		parsed, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	return start, end, nil
}
