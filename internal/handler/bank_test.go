package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyvindh/bankbook/internal/bank"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func newBankRouter(ledger *bank.Ledger) *chi.Mux {
	r := chi.NewRouter()
	NewBankHandler(ledger, testLogger()).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// openTestAccount opens an account through the API and returns its number.
func openTestAccount(t *testing.T, router http.Handler, accountType bank.AccountType, initialDeposit float64) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/accounts", map[string]interface{}{
		"holder_name":     "Alice Smith",
		"account_type":    accountType,
		"initial_deposit": initialDeposit,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var info bank.AccountInfo
	decodeBody(t, rec, &info)
	return info.Number
}

func TestBankHandler_Open(t *testing.T) {
	router := newBankRouter(bank.NewLedger())

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts", map[string]interface{}{
			"holder_name":     "Alice Smith",
			"account_type":    bank.AccountTypeChecking,
			"initial_deposit": 500,
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var info bank.AccountInfo
		decodeBody(t, rec, &info)
		assert.Equal(t, "1001", info.Number)
		assert.Equal(t, bank.AccountTypeChecking, info.Type)
		assert.True(t, info.Balance.Equal(decimalFromFloat(500)))
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty holder name", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts", map[string]interface{}{
			"holder_name":  "",
			"account_type": bank.AccountTypeChecking,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("savings below minimum deposit", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts", map[string]interface{}{
			"holder_name":     "Alice Smith",
			"account_type":    bank.AccountTypeSavings,
			"initial_deposit": 50,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBankHandler_GetAndList(t *testing.T) {
	router := newBankRouter(bank.NewLedger())
	number := openTestAccount(t, router, bank.AccountTypeChecking, 500)

	t.Run("get", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts/"+number, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var info bank.AccountInfo
		decodeBody(t, rec, &info)
		assert.Equal(t, number, info.Number)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts/9999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var accounts []bank.AccountInfo
		decodeBody(t, rec, &accounts)
		assert.Len(t, accounts, 1)
	})
}

func TestBankHandler_DepositWithdraw(t *testing.T) {
	router := newBankRouter(bank.NewLedger())
	number := openTestAccount(t, router, bank.AccountTypeChecking, 500)

	t.Run("deposit", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts/"+number+"/deposits", map[string]interface{}{
			"amount": 200,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var tx bank.Transaction
		decodeBody(t, rec, &tx)
		assert.Equal(t, bank.TransactionStatusSuccess, tx.Status)
		assert.True(t, tx.BalanceAfter.Equal(decimalFromFloat(700)))
	})

	t.Run("rejected withdrawal is not an http error", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts/"+number+"/withdrawals", map[string]interface{}{
			"amount": 2000,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var tx bank.Transaction
		decodeBody(t, rec, &tx)
		assert.Equal(t, bank.TransactionStatusFailed, tx.Status)
		assert.Equal(t, "Insufficient funds", tx.FailureReason)
	})

	t.Run("unknown account is an http error", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts/9999/deposits", map[string]interface{}{
			"amount": 100,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBankHandler_Transfer(t *testing.T) {
	router := newBankRouter(bank.NewLedger())
	source := openTestAccount(t, router, bank.AccountTypeChecking, 500)
	dest := openTestAccount(t, router, bank.AccountTypeChecking, 100)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/transfers", map[string]interface{}{
			"from_account": source,
			"to_account":   dest,
			"amount":       150,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var result bank.TransferResult
		decodeBody(t, rec, &result)
		assert.Equal(t, bank.TransactionTypeTransfer, result.Outgoing.Type)
		assert.Equal(t, bank.TransactionStatusSuccess, result.Outgoing.Status)
		assert.True(t, result.Incoming.BalanceAfter.Equal(decimalFromFloat(250)))
	})

	t.Run("same account", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/transfers", map[string]interface{}{
			"from_account": source,
			"to_account":   source,
			"amount":       50,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/transfers", map[string]interface{}{
			"from_account": source,
			"to_account":   "9999",
			"amount":       50,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBankHandler_Close(t *testing.T) {
	router := newBankRouter(bank.NewLedger())
	number := openTestAccount(t, router, bank.AccountTypeChecking, 500)

	t.Run("non-zero balance", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/accounts/"+number, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("after withdrawing everything", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/accounts/"+number+"/withdrawals", map[string]interface{}{
			"amount": 500,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodDelete, "/accounts/"+number, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/accounts/"+number, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBankHandler_TransactionsAndStatement(t *testing.T) {
	router := newBankRouter(bank.NewLedger())
	number := openTestAccount(t, router, bank.AccountTypeChecking, 500)

	doJSON(t, router, http.MethodPost, "/accounts/"+number+"/deposits", map[string]interface{}{"amount": 100})

	t.Run("full history", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts/"+number+"/transactions", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var history []bank.Transaction
		decodeBody(t, rec, &history)
		assert.Len(t, history, 2)
	})

	t.Run("bad window format", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts/"+number+"/transactions?from=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bounded window", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet,
			"/accounts/"+number+"/transactions?from=2000-01-01T00:00:00Z&to=2000-01-02T00:00:00Z", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var history []bank.Transaction
		decodeBody(t, rec, &history)
		assert.Empty(t, history)
	})

	t.Run("statement", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/accounts/"+number+"/statement", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "MONTHLY STATEMENT")
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})
}

func TestBankHandler_ApplyInterest(t *testing.T) {
	ledger := bank.NewLedger()
	router := newBankRouter(ledger)
	number := openTestAccount(t, router, bank.AccountTypeSavings, 200)

	rec := doJSON(t, router, http.MethodPost, "/interest", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/accounts/"+number, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info bank.AccountInfo
	decodeBody(t, rec, &info)
	assert.True(t, info.Balance.Equal(decimalFromFloat(204)), "balance = %s", info.Balance)
}
