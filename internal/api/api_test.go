package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaiso/Gauntlet/internal/repo"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestHandleRepoError: отображение ошибок репозитория в HTTP-статусы.
func TestHandleRepoError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"not found", repo.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("%w: match x", repo.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"invalid state", repo.ErrInvalidState, http.StatusUnprocessableEntity, ErrCodeInvalidState},
		{"already exists", repo.ErrAlreadyExists, http.StatusConflict, ErrCodeConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if !HandleRepoError(rec, discardLogger(), tc.err, "missing") {
				t.Fatal("HandleRepoError должен вернуть true для ошибки")
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("ожидался статус %d, получено %d", tc.wantStatus, rec.Code)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("невалидный JSON в ответе: %v", err)
			}
			if body.Error.Code != tc.wantCode {
				t.Errorf("ожидался код %q, получено %q", tc.wantCode, body.Error.Code)
			}
		})
	}
}

// TestHandleRepoErrorNil: nil не считается ошибкой.
func TestHandleRepoErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	if HandleRepoError(rec, discardLogger(), nil, "") {
		t.Error("HandleRepoError должен вернуть false для nil")
	}
}

// TestResponseWriterStatus: обёртка фиксирует реальный статус ответа,
// а не дефолтные 200.
func TestResponseWriterStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	if rw.status != http.StatusTeapot {
		t.Errorf("обёртка зафиксировала статус %d", rw.status)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("статус не дошёл до клиента: %d", rec.Code)
	}
}

// TestRecovery: паника в обработчике превращается в 500, сервер жив.
func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("ожидался статус 500, получено %d", rec.Code)
	}
}

// TestChainOrder: middleware применяются слева направо.
func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mk("outer"), mk("inner"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	for i, name := range want {
		if i >= len(order) || order[i] != name {
			t.Fatalf("ожидался порядок %v, получено %v", want, order)
		}
	}
}
