// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moov-io/base"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.Log("test", "response")
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"error": null}`))
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-Id", base.ID())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRoute__JSON(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/accounts/{accountID}").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.JSON(http.StatusOK, map[string]string{
			"accountID": ReadPathID("accountID", r),
		})
	})

	req := httptest.NewRequest("GET", "/accounts/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "abc", resp["accountID"])
}

func TestRoute__problem(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/bad").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.Problem(errors.New("bad error"))
	})

	req := httptest.NewRequest("GET", "/bad", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "bad error")
}

func TestRoute__InternalError(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/broken").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.InternalError(errors.New("connection refused"))
	})

	req := httptest.NewRequest("GET", "/broken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestRoute__Idempotency(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("PONG"))
		})
	})

	key := base.ID()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("x-idempotency-key", key)

	// mark the key as seen
	if seen := IdempotentRecorder.SeenBefore(key); seen {
		t.Errorf("shouldn't have been seen before")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusPreconditionFailed, w.Code)

	if seen := IdempotentRecorder.SeenBefore(key); !seen {
		t.Errorf("should have seen %q", key)
	}
}

func TestRoute__nilResponder(t *testing.T) {
	var r *Responder
	r.Log("key", "value")
	r.Respond(func(w http.ResponseWriter) {
		t.Fatal("shouldn't be called")
	})
	r.Problem(errors.New("bad"))
	r.InternalError(errors.New("bad"))
}

func TestRoute__CleanPath(t *testing.T) {
	if v := CleanPath("/accounts"); v != "accounts" {
		t.Errorf("got %q", v)
	}
	if v := CleanPath("/accounts/19636f90bc95779e2488b0f7a45c4b68958a2ddd/transactions"); v != "accounts-transactions" {
		t.Errorf("got %q", v)
	}
	// A value which looks like moov/base.ID, but is off by one character (last letter)
	if v := CleanPath("/accounts/19636f90bc95779e2488b0f7a45c4b68958a2ddz"); v != "accounts-19636f90bc95779e2488b0f7a45c4b68958a2ddz" {
		t.Errorf("got %q", v)
	}
}
