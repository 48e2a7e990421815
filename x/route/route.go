// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	moovhttp "github.com/moov-io/base/http"
	"github.com/moov-io/base/idempotent"
	"github.com/moov-io/base/idempotent/lru"
	"github.com/moov-io/ledger/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	IdempotentRecorder = lru.New()

	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})

	internalServerErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "http_internal_server_errors",
		Help: "Count of how many 5xx responses were written",
	}, []string{"route"})
)

type Responder struct {
	XRequestID string

	logger log.Logger

	name    string
	request *http.Request
	span    opentracing.Span

	writer *moovhttp.ResponseWriter
}

// NewResponder wraps w for metrics and starts a tracing span for the request. A
// request carrying an X-Idempotency-Key which has been seen before is rejected
// and Respond becomes a no-op.
func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	name := fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path))
	resp := &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		name:       name,
		request:    r,
		span:       trace.FromRequest(name, r),
		writer:     moovhttp.Wrap(logger, Histogram.With("route", name), w, r),
	}
	if _, seen := idempotent.FromRequest(r, IdempotentRecorder); seen {
		resp.finishSpan()
		idempotent.SeenBefore(resp.writer)
		return nil
	}
	return resp
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.writer == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

// Respond writes JSON headers and calls fn to write the status code and body.
func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	r.finishSpan()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
}

// JSON writes v as the response body with the given status code.
func (r *Responder) JSON(status int, v interface{}) {
	r.Respond(func(w http.ResponseWriter) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	})
}

// Problem writes err with a 400 Bad Request status.
func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	if r.span != nil {
		ext.Error.Set(r.span, true)
	}
	r.finishSpan()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
}

// InternalError logs err and writes a generic 500 response. The error's text
// isn't included in the response.
func (r *Responder) InternalError(err error) {
	if r == nil {
		return
	}
	internalServerErrors.With("route", r.name).Add(1)
	r.Log("route", r.name, "error", err)
	if r.span != nil {
		ext.Error.Set(r.span, true)
	}
	r.JSON(http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func (r *Responder) finishSpan() {
	if r == nil || r.span == nil {
		return
	}
	r.span.Finish()
	r.span = nil
}

// ReadPathID returns the mux path variable called name.
func ReadPathID(name string, r *http.Request) string {
	return mux.Vars(r)[name]
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
