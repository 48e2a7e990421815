// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"net/http"
	"testing"

	"github.com/moov-io/ledger/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
)

func TestNewTracer__disabled(t *testing.T) {
	tracer, closer, err := NewTracer(log.NewNopLogger(), config.Tracing{})
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	require.IsType(t, opentracing.NoopTracer{}, tracer)
}

func TestTracer__propagation(t *testing.T) {
	tracer, closer, err := NewTracer(log.NewNopLogger(), config.Tracing{
		Enabled:     true,
		ServiceName: "ledger-test",
		SampleRate:  1.0,
	})
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	span := tracer.StartSpan("accounts-list")
	defer span.Finish()

	req, _ := http.NewRequest("GET", "/accounts", nil)
	req = injectSpan(req, span)
	require.NotEmpty(t, req.Header.Get(jaeger.TraceContextHeaderName))

	// the server side continues the same trace
	serverSpan := FromRequest("get-accounts", req)
	defer serverSpan.Finish()

	clientCtx, ok := span.Context().(jaeger.SpanContext)
	require.True(t, ok)
	serverCtx, ok := serverSpan.Context().(jaeger.SpanContext)
	require.True(t, ok)
	require.Equal(t, clientCtx.TraceID(), serverCtx.TraceID())
}

func TestFromRequest__noParent(t *testing.T) {
	_, closer, err := NewConstantTracer(log.NewNopLogger(), "ledger-test")
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	req, _ := http.NewRequest("GET", "/ping", nil)
	span := FromRequest("get-ping", req)
	require.NotNil(t, span)
	span.Finish()

	require.Empty(t, req.Header.Get(jaeger.TraceContextHeaderName))
}

// injectSpan adds span to the outgoing request headers like a client would.
func injectSpan(req *http.Request, span opentracing.Span) *http.Request {
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, req.URL.String())
	ext.HTTPMethod.Set(span, req.Method)

	opentracing.GlobalTracer().Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
	return req
}
