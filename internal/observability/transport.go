package observability

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// httpHeaderCarrier адаптирует http.Header к propagation.TextMapCarrier
type httpHeaderCarrier struct {
	header http.Header
}

func (c httpHeaderCarrier) Get(key string) string {
	return c.header.Get(key)
}

func (c httpHeaderCarrier) Set(key, value string) {
	c.header.Set(key, value)
}

func (c httpHeaderCarrier) Keys() []string {
	out := make([]string, 0, len(c.header))
	for k := range c.header {
		out = append(out, k)
	}
	return out
}

// transport оборачивает http.RoundTripper: span на каждый исходящий запрос
// плюс инъекция trace context в заголовки
type transport struct {
	base        http.RoundTripper
	serviceName string
}

// NewTransport возвращает http.RoundTripper для исходящих запросов к API:
// создаёт client span, проставляет стандартные http-атрибуты и прокидывает
// trace context на сервер через заголовки
func NewTransport(serviceName string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base, serviceName: serviceName}
}

// RoundTrip выполняет запрос внутри client span
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	tracer := otel.Tracer(t.serviceName)
	prop := otel.GetTextMapPropagator()

	spanName := "HTTP " + req.Method + " " + req.URL.Path
	ctx, span := tracer.Start(req.Context(), spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
		),
	)
	defer span.End()

	req = req.WithContext(ctx)
	prop.Inject(ctx, httpHeaderCarrier{req.Header})

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, strconv.Itoa(resp.StatusCode))
	}
	return resp, nil
}
