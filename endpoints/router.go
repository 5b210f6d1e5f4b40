package endpoints

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DistancePath is the explicit route for the distance endpoint. It is also served at "/".
const DistancePath = "/social-distance"

// distanceMethods lists the methods the distance endpoint answers; the handler ignores the method.
var distanceMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// NewRouter builds the HTTP handler chain: tracing, CORS, request logging, routes
func NewRouter(distance *SocialDistanceEndpoint, allowedOrigins []string) http.Handler {
	router := httprouter.New()
	for _, method := range distanceMethods {
		router.HandlerFunc(method, "/", distance.SocialDistance)
		router.HandlerFunc(method, DistancePath, distance.SocialDistance)
	}
	router.HandlerFunc(http.MethodGet, "/healthz", Health)

	var h http.Handler = router
	h = RequestLogger(h)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: append([]string{http.MethodOptions}, distanceMethods...),
		AllowedHeaders: []string{"Content-Type", RequestIDHeader, "traceparent", "baggage"},
		ExposedHeaders: []string{RequestIDHeader},
	})
	h = c.Handler(h)

	return otelhttp.NewHandler(h, "social-distance", otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))
}
