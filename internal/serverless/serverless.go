// Package serverless serves the router as a net/http function, the shape
// expected by Netlify and Vercel style Go runtimes.
package serverless

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/router"
)

// DefaultMaxBody caps the request body when no limit is given.
const DefaultMaxBody = 20 << 20

// Handler adapts r to net/http. maxBody <= 0 uses DefaultMaxBody.
func Handler(r *router.Router, maxBody int64) http.HandlerFunc {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}

	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBody))
		if err != nil {
			log.Warn().Err(err).Str("path", req.URL.Path).Msg("failed to read request body")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"message":"Request body too large"}`))

			return
		}

		resp := r.Dispatch(req.Context(), router.Request{
			Method:   req.Method,
			Path:     req.URL.Path,
			Query:    req.URL.Query(),
			Header:   req.Header,
			Body:     body,
			RemoteIP: clientIP(req),
		})

		for k, values := range resp.Header {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}

		w.WriteHeader(resp.Status)

		if _, err = w.Write(resp.Body); err != nil {
			log.Debug().Err(err).Msg("failed to write response")
		}
	}
}

// clientIP prefers the first X-Forwarded-For hop set by the platform proxy.
func clientIP(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
