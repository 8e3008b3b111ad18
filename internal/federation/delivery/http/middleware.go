package http

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"courier/internal/metrics"
	"courier/pkg/canonicaljson"
	"courier/pkg/errors"
	"courier/pkg/logger"
	"courier/pkg/utils"
)

const (
	headerSenderHost = "X-Courier-Host"
	headerSignature  = "X-Courier-Sig"

	maxInboundBody = 1 << 20
)

type contextKey string

const senderHostKey contextKey = "federation_sender_host"

// KeyResolver is the discovery seam the middleware needs: the sender's
// current verified signing key.
type KeyResolver interface {
	FetchFederationKey(ctx context.Context, host string) ([]byte, error)
}

// VerifyInbound gates every federation endpoint. It checks the sender-host
// and signature headers, cross-checks the body's sender_handle against the
// asserted host, resolves the sender's key through discovery, and verifies
// the signature over the canonical JSON of the body. Nothing reaches the
// handler unless all of that holds.
func VerifyInbound(keys KeyResolver, log *logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			senderHost := utils.NormalizeHost(r.Header.Get(headerSenderHost))
			sigB64 := r.Header.Get(headerSignature)
			if senderHost == "" || sigB64 == "" {
				reject(w, log, m, senderHost, "missing_headers", http.StatusUnauthorized)
				return
			}

			sig, err := base64.StdEncoding.DecodeString(sigB64)
			if err != nil || len(sig) != ed25519.SignatureSize {
				reject(w, log, m, senderHost, "malformed_signature", http.StatusUnauthorized)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxInboundBody))
			if err != nil {
				reject(w, log, m, senderHost, "unreadable_body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			// A sender_handle in the body must belong to the asserted host;
			// otherwise a compromised host could impersonate users elsewhere.
			var probe struct {
				SenderHandle string `json:"sender_handle"`
			}
			if err := json.Unmarshal(body, &probe); err == nil && probe.SenderHandle != "" {
				handle, err := utils.ParseHandle(probe.SenderHandle)
				if err != nil || handle.Host != senderHost {
					reject(w, log, m, senderHost, "sender_handle_host_mismatch", http.StatusForbidden)
					return
				}
			}

			key, err := keys.FetchFederationKey(r.Context(), senderHost)
			if err != nil {
				status := http.StatusForbidden
				if errors.CodeOf(err) == errors.CodeRemoteUnreachable {
					status = http.StatusUnauthorized
				}
				reject(w, log, m, senderHost, "key_unresolvable", status)
				return
			}

			canonical, err := canonicaljson.Canonicalize(body)
			if err != nil {
				reject(w, log, m, senderHost, "body_not_json", http.StatusBadRequest)
				return
			}
			if !ed25519.Verify(key, canonical, sig) {
				reject(w, log, m, senderHost, "bad_signature", http.StatusUnauthorized)
				return
			}

			log.Info("federation request verified", "sender_host", senderHost, "path", r.URL.Path)
			m.InboundVerifications.WithLabelValues("ok").Inc()

			ctx := context.WithValue(r.Context(), senderHostKey, senderHost)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SenderHost returns the verified sender host placed by VerifyInbound.
func SenderHost(ctx context.Context) string {
	host, _ := ctx.Value(senderHostKey).(string)
	return host
}

func reject(w http.ResponseWriter, log *logger.Logger, m *metrics.Metrics, senderHost, reason string, status int) {
	log.Warn("federation request rejected", "sender_host", senderHost, "reason", reason)
	m.InboundVerifications.WithLabelValues(reason).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	code := errors.CodeSignatureInvalid
	if status == http.StatusForbidden {
		code = errors.CodeUntrustedHost
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "federation request rejected",
		"code":  string(code),
	})
}
