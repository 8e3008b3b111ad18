package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courier/config"
	"courier/pkg/errors"
	"courier/pkg/logger"
	"courier/pkg/utils"
)

const maxResponseBytes = 1 << 20

// Result is the uniform outcome of a federation request. Err is set for
// anything that prevented a response; Status/JSON are set whenever the
// remote answered, 2xx or not.
type Result struct {
	OK     bool
	Status int
	JSON   json.RawMessage
	Err    error
}

// Client issues outbound federation requests with SSRF protection: the
// hostname is resolved exactly once, the resolved address is validated,
// and the connection is made to that address while the Host header and
// TLS SNI keep the original name. The validated address and the dialed
// address are the same bytes, so a DNS answer cannot change between the
// check and the connect.
type Client struct {
	cfg     *config.Config
	logger  *logger.Logger
	resolve func(ctx context.Context, host string) ([]net.IP, error)
}

func NewClient(cfg *config.Config, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		resolve: func(ctx context.Context, host string) ([]net.IP, error) {
			addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			ips := make([]net.IP, 0, len(addrs))
			for _, a := range addrs {
				ips = append(ips, a.IP)
			}
			return ips, nil
		},
	}
}

// NewClientWithResolver injects a resolver, for tests.
func NewClientWithResolver(cfg *config.Config, logger *logger.Logger, resolve func(ctx context.Context, host string) ([]net.IP, error)) *Client {
	c := NewClient(cfg, logger)
	c.resolve = resolve
	return c
}

// IsFederationHostAllowed applies the allow-list check standalone, as a
// pre-flight before any network work.
func (c *Client) IsFederationHostAllowed(host string) bool {
	host = utils.NormalizeHost(host)
	if host == "" {
		return false
	}
	if len(c.cfg.Federation.AllowedHosts) == 0 {
		return true
	}
	for _, allowed := range c.cfg.Federation.AllowedHosts {
		if utils.NormalizeHost(allowed) == host {
			return true
		}
	}
	return false
}

// SafeRequestJSON performs the request and never panics; every failure mode
// comes back inside Result so callers apply one error path.
func (c *Client) SafeRequestJSON(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) Result {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Result{Err: errors.Wrap(errors.CodeInvalidArgument, "invalid federation url", err)}
	}

	hostname := utils.NormalizeHost(u.Hostname())
	if !c.IsFederationHostAllowed(hostname) {
		return Result{Err: errors.ErrUntrustedHost}
	}

	ip, err := c.resolveAndValidate(ctx, hostname)
	if err != nil {
		return Result{Err: err}
	}

	scheme, err := c.selectScheme(u.Scheme, hostname, ip)
	if err != nil {
		return Result{Err: err}
	}
	u.Scheme = scheme

	port := u.Port()
	if port == "" {
		if scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	dialAddr := net.JoinHostPort(ip.String(), port)

	httpClient := &http.Client{
		Timeout: c.cfg.Federation.RequestTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
				d := net.Dialer{Timeout: c.cfg.Federation.RequestTimeout}
				return d.DialContext(ctx, network, dialAddr)
			},
			TLSClientConfig: &tls.Config{
				// SNI and certificate validation stay on the original
				// name even though the socket targets the resolved IP.
				ServerName: hostname,
			},
			ForceAttemptHTTP2: true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// A redirect could point anywhere, including back inside the
			// private network. Federation endpoints do not redirect.
			return http.ErrUseLastResponse
		},
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return Result{Err: errors.Wrap(errors.CodeInternal, "building federation request", err)}
	}
	req.Host = hostname
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Warn("federation request failed", "host", hostname, "err", err)
		return Result{Err: errors.ErrRemoteUnreachable(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{Status: resp.StatusCode, Err: errors.ErrRemoteUnreachable(err)}
	}

	res := Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
	}
	if json.Valid(raw) {
		res.JSON = raw
	}
	return res
}

// resolveAndValidate picks one address deterministically and checks it
// against the private-range policy.
func (c *Client) resolveAndValidate(ctx context.Context, hostname string) (net.IP, error) {
	host := hostname

	var ip net.IP
	if parsed := net.ParseIP(host); parsed != nil {
		ip = parsed
	} else {
		resolveCtx, cancel := context.WithTimeout(ctx, c.cfg.Federation.RequestTimeout)
		defer cancel()

		ips, err := c.resolve(resolveCtx, host)
		if err != nil || len(ips) == 0 {
			return nil, errors.ErrRemoteUnreachable(err)
		}
		// First answer wins; re-resolution never happens because the dial
		// below uses this exact address.
		ip = ips[0]
	}

	if !c.cfg.Federation.AllowPrivateNetworks && isDisallowedIP(ip) {
		c.logger.Warn("federation target resolves to disallowed address", "host", host, "ip", ip.String())
		return nil, errors.ErrPrivateAddress
	}
	return ip, nil
}

func (c *Client) selectScheme(requested, hostname string, ip net.IP) (string, error) {
	if requested == "https" || requested == "" {
		return "https", nil
	}
	if requested != "http" {
		return "", errors.New(errors.CodeInvalidArgument, "unsupported url scheme")
	}
	// Plaintext only for loopback or IP-literal targets outside production.
	if c.cfg.IsProduction() {
		return "", errors.New(errors.CodeUntrustedHost, "plaintext federation is not permitted in production")
	}
	if ip.IsLoopback() || net.ParseIP(strings.TrimSuffix(hostname, ".")) != nil {
		return "http", nil
	}
	return "", errors.New(errors.CodeUntrustedHost, "plaintext federation requires a loopback or IP-literal host")
}

func isDisallowedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

// RequestTimeout exposes the configured per-request bound.
func (c *Client) RequestTimeout() time.Duration {
	return c.cfg.Federation.RequestTimeout
}
