package transport

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/config"
	appErrors "courier/pkg/errors"
	"courier/pkg/logger"
)

func testClient(t *testing.T, cfg *config.Config, ips ...string) *Client {
	t.Helper()
	if cfg.Federation.RequestTimeout == 0 {
		cfg.Federation.RequestTimeout = 2 * time.Second
	}
	l := logger.Nop()
	return NewClientWithResolver(cfg, &l, func(ctx context.Context, host string) ([]net.IP, error) {
		out := make([]net.IP, 0, len(ips))
		for _, s := range ips {
			out = append(out, net.ParseIP(s))
		}
		return out, nil
	})
}

func Test_IsFederationHostAllowed(t *testing.T) {
	t.Run("empty allow-list permits any host", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		assert.True(t, c.IsFederationHostAllowed("anything.example"))
	})

	t.Run("allow-list restricts", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Federation.AllowedHosts = []string{"friend.example"}
		c := testClient(t, cfg)

		assert.True(t, c.IsFederationHostAllowed("friend.example"))
		assert.True(t, c.IsFederationHostAllowed("Friend.Example"))
		assert.False(t, c.IsFederationHostAllowed("stranger.example"))
	})

	t.Run("empty host is never allowed", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		assert.False(t, c.IsFederationHostAllowed(""))
	})
}

func Test_SafeRequestJSON_BlocksPrivateAddresses(t *testing.T) {
	// Each address class the resolver could steer us into.
	cases := []struct {
		name string
		ip   string
	}{
		{"loopback", "127.0.0.1"},
		{"rfc1918 10/8", "10.0.0.8"},
		{"rfc1918 172.16/12", "172.16.4.2"},
		{"rfc1918 192.168/16", "192.168.1.1"},
		{"link-local", "169.254.169.254"},
		{"multicast", "224.0.0.1"},
		{"unspecified", "0.0.0.0"},
		{"ipv6 loopback", "::1"},
		{"ipv6 unique local", "fd00::1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, &config.Config{}, tc.ip)
			res := c.SafeRequestJSON(context.Background(), http.MethodGet, "https://remote.example/x", nil, nil)
			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, appErrors.ErrPrivateAddress)
		})
	}
}

func Test_SafeRequestJSON_AllowPrivateNetworks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pong":true}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Federation.AllowPrivateNetworks = true
	c := testClient(t, cfg, "127.0.0.1")

	port := srv.Listener.Addr().(*net.TCPAddr).Port
	res := c.SafeRequestJSON(context.Background(), http.MethodGet,
		"http://remote.test:"+strconv.Itoa(port)+"/ping", nil, nil)

	require.NoError(t, res.Err)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"pong":true}`, string(res.JSON))
}

func Test_SafeRequestJSON_HostHeaderPreserved(t *testing.T) {
	var gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Federation.AllowPrivateNetworks = true
	c := testClient(t, cfg, "127.0.0.1")

	port := srv.Listener.Addr().(*net.TCPAddr).Port
	res := c.SafeRequestJSON(context.Background(), http.MethodGet,
		"http://remote.test:"+strconv.Itoa(port)+"/x", nil, nil)

	require.NoError(t, res.Err)
	// The socket went to 127.0.0.1 but the request asserted the original name.
	assert.Equal(t, "remote.test", gotHost)
}

func Test_SafeRequestJSON_DoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://169.254.169.254/latest/meta-data", http.StatusFound)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Federation.AllowPrivateNetworks = true
	c := testClient(t, cfg, "127.0.0.1")

	port := srv.Listener.Addr().(*net.TCPAddr).Port
	res := c.SafeRequestJSON(context.Background(), http.MethodGet,
		"http://remote.test:"+strconv.Itoa(port)+"/x", nil, nil)

	require.NoError(t, res.Err)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusFound, res.Status)
}

func Test_SafeRequestJSON_Preflight(t *testing.T) {
	t.Run("disallowed host fails before any network work", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Federation.AllowedHosts = []string{"friend.example"}
		cfg.Federation.RequestTimeout = 2 * time.Second
		l := logger.Nop()
		c := NewClientWithResolver(cfg, &l, func(ctx context.Context, host string) ([]net.IP, error) {
			t.Fatal("resolver must not be called for a disallowed host")
			return nil, nil
		})

		res := c.SafeRequestJSON(context.Background(), http.MethodGet, "https://stranger.example/x", nil, nil)
		assert.ErrorIs(t, res.Err, appErrors.ErrUntrustedHost)
	})

	t.Run("malformed url", func(t *testing.T) {
		c := testClient(t, &config.Config{}, "93.184.216.34")
		res := c.SafeRequestJSON(context.Background(), http.MethodGet, "http://bad url/x", nil, nil)
		require.Error(t, res.Err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(res.Err))
	})

	t.Run("resolution failure", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Federation.RequestTimeout = 2 * time.Second
		l := logger.Nop()
		c := NewClientWithResolver(cfg, &l, func(ctx context.Context, host string) ([]net.IP, error) {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		})

		res := c.SafeRequestJSON(context.Background(), http.MethodGet, "https://gone.example/x", nil, nil)
		require.Error(t, res.Err)
		assert.Equal(t, appErrors.CodeRemoteUnreachable, appErrors.CodeOf(res.Err))
	})
}

func Test_SelectScheme(t *testing.T) {
	public := net.ParseIP("93.184.216.34")
	loopback := net.ParseIP("127.0.0.1")

	t.Run("https always passes", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		s, err := c.selectScheme("https", "remote.example", public)
		require.NoError(t, err)
		assert.Equal(t, "https", s)
	})

	t.Run("missing scheme defaults to https", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		s, err := c.selectScheme("", "remote.example", public)
		require.NoError(t, err)
		assert.Equal(t, "https", s)
	})

	t.Run("plaintext forbidden in production", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Server.Environment = "production"
		c := testClient(t, cfg)

		_, err := c.selectScheme("http", "remote.example", loopback)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeUntrustedHost, appErrors.CodeOf(err))
	})

	t.Run("plaintext allowed for loopback outside production", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		s, err := c.selectScheme("http", "remote.test", loopback)
		require.NoError(t, err)
		assert.Equal(t, "http", s)
	})

	t.Run("plaintext to a public name is refused", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		_, err := c.selectScheme("http", "remote.example", public)
		require.Error(t, err)
	})

	t.Run("unknown scheme is refused", func(t *testing.T) {
		c := testClient(t, &config.Config{})
		_, err := c.selectScheme("gopher", "remote.example", public)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})
}
