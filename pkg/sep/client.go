package sep

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// API endpoint path roots, relative to {protocol}://{host}/.
const (
	domainPath          = "api/v1/dataProduct/domains"
	dataProductPath     = "api/v1/dataProduct/products"
	dataProductTagsPath = "api/v1/dataProduct/tags"
)

// Authenticator annotates an outgoing request with credentials. The four
// supported schemes live in pkg/auth; anything satisfying this interface
// works.
//
// An Authenticator may cache a negotiated session credential between calls.
// It is safe for sequential reuse but is not specified to be safe under
// concurrent calls without external synchronization.
type Authenticator interface {
	Authenticate(req *http.Request) error
}

// Client is a typed client for the Starburst Enterprise data products API.
// Every operation is one blocking HTTP round trip; the client performs no
// caching, retries or background work.
type Client struct {
	host       string
	protocol   string
	verifySSL  bool
	auth       Authenticator
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProtocol overrides the default https protocol.
func WithProtocol(protocol string) Option {
	return func(c *Client) {
		c.protocol = protocol
	}
}

// WithVerifySSL controls TLS certificate verification. Disabling it is an
// explicit opt-in taken once at construction.
func WithVerifySSL(verify bool) Option {
	return func(c *Client) {
		c.verifySSL = verify
	}
}

// WithHTTPClient supplies the underlying transport. Timeouts, if desired,
// are configured here by the caller.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a zerolog logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets a request timeout on the default transport. Ignored when
// WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient != nil {
			return
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// NewClient builds a client for the given host. The host must not carry a
// protocol prefix; the protocol is configured separately and defaults to
// https.
func NewClient(host string, auth Authenticator, opts ...Option) (*Client, error) {
	if strings.Contains(host, "://") {
		return nil, ErrConfiguration.Msg(fmt.Sprintf("host %q must not include a protocol; configure the protocol separately", host))
	}
	if host == "" {
		return nil, ErrConfiguration.Msg("host is required")
	}
	if auth == nil {
		return nil, ErrConfiguration.Msg("an authenticator is required")
	}

	c := &Client{
		host:      host,
		protocol:  "https",
		verifySSL: true,
		auth:      auth,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if !c.verifySSL {
		c.logger.Warn().Str("host", c.host).Msg("TLS certificate verification disabled")
		if c.httpClient.Transport == nil {
			c.httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}
	return c, nil
}

// BaseURL returns the root URL all request paths are resolved against.
func (c *Client) BaseURL() string {
	return c.protocol + "://" + c.host
}

// doRequest issues one signed round trip and returns the raw response body.
// Non-2xx responses map onto the error taxonomy with the status code and the
// body preserved verbatim.
func (c *Client) doRequest(ctx context.Context, method, p string, query url.Values, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, ErrValidation.MsgErr("unable to encode request body: "+err.Error(), err)
		}
		body = bytes.NewReader(data)
	}

	u := c.BaseURL() + "/" + strings.TrimPrefix(p, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, ErrValidation.MsgErr("unable to build request: "+err.Error(), err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.auth.Authenticate(req); err != nil {
		return nil, ErrAuthentication.MsgErr(
			"unable to sign request: "+err.Error()+"; OAuth or Kerberos re-authentication may be required", err)
	}

	c.logger.Debug().Str("method", method).Str("url", u).Msg("issuing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrTransport.MsgErr(fmt.Sprintf("request to %s failed: %v", u, err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrTransport.MsgErr("unable to read response body: "+err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrAuthentication.Msg(fmt.Sprintf(
				"authentication failed (401); re-authentication may be required.\nResponse body: %s", respBody)).
				SetStatusCode(resp.StatusCode)
		}
		return nil, ErrRequest.Msg(fmt.Sprintf(
			"request returned code %d.\nResponse body: %s", resp.StatusCode, respBody)).
			SetStatusCode(resp.StatusCode)
	}
	return respBody, nil
}
