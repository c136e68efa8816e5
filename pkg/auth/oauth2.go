package auth

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// OAuth2Config configures the interactive OAuth2 authenticator.
type OAuth2Config struct {
	// BaseURL is the server root, e.g. https://sep.example.com. The
	// negotiation probe is issued against it.
	BaseURL string

	// HTTPClient is the transport used for negotiation. It should carry the
	// same TLS preferences as the API client. Defaults to http.Client{}.
	HTTPClient *http.Client

	// OpenBrowser opens the authorization URL. Defaults to browser.OpenURL.
	// A failed open is not fatal; the URL is logged for manual completion.
	OpenBrowser func(url string) error

	// PollInterval is the delay between token-server polls. Default 500ms.
	PollInterval time.Duration

	// Timeout bounds the whole negotiation. Default 2 minutes.
	Timeout time.Duration

	Logger *zerolog.Logger
}

// OAuth2 performs the server-initiated interactive authorization flow: an
// unauthenticated probe yields a WWW-Authenticate challenge naming a redirect
// URL for the browser and a token server to poll until the user completes
// authentication. The negotiated token is held behind an oauth2.TokenSource
// and replayed on every request.
//
// Negotiation is deferred until the first Authenticate call, so the browser
// prompt happens at a predictable point in program flow (see
// authconfig.Connect).
type OAuth2 struct {
	cfg    OAuth2Config
	logger zerolog.Logger
	ts     oauth2.TokenSource
}

const probePath = "/api/v1/dataProduct/domains"

var (
	redirectServerRe = regexp.MustCompile(`x_redirect_server(?:_url)?="([^"]+)"`)
	tokenServerRe    = regexp.MustCompile(`x_token_server(?:_url)?="([^"]+)"`)
)

// NewOAuth2 returns an interactive OAuth2 authenticator.
func NewOAuth2(cfg OAuth2Config) *OAuth2 {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = browser.OpenURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &OAuth2{cfg: cfg, logger: logger}
}

func (o *OAuth2) Authenticate(req *http.Request) error {
	if o.ts == nil {
		ts, err := o.negotiate(req.Context())
		if err != nil {
			return errors.Wrap(err, "OAuth2 authentication failed; re-authentication may be required")
		}
		o.ts = ts
	}
	tok, err := o.ts.Token()
	if err != nil {
		return errors.Wrap(err, "OAuth2 token unavailable; re-authentication may be required")
	}
	tok.SetAuthHeader(req)
	return nil
}

// negotiate drives the redirect/poll handshake and returns a token source
// holding the issued token.
func (o *OAuth2) negotiate(ctx context.Context) (oauth2.TokenSource, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	redirectURL, tokenURL, err := o.challenge(ctx)
	if err != nil {
		return nil, err
	}

	o.logger.Info().Str("url", redirectURL).Msg("opening browser for OAuth2 authorization")
	if err := o.cfg.OpenBrowser(redirectURL); err != nil {
		o.logger.Warn().Err(err).Str("url", redirectURL).
			Msg("could not open browser; open the URL manually to continue")
	}

	token, err := o.pollToken(ctx, tokenURL)
	if err != nil {
		return nil, err
	}
	o.logger.Info().Msg("OAuth2 token obtained")
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), nil
}

// challenge issues an unauthenticated probe and extracts the redirect and
// token server URLs from the WWW-Authenticate header.
func (o *OAuth2) challenge(ctx context.Context) (redirectURL, tokenURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.BaseURL+probePath, nil)
	if err != nil {
		return "", "", errors.Wrap(err, "unable to build OAuth2 probe request")
	}
	resp, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", "", errors.Wrap(err, "OAuth2 probe request failed")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusUnauthorized {
		return "", "", errors.Errorf("expected an authentication challenge, got status %d", resp.StatusCode)
	}
	header := resp.Header.Get("WWW-Authenticate")
	redirect := redirectServerRe.FindStringSubmatch(header)
	token := tokenServerRe.FindStringSubmatch(header)
	if redirect == nil || token == nil {
		return "", "", errors.Errorf("server did not offer an OAuth2 challenge: %q", header)
	}
	return redirect[1], token[1], nil
}

// pollToken polls the token server until the user completes the browser flow
// and a token is issued.
func (o *OAuth2) pollToken(ctx context.Context, tokenURL string) (string, error) {
	nextURI := tokenURL
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, nextURI, nil)
		if err != nil {
			return "", errors.Wrap(err, "unable to build token poll request")
		}
		resp, err := o.cfg.HTTPClient.Do(req)
		if err != nil {
			return "", errors.Wrap(err, "token poll request failed")
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", errors.Wrap(err, "unable to read token poll response")
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
			return "", errors.Errorf("token server returned code %d: %s", resp.StatusCode, body)
		}

		parsed := gjson.ParseBytes(body)
		if errMsg := parsed.Get("error"); errMsg.Exists() && errMsg.String() != "" {
			return "", errors.Errorf("authorization failed: %s", errMsg.String())
		}
		if token := parsed.Get("token"); token.Exists() && token.String() != "" {
			return token.String(), nil
		}
		if next := parsed.Get("nextUri"); next.Exists() && next.String() != "" {
			nextURI = next.String()
		}

		select {
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "timed out waiting for OAuth2 authorization")
		case <-time.After(o.cfg.PollInterval):
		}
	}
}
