// Package authconfig turns a flat environment-style configuration into a
// validated credential bundle and a connected API client. Resolution is pure
// validation and never touches the network; Connect builds the live client
// and, for interactive methods, issues one proactive request so browser
// prompts happen at a predictable point in program flow.
package authconfig

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/andyetzel/starburst-data-products-client/pkg/auth"
	"github.com/andyetzel/starburst-data-products-client/pkg/sep"
)

// Method is a supported authentication scheme.
type Method string

const (
	MethodBasic     Method = "basic"
	MethodOAuth2    Method = "oauth2"
	MethodOAuth2JWT Method = "oauth2_jwt"
	MethodKerberos  Method = "kerberos"
)

// SupportedMethods lists the recognized AUTH_METHOD values.
var SupportedMethods = []Method{MethodBasic, MethodOAuth2, MethodOAuth2JWT, MethodKerberos}

// Settings is the raw configuration namespace, bound to environment
// variables. Method-specific requirements are enforced by Resolve, not here.
type Settings struct {
	Method   string `env:"AUTH_METHOD" env-default:"basic"`
	Host     string `env:"SEP_HOST" validate:"required"`
	Protocol string `env:"SEP_PROTOCOL" env-default:"https"`

	// SSLVerify is kept raw so the permissive boolean parser below decides;
	// unset means verification stays on.
	SSLVerify string `env:"SSL_VERIFY"`

	Username string `env:"SEP_USERNAME" validate:"required_if=Method basic"`
	Password string `env:"SEP_PASSWORD" validate:"required_if=Method basic"`

	JWTToken string `env:"SEP_JWT_TOKEN" validate:"required_if=Method oauth2_jwt"`

	KerberosServiceName string `env:"KERBEROS_SERVICE_NAME" validate:"required_if=Method kerberos"`
	KerberosConfig      string `env:"KERBEROS_CONFIG"`
	KerberosKeytab      string `env:"KERBEROS_KEYTAB"`
	KerberosPrincipal   string `env:"KERBEROS_PRINCIPAL"`
}

// CredentialBundle is a validated, method-specific credential set, ready to
// build a client from. Producing one performs no network I/O.
type CredentialBundle struct {
	Method    Method
	Host      string
	Protocol  string
	VerifySSL bool

	settings Settings
	logger   zerolog.Logger
}

var validate = validator.New()

// Load reads Settings from the process environment. A non-empty envFile is
// read first (dotenv format), with real environment variables taking
// precedence.
func Load(envFile string) (*Settings, error) {
	var s Settings
	var err error
	if envFile != "" {
		err = cleanenv.ReadConfig(envFile, &s)
	} else {
		err = cleanenv.ReadEnv(&s)
	}
	if err != nil {
		return nil, sep.ErrConfiguration.MsgErr("unable to read configuration: "+err.Error(), err)
	}
	return &s, nil
}

// Resolve validates the settings and produces a credential bundle, or fails
// fast with an actionable error before any network call is attempted.
func (s *Settings) Resolve(opts ...ResolveOption) (*CredentialBundle, error) {
	method := Method(strings.ToLower(s.Method))
	if !methodSupported(method) {
		return nil, sep.ErrConfiguration.Msg(fmt.Sprintf(
			"unsupported authentication method %q; supported methods: %s", s.Method, methodList()))
	}

	normalized := *s
	normalized.Method = string(method)
	if err := validate.Struct(normalized); err != nil {
		return nil, sep.ErrConfiguration.MsgErr(describeValidation(method, err), err)
	}
	if strings.Contains(s.Host, "://") {
		return nil, sep.ErrConfiguration.Msg("SEP_HOST must not include a protocol; set SEP_PROTOCOL instead")
	}

	b := &CredentialBundle{
		Method:    method,
		Host:      s.Host,
		Protocol:  s.Protocol,
		VerifySSL: parseSSLVerify(s.SSLVerify),
		settings:  normalized,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ResolveOption configures the credential bundle.
type ResolveOption func(*CredentialBundle)

// WithLogger attaches a logger used by the bundle and propagated to the
// authenticator and client it builds.
func WithLogger(logger zerolog.Logger) ResolveOption {
	return func(b *CredentialBundle) {
		b.logger = logger
	}
}

// Connect builds the authenticator and client. For the interactive methods
// (oauth2, oauth2_jwt, kerberos) it proactively lists domains once so that
// any interactive prompt fires here rather than on the first incidental
// call; a failure from that probe propagates unchanged.
func (b *CredentialBundle) Connect(ctx context.Context, opts ...sep.Option) (*sep.Client, error) {
	authenticator, err := b.authenticator()
	if err != nil {
		return nil, err
	}

	clientOpts := append([]sep.Option{
		sep.WithProtocol(b.Protocol),
		sep.WithVerifySSL(b.VerifySSL),
		sep.WithLogger(b.logger),
	}, opts...)

	client, err := sep.NewClient(b.Host, authenticator, clientOpts...)
	if err != nil {
		return nil, err
	}

	if b.Method != MethodBasic {
		if _, err := client.ListDomains(ctx); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (b *CredentialBundle) authenticator() (sep.Authenticator, error) {
	switch b.Method {
	case MethodBasic:
		return auth.NewBasic(b.settings.Username, b.settings.Password), nil
	case MethodOAuth2:
		return auth.NewOAuth2(auth.OAuth2Config{
			BaseURL:    b.Protocol + "://" + b.Host,
			HTTPClient: b.negotiationClient(),
			Logger:     &b.logger,
		}), nil
	case MethodOAuth2JWT:
		return auth.NewJWT(b.settings.JWTToken, &b.logger), nil
	case MethodKerberos:
		k, err := auth.NewKerberos(auth.KerberosConfig{
			ServiceName: b.settings.KerberosServiceName,
			ConfigPath:  b.settings.KerberosConfig,
			KeytabPath:  b.settings.KerberosKeytab,
			Principal:   b.settings.KerberosPrincipal,
			Logger:      &b.logger,
		})
		if err != nil {
			return nil, sep.ErrConfiguration.MsgErr(err.Error(), err)
		}
		return k, nil
	}
	return nil, sep.ErrConfiguration.Msg(fmt.Sprintf("unsupported authentication method %q", b.Method))
}

// negotiationClient mirrors the API client's TLS preference for the OAuth2
// handshake traffic.
func (b *CredentialBundle) negotiationClient() *http.Client {
	if b.VerifySSL {
		return &http.Client{}
	}
	return &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}}
}

// Describe returns a redacted summary of the active configuration, safe for
// logging.
func (b *CredentialBundle) Describe() map[string]string {
	info := map[string]string{
		"method":     string(b.Method),
		"host":       b.Host,
		"protocol":   b.Protocol,
		"verify_ssl": fmt.Sprintf("%t", b.VerifySSL),
	}
	switch b.Method {
	case MethodBasic:
		info["username"] = b.settings.Username
		info["password"] = redact(b.settings.Password)
	case MethodOAuth2JWT:
		info["jwt_token"] = redact(b.settings.JWTToken)
	case MethodKerberos:
		info["service_name"] = b.settings.KerberosServiceName
		info["config"] = b.settings.KerberosConfig
		info["keytab"] = b.settings.KerberosKeytab
		info["principal"] = b.settings.KerberosPrincipal
	}
	return info
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "***"
}

// parseSSLVerify is deliberately permissive: unset keeps verification on,
// and anything outside the recognized truthy set disables it.
func parseSSLVerify(v string) bool {
	if v == "" {
		return true
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func methodSupported(m Method) bool {
	for _, s := range SupportedMethods {
		if m == s {
			return true
		}
	}
	return false
}

func methodList() string {
	names := make([]string, 0, len(SupportedMethods))
	for _, m := range SupportedMethods {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// describeValidation turns validator output into the actionable message the
// caller should see, naming the missing environment variables.
func describeValidation(method Method, err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid configuration: " + err.Error()
	}
	envNames := map[string]string{
		"Host":                "SEP_HOST",
		"Username":            "SEP_USERNAME",
		"Password":            "SEP_PASSWORD",
		"JWTToken":            "SEP_JWT_TOKEN",
		"KerberosServiceName": "KERBEROS_SERVICE_NAME",
	}
	missing := make([]string, 0, len(verrs))
	for _, v := range verrs {
		if name, ok := envNames[v.Field()]; ok {
			missing = append(missing, name)
		} else {
			missing = append(missing, v.Field())
		}
	}
	return fmt.Sprintf("method %q requires environment variables: %s", method, strings.Join(missing, ", "))
}
