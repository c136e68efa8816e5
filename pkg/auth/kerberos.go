package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	krbclient "github.com/jcmturner/gokrb5/v8/client"
	krbconfig "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/keytab"
	"github.com/jcmturner/gokrb5/v8/spnego"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// KerberosConfig configures the Kerberos authenticator.
type KerberosConfig struct {
	// ServiceName is the service portion of the SPN, e.g. "HTTP".
	ServiceName string

	// ConfigPath locates krb5.conf. Defaults to /etc/krb5.conf.
	ConfigPath string

	// KeytabPath locates a keytab. When set, Principal is required and the
	// login uses the keytab; otherwise the credential cache is used.
	KeytabPath string

	// Principal is "user@REALM". The realm falls back to the default realm
	// from krb5.conf when omitted.
	Principal string

	// CCachePath locates a credential cache for the keytab-less path.
	// Defaults to KRB5CCNAME, falling back to /tmp/krb5cc_{uid}.
	CCachePath string

	Logger *zerolog.Logger
}

// Kerberos signs requests with a SPNEGO negotiation header. The underlying
// gokrb5 session client is built lazily on the first request and reused for
// subsequent ones.
type Kerberos struct {
	cfg    KerberosConfig
	logger zerolog.Logger
	client *krbclient.Client
}

// NewKerberos returns a Kerberos authenticator. Only configuration shape is
// validated here; the actual login happens on first use.
func NewKerberos(cfg KerberosConfig) (*Kerberos, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("kerberos service name is required")
	}
	if cfg.KeytabPath != "" && cfg.Principal == "" {
		return nil, errors.New("kerberos principal is required when a keytab is used")
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = "/etc/krb5.conf"
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Kerberos{cfg: cfg, logger: logger}, nil
}

func (k *Kerberos) Authenticate(req *http.Request) error {
	if k.client == nil {
		cl, err := k.login()
		if err != nil {
			return errors.Wrap(err, "Kerberos authentication failed; re-authentication may be required")
		}
		k.client = cl
	}
	spn := k.cfg.ServiceName + "/" + req.URL.Hostname()
	if err := spnego.SetSPNEGOHeader(k.client, req, spn); err != nil {
		return errors.Wrap(err, "SPNEGO negotiation failed; re-authentication may be required")
	}
	return nil
}

func (k *Kerberos) login() (*krbclient.Client, error) {
	cfg, err := krbconfig.Load(k.cfg.ConfigPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load krb5 config from %s", k.cfg.ConfigPath)
	}

	var cl *krbclient.Client
	if k.cfg.KeytabPath != "" {
		kt, err := keytab.Load(k.cfg.KeytabPath)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load keytab from %s", k.cfg.KeytabPath)
		}
		user, realm := splitPrincipal(k.cfg.Principal, cfg.LibDefaults.DefaultRealm)
		cl = krbclient.NewWithKeytab(user, realm, kt, cfg, krbclient.DisablePAFXFAST(true))
	} else {
		cc, err := credentials.LoadCCache(k.ccachePath())
		if err != nil {
			return nil, errors.Wrap(err, "unable to load kerberos credential cache")
		}
		cl, err = krbclient.NewFromCCache(cc, cfg, krbclient.DisablePAFXFAST(true))
		if err != nil {
			return nil, errors.Wrap(err, "unable to build kerberos client from credential cache")
		}
	}

	if err := cl.Login(); err != nil {
		return nil, errors.Wrap(err, "kerberos login failed")
	}
	k.logger.Info().Str("service", k.cfg.ServiceName).Msg("kerberos session established")
	return cl, nil
}

// ccachePath resolves the credential cache location: explicit config, then
// KRB5CCNAME, then the conventional per-uid default.
func (k *Kerberos) ccachePath() string {
	if k.cfg.CCachePath != "" {
		return k.cfg.CCachePath
	}
	if env := os.Getenv("KRB5CCNAME"); env != "" {
		return strings.TrimPrefix(env, "FILE:")
	}
	return fmt.Sprintf("/tmp/krb5cc_%d", os.Getuid())
}

func splitPrincipal(principal, defaultRealm string) (user, realm string) {
	parts := strings.SplitN(principal, "@", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return principal, defaultRealm
}
