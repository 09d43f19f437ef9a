package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rousage/coffeeshop/internal/appvalidator"
)

// Environment is the settings object shared with the coffee shop front end.
// It is built once by Load and passed around by value; nothing mutates it
// afterwards, so concurrent reads need no locking.
type Environment struct {
	Production   bool   `json:"production"`
	APIServerURL string `json:"apiServerUrl" validate:"required,http_url"`
	Auth0        Auth0  `json:"auth0"`
}

// Auth0 groups the identity provider settings.
type Auth0 struct {
	// URL is the tenant domain prefix, e.g. "dev-fvxwov-3.eu".
	URL         string `json:"url" validate:"required"`
	Audience    string `json:"audience" validate:"required,uri"`
	ClientID    string `json:"clientId" validate:"required"`
	CallbackURL string `json:"callbackURL" validate:"required,http_url"`
}

// DevelopmentEnvironment returns the settings used for local development.
func DevelopmentEnvironment() Environment {
	return Environment{
		Production:   false,
		APIServerURL: "http://127.0.0.1:5000",
		Auth0: Auth0{
			URL:         "dev-fvxwov-3.eu",
			Audience:    "https://coffee_shop_full_stack.com",
			ClientID:    "3KkgSLPcaxne9QPGEDjwMt0NyCxB8wTF",
			CallbackURL: "http://localhost:8100",
		},
	}
}

func loadEnvironment() (Environment, error) {
	env := DevelopmentEnvironment()

	production, err := getBoolEnv("APP_PRODUCTION", env.Production)
	if err != nil {
		return Environment{}, err
	}

	env = Environment{
		Production:   production,
		APIServerURL: getEnvOr("API_SERVER_URL", env.APIServerURL),
		Auth0: Auth0{
			URL:         getEnvOr("AUTH0_URL", env.Auth0.URL),
			Audience:    getEnvOr("AUTH0_AUDIENCE", env.Auth0.Audience),
			ClientID:    getEnvOr("AUTH0_CLIENT_ID", env.Auth0.ClientID),
			CallbackURL: getEnvOr("AUTH0_CALLBACK_URL", env.Auth0.CallbackURL),
		},
	}

	if err := env.Validate(); err != nil {
		return Environment{}, err
	}

	return env, nil
}

// Validate reports missing or malformed settings.
func (e Environment) Validate() error {
	v := appvalidator.New()
	if err := v.Validate(e); err != nil {
		return fmt.Errorf("invalid environment settings: %w", err)
	}

	return nil
}

// ServerPort is the port component of APIServerURL, or the scheme's
// default port when none is given.
func (e Environment) ServerPort() int {
	u, err := url.Parse(e.APIServerURL)
	if err != nil {
		return 0
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		return port
	}

	if u.Scheme == "https" {
		return 443
	}

	return 80
}

// CallbackOrigin is the scheme and host of the front end's callback URL.
func (e Environment) CallbackOrigin() string {
	u, err := url.Parse(e.Auth0.CallbackURL)
	if err != nil || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

// Domain is the tenant hostname.
func (a Auth0) Domain() string {
	return a.URL + ".auth0.com"
}

// Issuer is the token issuer Auth0 puts in the "iss" claim.
func (a Auth0) Issuer() string {
	return "https://" + a.Domain() + "/"
}

// AuthorizeURL builds the implicit-flow login link. The identity provider
// redirects to CallbackURL+callbackPath with the access token in the fragment.
func (a Auth0) AuthorizeURL(callbackPath string) string {
	q := url.Values{}
	q.Set("audience", a.Audience)
	q.Set("response_type", "token")
	q.Set("client_id", a.ClientID)
	q.Set("redirect_uri", a.CallbackURL+callbackPath)

	u := url.URL{
		Scheme:   "https",
		Host:     a.Domain(),
		Path:     "/authorize",
		RawQuery: q.Encode(),
	}

	return u.String()
}
