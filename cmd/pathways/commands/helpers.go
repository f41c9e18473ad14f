package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/liquid-state/pathways-client/pkg/pathways"
	"github.com/liquid-state/pathways-client/pkg/pathwaysclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrAppTokenRequired      = errors.New("app token is required (use --app-token or set it in the config file)")
	ErrJWTRequired           = errors.New("JWT is required (use --jwt, run 'pathways login' or set it in the config file)")
	ErrIdentityIDRequired    = errors.New("identity id is required")
	ErrEventTypeSlugRequired = errors.New("event type slug is required")
)

// newTransport builds the HTTP client injected into every Pathways
// client. The core library never retries; transport-level retry policy
// lives here.
func newTransport() pathways.HTTPDoer {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = viper.GetInt("retry-max")
	retryClient.Logger = nil

	return retryClient.StandardClient()
}

func clientConfig() *pathways.Config {
	return &pathways.Config{
		BaseURL:    viper.GetString("base-url"),
		HTTPClient: newTransport(),
		Debug:      viper.GetBool("verbose"),
	}
}

// CreateAdminService builds a mapped admin service from the CLI
// configuration.
func CreateAdminService() (pathways.AdminService, error) {
	appToken := viper.GetString("app-token")
	if appToken == "" {
		return nil, ErrAppTokenRequired
	}

	jwt := viper.GetString("jwt")
	if jwt == "" {
		return nil, ErrJWTRequired
	}

	return pathwaysclient.NewAdminService(appToken, jwt, clientConfig())
}

// CreateUserClient builds an end-user client from the CLI configuration.
func CreateUserClient() (pathways.Client, error) {
	jwt := viper.GetString("jwt")
	if jwt == "" {
		return nil, ErrJWTRequired
	}

	return pathwaysclient.New(jwt, clientConfig())
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}

func boolString(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
