package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// NewLoginCommand creates the login command. Pathways itself does not
// issue tokens; login stores a JWT obtained from the identity provider
// in the CLI config file.
func NewLoginCommand() *cobra.Command {
	var (
		jwt      string
		appToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Pathways credentials",
		Long:  "Store a JWT and optional app token in the CLI config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jwt == "" {
				fmt.Print("JWT: ")

				raw, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading JWT: %w", err)
				}

				jwt = strings.TrimSpace(string(raw))
			}

			if jwt == "" {
				return ErrJWTRequired
			}

			if appToken == "" {
				appToken = viper.GetString("app-token")
			}

			return saveCredentials(jwt, appToken)
		},
	}

	cmd.Flags().StringVar(&jwt, "with-jwt", "", "JWT to store (prompted when omitted)")
	cmd.Flags().StringVar(&appToken, "with-app-token", "", "app token to store")

	return cmd
}

func saveCredentials(jwt, appToken string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("locating home directory: %w", err)
	}

	configDir := filepath.Join(home, ".pathways")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settings := map[string]string{"jwt": jwt}
	if appToken != "" {
		settings["app-token"] = appToken
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println("Credentials saved to", configPath)

	return nil
}
