// Package server loads the lawofficed configuration file.
package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sklowrylaw/website/pkg/domain/notification/mail"
)

type Config struct {
	// Port the HTTP listener binds. default = 3000.
	Port int32 `yaml:"port"`

	// Database is the postgres connection string.
	Database string `yaml:"database"`

	// ContentRoot is the directory the static site is served from.
	// default = "./public".
	ContentRoot string `yaml:"contentRoot"`

	// LogLevel of the server. default = "info".
	LogLevel string `yaml:"logLevel"`

	Session   SessionConfig   `yaml:"session"`
	Auth      AuthConfig      `yaml:"auth"`
	Mail      *mail.Config    `yaml:"mail"`
	Federated FederatedConfig `yaml:"federated"`
}

type SessionConfig struct {
	// Key signs session tokens. At least 32 bytes.
	Key string `yaml:"key"`
}

type AuthConfig struct {
	// AllowedEmails may sign in through the federated flow.
	AllowedEmails []string `yaml:"allowedEmails"`
}

// FederatedConfig describes the external identity provider. When
// ClientId is empty the federated flow is disabled.
type FederatedConfig struct {
	ClientId     string   `yaml:"clientId"`
	ClientSecret string   `yaml:"clientSecret"`
	AuthURL      string   `yaml:"authUrl"`
	TokenURL     string   `yaml:"tokenUrl"`
	UserinfoURL  string   `yaml:"userinfoUrl"`
	RedirectURL  string   `yaml:"redirectUrl"`
	Scopes       []string `yaml:"scopes"`
}

func (f FederatedConfig) Enabled() bool {
	return f.ClientId != ""
}

// Load reads and validates a config file.
func Load(filepath string) (*Config, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(content []byte) (*Config, error) {
	conf := &Config{}
	if err := yaml.Unmarshal(content, conf); err != nil {
		return nil, err
	}

	if conf.Port == 0 {
		conf.Port = 3000
	}
	if conf.ContentRoot == "" {
		conf.ContentRoot = "./public"
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}

	if conf.Database == "" {
		return nil, fmt.Errorf("config: database is required")
	}
	if len(conf.Session.Key) < 32 {
		return nil, fmt.Errorf("config: session.key must be at least 32 bytes")
	}
	if f := conf.Federated; f.Enabled() {
		for name, value := range map[string]string{
			"federated.clientSecret": f.ClientSecret,
			"federated.authUrl":      f.AuthURL,
			"federated.tokenUrl":     f.TokenURL,
			"federated.userinfoUrl":  f.UserinfoURL,
			"federated.redirectUrl":  f.RedirectURL,
		} {
			if value == "" {
				return nil, fmt.Errorf("config: %s is required when federated login is enabled", name)
			}
		}
	}

	return conf, nil
}
