package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	validator "gopkg.in/go-playground/validator.v9"
)

type Config struct {
	LogLevel string       `json:"log_level" validate:"required"`
	Server   ServerConfig `json:"server"`
	CPanel   CPanelConfig `json:"cpanel"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port" validate:"required,gte=1,lte=65535"`

	// Each scrape shells out dozens of times; the cap keeps overlapping
	// scrapes from stampeding the server. Zero disables the limit.
	MaxConcurrentScrapes int `json:"max_concurrent_scrapes" validate:"gte=0,lte=64"`
}

type CPanelConfig struct {
	WHMAPIPath string `json:"whmapi1_path" validate:"required"`
	UAPIPath   string `json:"uapi_path" validate:"required"`

	// whmapi1 and uapi --user only work as root; tests disable the check.
	DisablePrivilegeCheck bool `json:"disable_privilege_check"`
}

const defaultConfig = `
{
	"log_level": "INFO",
	"server": {
		"host": "0.0.0.0",
		"port": 9123,
		"max_concurrent_scrapes": 4
	},
	"cpanel": {
		"whmapi1_path": "whmapi1",
		"uapi_path": "uapi"
	}
}
`

func LoadConfig(configFile string) (*Config, error) {
	var config Config

	if configFile == "" {
		return &config, errors.New("Must provide a config file")
	}

	bytes, err := os.ReadFile(configFile)
	if err != nil {
		return &config, err
	}

	json.Unmarshal([]byte(defaultConfig), &config) // Parse defaults
	if err = json.Unmarshal(bytes, &config); err != nil {
		return &config, err
	}

	if err = config.Validate(); err != nil {
		return &config, fmt.Errorf("Validating config contents: %s", err)
	}

	return &config, nil
}

func (c Config) Validate() error {
	validate := validator.New()

	return validate.Struct(c)
}
