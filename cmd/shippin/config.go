package main

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// AppConfig is loaded by go-config from config/app.json plus env overrides.
type AppConfig struct {
	Debug   bool    `json:"debug" yaml:"debug"`
	Server  Server  `json:"server" yaml:"server"`
	Backend Backend `json:"backend" yaml:"backend"`
}

type Server struct {
	Address string `json:"address" yaml:"address"`
}

type Backend struct {
	BaseURL       string `json:"base_url" yaml:"base_url"`
	AuthScheme    string `json:"auth_scheme" yaml:"auth_scheme"`
	LatencyNotice string `json:"latency_notice" yaml:"latency_notice"`
}

func (c AppConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required),
	)
}

func (b Backend) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.BaseURL, validation.Required, is.URL),
	)
}

func (c AppConfig) GetDebug() bool {
	return c.Debug
}

func (c AppConfig) GetServerAddress() string {
	if c.Server.Address == "" {
		return ":8573"
	}
	return c.Server.Address
}

func (c AppConfig) GetBaseURL() string {
	return c.Backend.BaseURL
}

func (c AppConfig) GetAuthScheme() string {
	if c.Backend.AuthScheme == "" {
		return "Bearer"
	}
	return c.Backend.AuthScheme
}

func (c AppConfig) GetLatencyNotice() string {
	return c.Backend.LatencyNotice
}
