package shopify

import (
	"errors"
	"fmt"
	"time"
)

// Config holds configuration for the Shopify Admin API integration
type Config struct {
	// ShopDomain is the myshopify domain, e.g. "acme.myshopify.com"
	ShopDomain string
	// AccessToken is the Admin API access token
	AccessToken string
	// WebhookSecret is the shared secret for webhook HMAC verification
	WebhookSecret string
	// APIVersion is the Admin API version, e.g. "2024-01"
	APIVersion string
	// PageSize is the number of records requested per page
	PageSize int
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// BaseURL overrides the URL derived from ShopDomain and APIVersion.
	// Used by tests to point the adapter at a local server.
	BaseURL string
}

const (
	// DefaultAPIVersion is the Admin API version used when none is configured
	DefaultAPIVersion = "2024-01"
	// DefaultPageSize is the per-page record count used when none is
	// configured. 250 is the Admin API maximum.
	DefaultPageSize = 250
	// DefaultTimeout is the HTTP request timeout used when none is configured
	DefaultTimeout = 30 * time.Second
)

// Errors for Shopify configuration
var (
	ErrConfigMissingShopDomain    = errors.New("shopify: shop domain is required")
	ErrConfigMissingAccessToken   = errors.New("shopify: access token is required")
	ErrConfigMissingWebhookSecret = errors.New("shopify: webhook secret is required")
	ErrConfigInvalidPageSize      = errors.New("shopify: page size must be between 1 and 250")
)

// NewConfig creates a new Shopify configuration with defaults
func NewConfig(shopDomain, accessToken, webhookSecret string) *Config {
	return &Config{
		ShopDomain:    shopDomain,
		AccessToken:   accessToken,
		WebhookSecret: webhookSecret,
		APIVersion:    DefaultAPIVersion,
		PageSize:      DefaultPageSize,
		Timeout:       DefaultTimeout,
	}
}

// Validate validates the Shopify configuration and fills in defaults
func (c *Config) Validate() error {
	if c.ShopDomain == "" {
		return ErrConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.WebhookSecret == "" {
		return ErrConfigMissingWebhookSecret
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize < 1 || c.PageSize > 250 {
		return ErrConfigInvalidPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// APIBaseURL returns the versioned Admin API base URL
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s/admin/api/%s", c.ShopDomain, c.APIVersion)
}
