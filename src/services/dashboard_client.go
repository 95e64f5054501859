package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/models"
	"github.com/username/ibportal/src/parsers"
	"github.com/username/ibportal/src/security"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const calculatorDataPath = "/api/dashboard/calculator-data"

// DashboardAuthMode selects how requests to the dashboard API are authenticated.
type DashboardAuthMode string

const (
	DashboardAuthNone   DashboardAuthMode = "none"
	DashboardAuthJWT    DashboardAuthMode = "jwt"
	DashboardAuthOAuth2 DashboardAuthMode = "oauth2"
)

type DashboardClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	AuthMode DashboardAuthMode

	// jwt mode
	JWTSecret          string
	ServiceName        string
	ServiceTokenExpiry time.Duration

	// oauth2 mode
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
	OAuthScopes       []string
}

// DashboardClient loads the calculator catalog from the dashboard API.
type DashboardClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewDashboardClient(cfg DashboardClientConfig) (*DashboardClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	var client *http.Client
	switch cfg.AuthMode {
	case DashboardAuthJWT:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("dashboard auth mode %q requires a JWT secret", cfg.AuthMode)
		}
		signer, err := security.NewServiceTokenSigner(cfg.JWTSecret, cfg.ServiceName, cfg.ServiceTokenExpiry)
		if err != nil {
			return nil, err
		}
		client = &http.Client{Transport: &serviceTokenTransport{base: http.DefaultTransport, signer: signer}}
	case DashboardAuthOAuth2:
		if cfg.OAuthClientID == "" || cfg.OAuthTokenURL == "" {
			return nil, fmt.Errorf("dashboard auth mode %q requires a client id and token URL", cfg.AuthMode)
		}
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
			Scopes:       cfg.OAuthScopes,
		}
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
		client = cc.Client(tokenCtx)
	case DashboardAuthNone, "":
		client = &http.Client{}
	default:
		return nil, fmt.Errorf("unknown dashboard auth mode: %s", cfg.AuthMode)
	}
	client.Jar = jar
	client.Timeout = cfg.Timeout

	return &DashboardClient{httpClient: client, baseURL: cfg.BaseURL}, nil
}

// FetchCatalog retrieves account types, instruments and commission levels in one call.
func (c *DashboardClient) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	url := c.baseURL + calculatorDataPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call dashboard API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dashboard API returned non-OK status %d. Body: %s", resp.StatusCode, string(bodyBytes))
	}

	catalog, err := parsers.ParseCatalog(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dashboard calculator data: %w", err)
	}

	logger.FromContext(ctx).Info("Dashboard catalog fetched",
		"accountTypes", len(catalog.AccountTypes),
		"instruments", len(catalog.Instruments),
		"commissionLevels", len(catalog.CommissionLevels),
		"duration", time.Since(started))
	return catalog, nil
}

// serviceTokenTransport signs every outgoing request with a fresh service token.
type serviceTokenTransport struct {
	base   http.RoundTripper
	signer *security.ServiceTokenSigner
}

func (t *serviceTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.signer.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to sign service token: %w", err)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
