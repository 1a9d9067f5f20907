package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// GoogleConfig configures the OAuth2 client. The URL fields default to
// Google's public endpoints.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
	HTTPClient  *http.Client
}

var _ ports.GoogleProvider = (*Google)(nil)

// Google runs the authorization-code flow and reads the OpenID userinfo.
type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewGoogle(cfg GoogleConfig) *Google {
	authURL, tokenURL, userInfoURL := cfg.AuthURL, cfg.TokenURL, cfg.UserInfoURL
	if authURL == "" {
		authURL = googleAuthURL
	}
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
	}
}

// AuthCodeURL returns the consent page URL carrying state.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type userInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades the callback code for a token and fetches the profile.
func (g *Google) Exchange(ctx context.Context, code string) (*domain.GoogleProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, exchangeErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, exchangeErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewAuthError(domain.CodeInvalidIDToken, fmt.Errorf("userinfo status %d", resp.StatusCode))
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Subject == "" {
		return nil, domain.NewAuthError(domain.CodeInvalidIDToken, errors.New("userinfo without subject"))
	}

	return &domain.GoogleProfile{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}

func exchangeErr(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return domain.NewAuthError(domain.CodeInvalidIDToken, err)
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return domain.NewAuthError(domain.CodeNetworkRequestFailed, fmt.Errorf("%w: %w", domain.ErrUnavailable, err))
	}
	return fmt.Errorf("google exchange: %w", err)
}
