package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"keeper/config"
	"keeper/models"
)

// ProviderUserInfo is the identity a social provider reports for the
// logged-in user.
type ProviderUserInfo struct {
	UID     string
	Name    string
	Email   string
	Picture string
}

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleProvider exchanges an OAuth authorization code for the user's
// Google profile. Endpoint URLs are fields so tests can point the
// client at a local server.
type GoogleProvider struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	TokenURL    string
	UserInfoURL string
	HTTPClient  *http.Client
}

func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
		TokenURL:     googleTokenURL,
		UserInfoURL:  googleUserInfoURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the consent-page redirect for the login entrypoint.
func (p *GoogleProvider) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", p.ClientID)
	params.Set("redirect_uri", p.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "email profile")
	params.Set("access_type", "offline")
	return googleAuthURL + "?" + params.Encode()
}

// Exchange trades the authorization code for an access token and
// fetches the user's profile with it.
func (p *GoogleProvider) Exchange(code string) (*ProviderUserInfo, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)
	form.Set("redirect_uri", p.RedirectURI)
	form.Set("grant_type", "authorization_code")

	res, err := p.HTTPClient.Post(p.TokenURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var tokenBody struct {
		AccessToken      string `json:"access_token"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(res.Body).Decode(&tokenBody); err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		msg := tokenBody.ErrorDescription
		if msg == "" {
			msg = fmt.Sprintf("token exchange failed with status %d", res.StatusCode)
		}
		return nil, NewValidationError(msg)
	}

	return p.userInfo(tokenBody.AccessToken)
}

func (p *GoogleProvider) userInfo(accessToken string) (*ProviderUserInfo, error) {
	req, err := http.NewRequest(http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, NewValidationError(fmt.Sprintf("userinfo request failed with status %d", res.StatusCode))
	}

	var body struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &ProviderUserInfo{
		UID:     body.ID,
		Name:    body.Name,
		Email:   body.Email,
		Picture: body.Picture,
	}, nil
}

// SupportedProvider validates the provider path segment. Kakao is
// recognized but not implemented yet.
func SupportedProvider(name string) (models.Provider, error) {
	switch models.Provider(name) {
	case models.ProviderGoogle:
		return models.ProviderGoogle, nil
	case models.ProviderKakao:
		return "", NewValidationError("kakao login is not supported yet")
	default:
		return "", NewValidationError(fmt.Sprintf("unsupported social provider %q", name))
	}
}
