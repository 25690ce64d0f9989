package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GithubConfig holds the GitHub OAuth application settings.
type GithubConfig struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"user:email"`
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGithubAdapter creates the GitHub provider adapter.
func NewGithubAdapter(cfg GithubConfig) ProviderAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *githubAdapter) ProviderID() string {
	return ProviderGithub
}

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *githubAdapter) ResolveIdentity(ctx context.Context, code string) (*ExternalIdentity, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, ErrInvalidCode
	}

	var u struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := a.getJSON(ctx, tok.AccessToken, "https://api.github.com/user", &u); err != nil {
		return nil, fmt.Errorf("fetch github profile: %w", err)
	}

	email := u.Email
	if email == "" {
		// GitHub hides the email on the profile endpoint when the user marks
		// it private; the emails endpoint still lists the primary one.
		email, err = a.primaryEmail(ctx, tok.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	if email == "" {
		return nil, ErrNoPrimaryEmail
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}

	return &ExternalIdentity{
		Provider: ProviderGithub,
		Subject:  strconv.FormatInt(u.ID, 10),
		Email:    email,
		Name:     name,
		Avatar:   u.AvatarURL,
	}, nil
}

func (a *githubAdapter) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := a.getJSON(ctx, accessToken, "https://api.github.com/user/emails", &emails); err != nil {
		return "", fmt.Errorf("fetch github emails: %w", err)
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	return "", nil
}

func (a *githubAdapter) getJSON(ctx context.Context, accessToken, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
