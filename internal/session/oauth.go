package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dookkeobi/leakpot/internal/common"
)

// OAuthConfig holds the provider settings for the login flow.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	ListenAddr   string // local callback server, default :8910
}

// Validate ensures all required fields are present.
func (c *OAuthConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: oauth client ID is required", common.ErrMissingConfig)
	}
	if c.AuthURL == "" || c.TokenURL == "" {
		return fmt.Errorf("%w: oauth endpoints are required", common.ErrMissingConfig)
	}
	return nil
}

// Login performs the interactive authorization-code flow: start a local
// callback server, send the user to the provider's consent page, exchange
// the returned code, and install the token on the session.
func (s *Session) Login(ctx context.Context, cfg OAuthConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	listenAddr := cfg.ListenAddr
	if listenAddr == "" {
		listenAddr = ":8910"
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.TokenURL,
		},
		RedirectURL: fmt.Sprintf("http://localhost%s/callback", listenAddr),
	}

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, `<html><body><h1>Login Failed</h1><p>No authorization code received. Please try again.</p></body></html>`)
			return
		}

		codeChan <- code
		_, _ = fmt.Fprint(w, `<html><body><h1>Login Successful!</h1><p>You can close this window and return to the terminal.</p></body></html>`)
	})

	server := &http.Server{Addr: listenAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()
	defer func() { _ = server.Shutdown(ctx) }()

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	slog.Info("Login required")
	slog.Info("Please visit this URL to authenticate", "url", authURL)

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errorChan:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("login timeout: no response received within 5 minutes")
	case <-ctx.Done():
		return ctx.Err()
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	s.SetAccessToken(token.AccessToken)
	s.logger.Info("Logged in")
	return nil
}
