// Package gcal fetches free windows from Google Calendar. It is the only
// package that talks to the network; when anything here fails, callers get
// the unavailable sentinel and plan without a calendar.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const (
	// ClientSecretsFile is the downloaded Google API credentials.json,
	// expected under the app config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the user's OAuth token next to the credentials.
	TokenFile = "token.json"

	// LocalhostAuthPort is where the loopback server listens for the
	// OAuth redirect during first-time authorization.
	LocalhostAuthPort = "6789"

	xdgAppName = "dayplan"
)

// ConfigDir returns the directory holding credentials and the cached token.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

// oauthConfig builds an oauth2.Config from the client secrets file,
// forcing the redirect onto our loopback port.
func oauthConfig() (*oauth2.Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(filepath.Join(dir, ClientSecretsFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	return cfg, nil
}

// httpClient returns an authenticated *http.Client, loading the cached
// token or running the browser flow when none exists.
func httpClient(ctx context.Context) (*http.Client, error) {
	cfg, err := oauthConfig()
	if err != nil {
		return nil, err
	}

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	tokenPath := filepath.Join(dir, TokenFile)

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	return cfg.Client(ctx, tok), nil
}

// tokenFromWeb runs the authorization code flow through a loopback server.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", ":"+LocalhostAuthPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// AccessTypeOffline ensures a refresh token is returned.
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser to authorize dayplan:\n%s\n", authURL)

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token: %w", err)
		}
		server.Shutdown(exchangeCtx)
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		server.Shutdown(context.Background())
		return nil, fmt.Errorf("authorization timed out, please try again")
	}
}

// tokenFromFile reads a cached oauth2.Token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", path, err)
	}
	return tok, nil
}

// saveToken writes a token to disk, owner-readable only.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
