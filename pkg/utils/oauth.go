package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenFilePerms = 0600 // Read/write for owner only
	tokenDirPerms  = 0700 // Read/write/execute for owner only
)

// ScopeGmailSend is the only scope needed to deliver match notifications
const ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"

var tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

func requiredScopes() []string {
	return []string{ScopeGmailSend}
}

// LoadOAuthConfig reads a Google OAuth client credentials file
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(data, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// Override redirect URI to use our local server
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// DefaultTokenPath returns ~/.volunteer-matching/tokens/token-<env>.json
func DefaultTokenPath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".volunteer-matching", "tokens", fmt.Sprintf("token-%s.json", env)), nil
}

// LoadTokenFromFile loads an OAuth token from path.
// Returns nil if the file doesn't exist (not an error - just means no cached token)
func LoadTokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// SaveTokenToFile writes an OAuth token to path with owner-only permissions
func SaveTokenToFile(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// DeleteTokenFile removes the token file at path if present
func DeleteTokenFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// LoadToken returns a usable token from path without user interaction,
// refreshing and re-saving it when it has expired
func LoadToken(ctx context.Context, oauthConfig *oauth2.Config, path string) (*oauth2.Token, error) {
	token, err := LoadTokenFromFile(path)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no token at %s, run the authorize command first", path)
	}
	if token.Valid() {
		return token, nil
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("token at %s has expired and cannot be refreshed, run the authorize command", path)
	}

	refreshed, err := oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if err := SaveTokenToFile(path, refreshed); err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Authorize runs the browser OAuth flow unless a valid token with the required
// scopes is already stored at path, and saves the resulting token
func Authorize(ctx context.Context, oauthConfig *oauth2.Config, path string, logger *zap.Logger) (*oauth2.Token, error) {
	if token, err := LoadToken(ctx, oauthConfig, path); err == nil {
		if err := validateTokenScopes(ctx, token); err == nil {
			logger.Info("Stored token is valid", zap.String("path", path))
			return token, nil
		} else {
			logger.Warn("Stored token is missing required scopes, starting new OAuth flow", zap.Error(err))
			if err := DeleteTokenFile(path); err != nil {
				return nil, err
			}
		}
	} else {
		logger.Debug("No usable stored token", zap.Error(err))
	}

	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	logger.Info("Visit this URL to authorize the application", zap.String("url", authURL))

	code, err := listenForAuthCallback(ctx, fmt.Sprintf(":%d", AuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := SaveTokenToFile(path, token); err != nil {
		return nil, err
	}

	logger.Info("Token saved", zap.String("path", path))
	return token, nil
}

// validateTokenScopes checks that the token has all required scopes by calling Google's tokeninfo endpoint
func validateTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	grantedScopes := strings.Fields(tokenInfo.Scope)
	var missingScopes []string
	for _, required := range requiredScopes() {
		if !slices.Contains(grantedScopes, required) {
			missingScopes = append(missingScopes, required)
		}
	}

	if len(missingScopes) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missingScopes)
	}

	return nil
}

// listenForAuthCallback starts a local HTTP server and waits for the OAuth callback
func listenForAuthCallback(ctx context.Context, addr string) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			select {
			case errChan <- fmt.Errorf("no authorization code received"):
			default:
			}
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Authorization successful!</h1><p>You can close this window.</p></body></html>`)

		select {
		case codeChan <- code:
		default:
		}
	})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- fmt.Errorf("server error: %w", err):
			default:
			}
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}

	return code, nil
}
