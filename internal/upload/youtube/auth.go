package youtube

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/oauth2"
)

// Scopes requested for upload and playlist management.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube",
}

// clientSecretsFile is the Google "installed application" client secrets
// JSON shape. Only the fields we need are decoded.
type clientSecretsFile struct {
	Installed struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		AuthURI      string   `json:"auth_uri"`
		TokenURI     string   `json:"token_uri"`
		RedirectURIs []string `json:"redirect_uris"`
	} `json:"installed"`
}

// oauthConfig parses the client secrets file into an oauth2 config using the
// out-of-band redirect, so the code can be pasted into the terminal.
func oauthConfig(secretsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secrets %s: %w", secretsPath, err)
	}
	var secrets clientSecretsFile
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse client secrets %s: %w", secretsPath, err)
	}
	if secrets.Installed.ClientID == "" {
		return nil, fmt.Errorf("client secrets %s: no installed-app client", secretsPath)
	}

	authURI := secrets.Installed.AuthURI
	if authURI == "" {
		authURI = "https://accounts.google.com/o/oauth2/auth"
	}
	tokenURI := secrets.Installed.TokenURI
	if tokenURI == "" {
		tokenURI = "https://oauth2.googleapis.com/token"
	}

	return &oauth2.Config{
		ClientID:     secrets.Installed.ClientID,
		ClientSecret: secrets.Installed.ClientSecret,
		Endpoint:     oauth2.Endpoint{AuthURL: authURI, TokenURL: tokenURI},
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       Scopes,
	}, nil
}

// loadToken reads a persisted oauth2 token; fs.ErrNotExist when absent.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", path, err)
	}
	return &tok, nil
}

// saveToken persists the token with restrictive permissions.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// obtainToken returns a usable token: the persisted one when present
// (oauth2 refreshes it transparently via the refresh token), otherwise the
// interactive code flow — print the consent URL, read the code from stdin,
// exchange, persist.
func obtainToken(ctx context.Context, cfg *oauth2.Config, tokenPath string) (*oauth2.Token, error) {
	tok, err := loadToken(tokenPath)
	if err == nil {
		return tok, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	url := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL, authorize the app, then paste the code here:\n%s\nCode: ", url)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read auth code: %w", err)
	}
	code := strings.TrimSpace(line)
	if code == "" {
		return nil, errors.New("empty auth code")
	}

	tok, err = cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}
	if err := saveToken(tokenPath, tok); err != nil {
		return nil, fmt.Errorf("save token %s: %w", tokenPath, err)
	}
	return tok, nil
}

// persistingSource wraps a TokenSource and writes every refreshed token back
// to disk so the next run starts from a valid token.
type persistingSource struct {
	src  oauth2.TokenSource
	path string
	last string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := saveToken(p.path, tok); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}
	}
	return tok, nil
}
