package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	config "github.com/skimonitor/api/configs"
)

// IdentityData is what the external identity provider returns for an opaque
// session id handed over from the OAuth redirect.
type IdentityData struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

var identityClient = &http.Client{Timeout: 10 * time.Second}

// ExchangeSession resolves an opaque session id against the identity
// provider. Authentication itself is an external collaborator: this is the
// only call the backend makes to it.
func ExchangeSession(sessionID string) (*IdentityData, error) {
	providerURL := config.Config("IDENTITY_PROVIDER_URL")
	if providerURL == "" {
		return nil, errors.New("IDENTITY_PROVIDER_URL is not set")
	}

	req, err := http.NewRequest(http.MethodGet, providerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session exchange request: %v", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := identityClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var data IdentityData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %v", err)
	}
	if data.Email == "" {
		return nil, errors.New("identity provider returned no email")
	}

	return &data, nil
}
