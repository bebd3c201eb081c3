package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AccountClient resolves user accounts against the account service. The
// recovery core only needs existence checks before ownership transfer.
type AccountClient struct {
	Address    string
	httpClient *http.Client
}

func NewAccountClient(address string) (*AccountClient, error) {
	return &AccountClient{
		Address:    address,
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}, nil
}

type accountResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *AccountClient) AccountExists(userID string) (bool, error) {
	response, err := c.httpClient.Get(fmt.Sprintf("%s/accounts/%s", c.Address, userID))
	if err != nil {
		return false, err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return false, err
	}

	if response.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var account accountResponse
		if err := json.Unmarshal(responseBodyBytes, &account); err != nil {
			return false, err
		}
		return account.ID != "", nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return false, fmt.Errorf("account service returned status %d", response.StatusCode)
	}
	return false, errors.New(errResponse.Error)
}
