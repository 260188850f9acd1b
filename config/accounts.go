package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bankcalc/domain"
)

// LoadAccounts reads the accounts the service starts with from a JSON array,
// e.g. [{"id":"sav-1","type":"Savings","account_number":"1234567890","balance":"75000"}].
func LoadAccounts(path string) ([]domain.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ACCOUNTS_FILE: %w", err)
	}

	var accounts []domain.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("ACCOUNTS_FILE %s: %w", path, err)
	}

	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		switch {
		case strings.TrimSpace(a.ID) == "":
			return nil, fmt.Errorf("ACCOUNTS_FILE %s: account %d has no id", path, i+1)
		case seen[a.ID]:
			return nil, fmt.Errorf("ACCOUNTS_FILE %s: duplicate account %q", path, a.ID)
		case a.Balance.IsNegative():
			return nil, fmt.Errorf("ACCOUNTS_FILE %s: account %q has a negative balance", path, a.ID)
		}
		seen[a.ID] = true
	}
	return accounts, nil
}
