// Package config provides configuration loading for the collector.
// It supports JSON-based configuration loading matching the wire format the
// companion cookie server and portal-wrapper ecosystem already expect.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// AddressPort is a host/port pair used for both the gateway's own bind
// address and the external cookie server.
type AddressPort struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// String renders the pair as "address:port".
func (a AddressPort) String() string {
	return fmt.Sprintf("%s:%d", a.Address, a.Port)
}

// SearchQuery is one advanced-search filter specification for a term.
type SearchQuery struct {
	// Levels is a set of course-level tokens: "l" (lower-division),
	// "u" (upper-division), "g" (graduate). Unknown tokens are ignored by
	// the translation layer, not rejected here.
	Levels []string `json:"levels"`
	// Departments restricts the search to the given department codes
	// (e.g. "CSE").
	Departments []string `json:"departments"`
}

// TermDatum is one entry of wrapperData: the configuration for a single
// academic term the tracker loop will poll.
type TermDatum struct {
	Term           string        `json:"term"`
	Cooldown       float64       `json:"cooldown"`
	SearchQuery    []SearchQuery `json:"searchQuery"`
	SaveDataToFile bool          `json:"saveDataToFile"`
}

// Config holds all startup parameters for the collector, matching spec.md
// §6.1's JSON schema exactly. It is loaded once at startup and shared
// read-only across goroutines thereafter.
type Config struct {
	ConfigName      string        `json:"configName"`
	APIBaseEndpoint AddressPort   `json:"apiBaseEndpoint"`
	CookieServer    AddressPort   `json:"cookieServer"`
	WrapperData     []TermDatum   `json:"wrapperData"`
	Verbose         bool          `json:"verbose"`
}

// LoadConfig reads a JSON file at filename and deserialises it into a Config.
// It returns an error if the file cannot be opened or if the JSON is
// malformed or contains unrecognised fields (a configuration typo is a
// startup-fatal condition per spec.md §7).
func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename) // #nosec G304 -- filename is operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", filename, err)
	}
	defer f.Close()

	var cfg Config
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", filename, err)
	}
	return &cfg, nil
}
