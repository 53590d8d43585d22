package model

// RawGuess is one unverified classification candidate produced by a single completion.
// An empty Description means the model supplied none.
type RawGuess struct {
	Code        string `json:"NAICS_code"`
	Description string `json:"description"`
}

// Result is one entry of the reconciled output. Codes are unique within a result list.
type Result struct {
	Code        string `json:"NAICS_code"`
	Description string `json:"description"`
}

// RemapTable translates a code of an older revision (2017) to the current one (2022).
type RemapTable map[string]string

// DescriptionTable holds the canonical description of each current code.
type DescriptionTable map[string]string
