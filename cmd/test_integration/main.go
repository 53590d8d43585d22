// Command test_integration smoke-tests a running server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("NAICS_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	company := "Sony"
	if len(os.Args) > 1 {
		company = os.Args[1]
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Health check...")
	if !sendRequest(http.MethodGet, baseURL+"/healthz", nil, nil) {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	fmt.Printf("2. Classifying %q...\n", company)
	var resp struct {
		TurnID  string `json:"turn_id"`
		Results []struct {
			Code        string `json:"NAICS_code"`
			Description string `json:"description"`
		} `json:"results"`
	}
	if !sendRequest(http.MethodPost, baseURL+"/classify", map[string]string{"company_name": company}, &resp) {
		fmt.Println("FAILED: Classify")
		os.Exit(1)
	}

	seen := map[string]bool{}
	for _, r := range resp.Results {
		if r.Code == "" || seen[r.Code] {
			fmt.Printf("FAILED: Classify returned empty or duplicate code %q\n", r.Code)
			os.Exit(1)
		}
		seen[r.Code] = true
	}
	if len(resp.Results) == 0 {
		fmt.Println("FAILED: Classify returned no results")
		os.Exit(1)
	}
	fmt.Println("PASSED: Classify")
}

func sendRequest(method, url string, payload, into any) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	if into != nil {
		if err := json.Unmarshal(respBody, into); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}
