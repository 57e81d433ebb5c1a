package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type account struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type loginResponse struct {
	Tokens struct {
		AccessToken string `json:"accessToken"`
	} `json:"tokens"`
	Accounts []account `json:"accounts"`
}

type depositRequest struct {
	AccountID   string `json:"accountId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type historyResponse struct {
	Accounts []account `json:"accounts"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Number of deposits to make")
	amountStr := flag.String("amount", "1.00", "Amount of every deposit")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	email := flag.String("email", "customer@example.com", "Customer email")
	password := flag.String("password", "customer123", "Customer password")
	flag.Parse()

	amount, err := decimal.NewFromString(*amountStr)
	if err != nil || !amount.IsPositive() {
		fmt.Fprintf(os.Stderr, "invalid amount %q\n", *amountStr)
		os.Exit(2)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	session, err := login(client, *baseURL, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	if len(session.Accounts) == 0 {
		fmt.Fprintln(os.Stderr, "customer has no account")
		os.Exit(1)
	}
	target := session.Accounts[0]
	startBalance, err := decimal.NewFromString(target.Balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unreadable balance %q\n", target.Balance)
		os.Exit(1)
	}

	fmt.Printf("Depositing %s into account %s (balance %s)\n", amount.StringFixed(2), target.AccountNumber, target.Balance)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, session.Tokens.AccessToken, target.ID, amount, jobs, results)
		}()
	}
	wg.Wait()
	close(results)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		TotalTime:     time.Since(startTime),
		ErrorCounts:   make(map[string]int),
	}
	for result := range results {
		stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
		if result.Success {
			stats.SuccessfulRequests++
			continue
		}
		stats.FailedRequests++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		stats.ErrorCounts[errMsg]++
	}

	printResults(stats)

	finalBalance, err := balanceOf(client, *baseURL, session.Tokens.AccessToken, target.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history failed: %v\n", err)
		os.Exit(1)
	}
	expected := startBalance.Add(amount.Mul(decimal.NewFromInt(int64(stats.SuccessfulRequests))))

	fmt.Println("\n================= BALANCE CHECK =================")
	fmt.Printf("Start balance:    %s\n", startBalance.StringFixed(2))
	fmt.Printf("Expected balance: %s\n", expected.StringFixed(2))
	fmt.Printf("Final balance:    %s\n", finalBalance.StringFixed(2))
	if !finalBalance.Equal(expected) {
		fmt.Println("❌ LOST UPDATE DETECTED")
		os.Exit(1)
	}
	fmt.Println("✅ Final balance matches start + successful deposits")
}

func login(client *http.Client, baseURL, email, password string) (*loginResponse, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func worker(client *http.Client, baseURL, token, accountID string, amount decimal.Decimal, jobs <-chan int, results chan<- TestResult) {
	for jobID := range jobs {
		payload, err := json.Marshal(depositRequest{
			AccountID:   accountID,
			Amount:      amount.StringFixed(2),
			Description: fmt.Sprintf("load test %d", jobID),
		})
		if err != nil {
			results <- TestResult{Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/transactions/deposit", bytes.NewReader(payload))
		if err != nil {
			results <- TestResult{Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		start := time.Now()
		resp, err := client.Do(req)
		result := TestResult{ResponseTime: time.Since(start)}
		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode == http.StatusOK
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()
		}
		results <- result
	}
}

func balanceOf(client *http.Client, baseURL, token, accountID string) (decimal.Decimal, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/transactions", nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var history historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return decimal.Zero, err
	}
	for _, a := range history.Accounts {
		if a.ID == accountID {
			return decimal.NewFromString(a.Balance)
		}
	}
	return decimal.Zero, errors.New("account missing from history")
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func printResults(stats *TestStats) {
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = total / time.Duration(len(sorted))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed Requests:     %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("TPS:                 %.2f\n", float64(stats.SuccessfulRequests)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
}
