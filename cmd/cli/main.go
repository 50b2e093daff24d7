package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finfolio-cli",
		Short: "Finfolio CLI tool",
		Long:  `A command line interface for interacting with the Finfolio API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Finfolio API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID (sent as X-User-ID when token auth is disabled)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token")

	// Expense commands
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var (
		expenseAsset    string
		expenseAmount   string
		expenseCategory string
		expenseMerchant string
		expenseNote     string
	)
	expenseAddCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"asset_id": expenseAsset,
				"amount":   expenseAmount,
			}
			if expenseCategory != "" {
				body["category_id"] = expenseCategory
			}
			if expenseMerchant != "" {
				body["merchant"] = expenseMerchant
			}
			if expenseNote != "" {
				body["note"] = expenseNote
			}
			post("/api/v1/transactions/expense", body)
		},
	}
	expenseAddCmd.Flags().StringVar(&expenseAsset, "asset", "", "Asset ID to spend from")
	expenseAddCmd.Flags().StringVar(&expenseAmount, "amount", "", "Amount spent")
	expenseAddCmd.Flags().StringVar(&expenseCategory, "category", "", "Category ID")
	expenseAddCmd.Flags().StringVar(&expenseMerchant, "merchant", "", "Merchant name")
	expenseAddCmd.Flags().StringVar(&expenseNote, "note", "", "Free-form note")
	expenseAddCmd.MarkFlagRequired("asset")
	expenseAddCmd.MarkFlagRequired("amount")

	var listDay, listCategory string
	expenseListCmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses for a day",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/expenses?"
			if listDay != "" {
				path += "day=" + listDay + "&"
			}
			if listCategory != "" {
				path += "category=" + listCategory
			}
			get(path)
		},
	}
	expenseListCmd.Flags().StringVar(&listDay, "day", "", "Day (YYYY-MM-DD), defaults to today")
	expenseListCmd.Flags().StringVar(&listCategory, "category", "", "Category name filter")

	var totalsDay string
	expenseTotalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Per-category spending totals for a day",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/expenses/totals"
			if totalsDay != "" {
				path += "?day=" + totalsDay
			}
			get(path)
		},
	}
	expenseTotalsCmd.Flags().StringVar(&totalsDay, "day", "", "Day (YYYY-MM-DD), defaults to today")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseTotalsCmd)
	rootCmd.AddCommand(expenseCmd)

	// Holdings commands
	holdingsCmd := &cobra.Command{
		Use:   "holdings",
		Short: "Show net holdings per asset",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/holdings")
		},
	}
	rootCmd.AddCommand(holdingsCmd)

	var balancesCurrency string
	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Show valued per-account balances",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/accounts/balances"
			if balancesCurrency != "" {
				path += "?base_currency=" + balancesCurrency
			}
			get(path)
		},
	}
	balancesCmd.Flags().StringVar(&balancesCurrency, "base-currency", "", "Valuation currency")
	rootCmd.AddCommand(balancesCmd)

	// Rebalance command
	var rebalanceCurrency string
	rebalanceCmd := &cobra.Command{
		Use:   "rebalance <portfolio-id>",
		Short: "Suggest rebalance legs for a portfolio",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/portfolios/" + args[0] + "/rebalance"
			if rebalanceCurrency != "" {
				path += "?base_currency=" + rebalanceCurrency
			}
			get(path)
		},
	}
	rebalanceCmd.Flags().StringVar(&rebalanceCurrency, "base-currency", "", "Valuation currency")
	rootCmd.AddCommand(rebalanceCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	do(http.MethodGet, path, nil)
}

func post(path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}
	do(http.MethodPost, path, bytes.NewReader(payload))
}

func do(method, path string, body io.Reader) {
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(pretty.String())
}
