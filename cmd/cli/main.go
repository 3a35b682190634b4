package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankcore-cli",
		Short: "BankCore CLI tool",
		Long:  `A command line interface for interacting with the BankCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), transferCmd(), ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var number, holder, opening string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			body := fmt.Sprintf(`{"account_number":%q,"holder_name":%q,"opening_balance":%q}`,
				number, holder, opening)
			request(http.MethodPost, "/accounts", strings.NewReader(body))
		},
	}
	createCmd.Flags().StringVar(&number, "number", "", "Account number")
	createCmd.Flags().StringVar(&holder, "holder", "", "Holder name")
	createCmd.Flags().StringVar(&opening, "opening", "0", "Opening balance")
	createCmd.MarkFlagRequired("number")
	createCmd.MarkFlagRequired("holder")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/accounts/"+args[0], nil)
		},
	}

	var page, size int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, fmt.Sprintf("/accounts?page=%d&size=%d", page, size), nil)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 0, "Page number")
	listCmd.Flags().IntVar(&size, "size", 20, "Page size")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account without history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodDelete, "/accounts/"+args[0], nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <id>",
		Short: "Get the current balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/accounts/"+args[0]+"/balance", nil)
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <id>",
		Short: "List an account's transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/accounts/"+args[0]+"/transactions", nil)
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <id>",
		Short: "Verify the account's recorded history against its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/accounts/"+args[0]+"/verify", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, deleteCmd, balanceCmd, transactionsCmd, verifyCmd)

	return cmd
}

func transferCmd() *cobra.Command {
	var to, amount string
	cmd := &cobra.Command{
		Use:   "transfer <from-id>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/accounts/%s/transfer?toAccountId=%s&amount=%s",
				args[0], url.QueryEscape(to), url.QueryEscape(amount))
			request(http.MethodPost, path, nil)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/ledger/consistency", nil)
		},
	}

	cmd.AddCommand(consistencyCmd)

	return cmd
}

func request(method, path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	fmt.Printf("Status: %d\n", resp.StatusCode)
	if len(raw) > 0 {
		printResponse(raw)
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func printResponse(raw []byte) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
		return
	}

	printJSON(decoded)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}

	fmt.Println(string(out))
}
