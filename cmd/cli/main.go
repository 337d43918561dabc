package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/auth"
)

var (
	baseURL string
	timeout time.Duration
	orgID   string
	token   string

	stdout io.Writer = os.Stdout
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "metalledger-cli",
		Short:         "MetalLedger CLI tool",
		Long:          `A command line interface for operating a MetalLedger deployment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the MetalLedger API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	root.PersistentFlags().StringVar(&orgID, "org", os.Getenv("METALLEDGER_ORG"), "Organization ID (used when auth is disabled)")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("METALLEDGER_TOKEN"), "Bearer token")

	ledger := &cobra.Command{Use: "ledger", Short: "Ledger checks"}
	ledger.AddCommand(consistencyCmd(), reconcileCmd())

	backfill := &cobra.Command{Use: "backfill", Short: "Repair derived state"}
	backfill.AddCommand(backfillRunCmd())

	lots := &cobra.Command{Use: "lots", Short: "Metal lot inventory"}
	lots.AddCommand(availableLotsCmd())

	tokens := &cobra.Command{Use: "token", Short: "API tokens"}
	tokens.AddCommand(issueTokenCmd())

	root.AddCommand(ledger, backfill, lots, tokens)

	return root
}

// apiError is a non-2xx answer from the API.
type apiError struct {
	Status int
	Body   dto.ErrorResponse
}

func (e *apiError) Error() string {
	if e.Body.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s: %s", e.Status, e.Body.Code, e.Body.Error, e.Body.Message)
	}
	return fmt.Sprintf("api error %d: %s %s", e.Status, e.Body.Error, e.Body.Message)
}

// call sends a request and decodes a JSON answer into out. Statuses listed in
// accept are decoded like 2xx.
func call(method, path string, body, out any, accept ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+"/api/v1"+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if orgID != "" {
		req.Header.Set("X-Organization-ID", orgID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, s := range accept {
		ok = ok || resp.StatusCode == s
	}
	if !ok {
		apiErr := &apiError{Status: resp.StatusCode}
		if json.Unmarshal(raw, &apiErr.Body) != nil {
			apiErr.Body.Error = string(bytes.TrimSpace(raw))
		}
		return resp.StatusCode, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Compare every running account with its posting history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ConsistencyResponse
			if _, err := call(http.MethodGet, "/ledger/consistency", nil, &report, http.StatusConflict); err != nil {
				return err
			}

			if report.Consistent {
				fmt.Fprintf(stdout, "Consistency check PASSED (%d accounts)\n", report.TotalAccounts)
				return nil
			}

			fmt.Fprintf(stdout, "Consistency check FAILED: %d of %d accounts drifted\n", len(report.Discrepancies), report.TotalAccounts)
			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tFIAT DIFF\tMETAL DIFF")
			for _, d := range report.Discrepancies {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.RunningAccountID, d.FiatDifference, d.MetalDifference)
			}
			w.Flush()

			return errors.New("ledger is inconsistent")
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <running-account-id>",
		Short: "Replay one running account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ReconciliationResponse
			if _, err := call(http.MethodGet, "/running-accounts/"+url.PathEscape(args[0])+"/reconciliation", nil, &result); err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func backfillRunCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one backfill kind, or all of them in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" || kind == "all" {
				var reports dto.ListResponse[domain.BackfillReport]
				if _, err := call(http.MethodPost, "/backfills", nil, &reports); err != nil {
					return err
				}
				for _, r := range reports.Items {
					printReport(r)
				}
				return nil
			}

			k, err := domain.ParseBackfillKind(kind)
			if err != nil {
				return err
			}

			var report domain.BackfillReport
			if _, err := call(http.MethodPost, "/backfills/"+string(k), nil, &report); err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "Backfill kind")

	return cmd
}

func printReport(r domain.BackfillReport) {
	fmt.Fprintf(stdout, "%s: repaired=%d skipped=%d\n", r.Kind, r.Repaired, len(r.Skipped))
	for _, s := range r.Skipped {
		fmt.Fprintf(stdout, "  skipped %s %s: %s\n", s.Type, s.ID, s.Reason)
	}
}

func availableLotsCmd() *cobra.Command {
	var (
		productID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List a product's available lots oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if productID == "" {
				return errors.New("--product is required")
			}

			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LOT\tMETAL\tENTRY\tREMAINING\tPURITY\tFINE")

			q := url.Values{"limit": {strconv.Itoa(limit)}}
			for {
				var page dto.LotPageResponse
				path := "/products/" + url.PathEscape(productID) + "/lots?" + q.Encode()
				if _, err := call(http.MethodGet, path, nil, &page); err != nil {
					return err
				}

				for _, l := range page.Lots {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						truncate(l.ID, 14), l.MetalType, l.EntryDate.Format(time.DateOnly),
						l.RemainingGrams, l.Purity, l.FineGrams)
				}

				if page.Next == nil {
					break
				}
				q.Set("after_date", page.Next.AfterDate.Format(time.RFC3339Nano))
				q.Set("after_id", page.Next.AfterID)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&productID, "product", "", "Product ID")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageSize, "Page size")

	return cmd
}

func issueTokenCmd() *cobra.Command {
	var (
		secret string
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token for --org with the server's JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or JWT_SECRET is required")
			}

			signed, err := auth.NewJWTManager(secret, ttl).Generate(&domain.Principal{
				UserID:         userID,
				OrganizationID: orgID,
				Role:           domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	cmd.Flags().StringVar(&userID, "user", "cli", "Subject user ID")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "admin, operator or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
