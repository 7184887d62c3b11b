package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"netbank/internal/api"
	"netbank/internal/config"
	"netbank/internal/service"
	"netbank/internal/session"
	"netbank/internal/store"
	"netbank/internal/tui"
)

var (
	cfgFile string
	baseURL string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is the wired-up application: one client, one session store, the
// stores and services that hang off them.
type env struct {
	cfg      config.Config
	sessions *session.Store
	client   *api.Client
	stores   tui.Stores
	services tui.Services
}

func buildEnv(confirm store.ConfirmFunc) (*env, error) {
	if cfgFile != "" {
		os.Setenv("NETBANK_CONFIG", cfgFile)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	sessions, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	client := api.New(cfg.API.BaseURL, sessions, api.WithTimeout(cfg.API.Timeout()))

	return &env{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		stores: tui.Stores{
			Accounts:     store.NewAccounts(client, confirm, cfg.UI.CurrencySymbol),
			Cards:        store.NewCards(client, confirm),
			Transactions: store.NewTransactions(client),
		},
		services: tui.Services{
			Auth:      &service.Auth{API: client, Sessions: sessions},
			Dashboard: &service.Dashboard{API: client, RecentLimit: cfg.UI.RecentLimit},
			Transfer:  &service.Transfer{API: client},
			Cards:     &service.CardApplication{API: client},
			Profile:   &service.Profile{API: client},
		},
	}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netbank",
		Short: "Terminal client for the NetBank API.",
		Long: `netbank talks to a NetBank backend from the terminal.

Running without a subcommand launches the interactive TUI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI asks via its own modal before any destructive
			// call reaches a store, so the store-level prompt is a
			// pass-through there.
			e, err := buildEnv(func(string) bool { return true })
			if err != nil {
				return err
			}
			app := tui.New(context.Background(), e.cfg, e.sessions, e.stores, e.services)
			_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/netbank/config.toml)")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newAccountsCmd())
	cmd.AddCommand(newTransferCmd())
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and persist the session token.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(promptConfirm)
			if err != nil {
				return err
			}
			var username string
			if len(args) > 0 {
				username = args[0]
			} else {
				username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			sess, err := e.services.Auth.Login(cmd.Context(), username, string(raw))
			if err != nil {
				return err
			}
			fmt.Printf("signed in as %s\n", sess.Username)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(promptConfirm)
			if err != nil {
				return err
			}
			if err := e.services.Auth.Logout(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List, open, and close accounts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAccounts(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your accounts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAccounts(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <SAVINGS|CURRENT> <deposit>",
		Short: "Open a new account.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(promptConfirm)
			if err != nil {
				return err
			}
			deposit, err := strconv.ParseFloat(args[1], 64)
			if err != nil || deposit < 0 {
				return fmt.Errorf("invalid deposit %q", args[1])
			}
			acc, err := e.stores.Accounts.Create(cmd.Context(), strings.ToUpper(args[0]), deposit, "INR")
			if err != nil {
				return err
			}
			fmt.Printf("account %s created\n", acc.AccountNumber)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Close an account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(promptConfirm)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account id %q", args[0])
			}
			if err := e.stores.Accounts.Load(cmd.Context()); err != nil {
				return err
			}
			if err := e.stores.Accounts.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("account deleted")
			return nil
		},
	})

	return cmd
}

func listAccounts(ctx context.Context) error {
	e, err := buildEnv(promptConfirm)
	if err != nil {
		return err
	}
	if err := e.stores.Accounts.Load(ctx); err != nil {
		return err
	}
	rows := e.stores.Accounts.Items()
	if len(rows) == 0 {
		fmt.Println("no accounts")
		return nil
	}
	fmt.Printf("%-4s %-6s %-16s %-10s %14s %8s\n", "#", "ID", "Number", "Type", "Balance", "Status")
	for _, r := range rows {
		fmt.Printf("%-4d %-6d %-16s %-10s %14s %8s\n", r.Serial, r.ID, r.AccountNumber, r.AccountType, r.Balance, r.Status)
	}
	return nil
}

func newTransferCmd() *cobra.Command {
	var desc string
	cmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount>",
		Short: "Move money between accounts.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(promptConfirm)
			if err != nil {
				return err
			}
			receipt, err := e.services.Transfer.Submit(cmd.Context(), service.TransferForm{
				FromAccountNumber: args[0],
				ToAccountNumber:   args[1],
				Amount:            args[2],
				Description:       desc,
			})
			if err != nil {
				return err
			}
			fmt.Printf("transfer complete, ref %s\n", receipt.TransactionReference)
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "description", "d", "", "transfer description")
	return cmd
}

func promptConfirm(question string) bool {
	answer, err := promptLine(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
