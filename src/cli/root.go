// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	ba "github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/calculator"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/spf13/cobra"
)

// Output formats accepted by the list subcommand.
const (
	formatJSON  = "json"
	formatTable = "table"
)

// Service is the set of remote operations used by the subcommands.
type Service interface {
	List(ctx context.Context, entityType string) ([]ba.BusinessAssociate, error)
	Create(ctx context.Context, entityType string, in ba.CreateInput) (*ba.BusinessAssociate, error)
	Update(ctx context.Context, entityType string, id int, in ba.UpdateInput) (*ba.BusinessAssociate, error)
	Delete(ctx context.Context, entityType string, id int) (bool, error)
}

// Settings are the resolved values the subcommands need.
type Settings struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	MockAddress  string
	MockDatabase string
}

// Env wires the subcommands to their configuration and dependencies.
type Env struct {
	// Load resolves settings when a subcommand runs, after flags are parsed.
	Load func() (Settings, error)
	// Logger receives adapter warnings and mock API request logs.
	// A CLILogger writing to stderr is used when nil.
	Logger logger.Logger
	// NewService overrides the adapter construction, mainly for tests.
	NewService func(Settings, logger.Logger) Service
}

func (e Env) settings() (Settings, error) {
	if e.Load == nil {
		return Settings{}, fmt.Errorf("cli: settings loader not configured")
	}
	s, err := e.Load()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	return s, nil
}

func (e Env) logger(cmd *cobra.Command) logger.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logger.NewCLILogger()
	l.SetOutput(cmd.ErrOrStderr())
	return l
}

func (e Env) service(cmd *cobra.Command) (Service, error) {
	s, err := e.settings()
	if err != nil {
		return nil, err
	}
	log := e.logger(cmd)
	if e.NewService != nil {
		return e.NewService(s, log), nil
	}
	opts := []ba.Option{ba.WithLogger(log)}
	if s.UserAgent != "" {
		opts = append(opts, ba.WithUserAgent(s.UserAgent))
	}
	return ba.New(s.BaseURL, &http.Client{Timeout: s.Timeout}, opts...), nil
}

// Commands returns the subcommands to attach to a root command.
func Commands(env Env) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(env),
		newCreateCommand(env),
		newUpdateCommand(env),
		newDeleteCommand(env),
		newAddCommand(),
		newMockAPICommand(env),
	}
}

func newListCommand(env Env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list TYPE",
		Short: "List business associates of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("invalid format %q: must be %q or %q", format, formatJSON, formatTable)
			}
			svc, err := env.service(cmd)
			if err != nil {
				return err
			}
			records, err := svc.List(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list business associates: %w", err)
			}
			if format == formatTable {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), ba.RenderTable(args[0], records))
				return err
			}
			return printJSON(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or table")
	return cmd
}

// associateFlags holds the optional record fields shared by create and update.
type associateFlags struct {
	name        string
	vendor      string
	customer    string
	companyCode int
}

func (f *associateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "business associate name")
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "SAP vendor code")
	cmd.Flags().StringVar(&f.customer, "customer", "", "SAP customer code")
	cmd.Flags().IntVar(&f.companyCode, "company-code", 0, "SAP company code")
}

// stringIfChanged returns a pointer to value when the flag was given on the command line.
func stringIfChanged(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func intIfChanged(cmd *cobra.Command, flag string, value int) *int {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func newCreateCommand(env Env) *cobra.Command {
	var f associateFlags
	cmd := &cobra.Command{
		Use:   "create TYPE --name NAME",
		Short: "Create a business associate",
		Long: "Create a business associate. Only the optional flags given on the command line\n" +
			"are sent to the remote API.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.service(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Create(cmd.Context(), args[0], ba.CreateInput{
				Name:        f.name,
				Vendor:      stringIfChanged(cmd, "vendor", f.vendor),
				Customer:    stringIfChanged(cmd, "customer", f.customer),
				CompanyCode: intIfChanged(cmd, "company-code", f.companyCode),
			})
			if err != nil {
				return fmt.Errorf("failed to create business associate: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUpdateCommand(env Env) *cobra.Command {
	var f associateFlags
	cmd := &cobra.Command{
		Use:   "update TYPE ID",
		Short: "Update fields of a business associate",
		Long: "Update a business associate. Empty values and flags that are not given leave\n" +
			"the stored value unchanged.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			svc, err := env.service(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Update(cmd.Context(), args[0], id, ba.UpdateInput{
				Name:        f.name,
				Vendor:      f.vendor,
				Customer:    f.customer,
				CompanyCode: intIfChanged(cmd, "company-code", f.companyCode),
			})
			if err != nil {
				return fmt.Errorf("failed to update business associate %d: %w", id, err)
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCommand(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TYPE ID",
		Short: "Delete a business associate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			svc, err := env.service(cmd)
			if err != nil {
				return err
			}
			ok, err := svc.Delete(cmd.Context(), args[0], id)
			if err != nil {
				return fmt.Errorf("failed to delete business associate %d: %w", id, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return err
		},
	}
}

func newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add A B",
		Short: "Add two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
			b, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[1], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(calculator.Add(a, b), 'g', -1, 64))
			return err
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", s)
	}
	return id, nil
}

// printJSON writes v as indented JSON; a nil record prints as null.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
