// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/template"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/cli"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// cliHelpData holds the data used to populate the CLI help template.
//
// Fields:
//   - ExeName: The name of the executable binary for command examples
//   - InstructionsFlagName: The formatted instructions flag name (e.g., "--instructions")
//   - ConfigFlagName: The formatted config flag name (e.g., "--config")
//   - HelpFlagName: The formatted help flag name (e.g., "--help")
type cliHelpData struct {
	ExeName              string
	InstructionsFlagName string
	ConfigFlagName       string
	HelpFlagName         string
}

// CLIFramework integrates Cobra CLI with MCP server capabilities.
//
// Running the root command without a subcommand starts the MCP server on the
// configured transport. The list, create, update, delete, add and mock-api
// subcommands from package cli share the same configuration file.
//
// Key features:
//   - Dynamic executable naming based on actual binary path (not hardcoded)
//   - [Gopls-style] --instructions flag for displaying the client workflows
//   - Configuration file support via --config flag or MCP_BA_CONFIG_FILE environment variable
//   - --transport and --addr overrides for the server section of the configuration
//   - Graceful shutdown on SIGINT and SIGTERM
//
// [Gopls-style]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile          string
	transport           string
	address             string
	showInstructions    bool
	embed               templates.EmbedFS
	version             string
	associates          AssociateService
	tools               []ToolDefinition
	toolsWithAssociates []ToolDefinitionWithAssociates
	resources           []server.ServerResource
	prompts             []server.ServerPrompt
	instructions        string
	populateCache       bool
}

// NewCLIFramework creates a new CLI framework instance with MCP server integration.
//
// Configuration loading is deferred until a command runs so that the --config
// flag and environment variables are honored. Pass an empty configFile to fall
// back to MCP_BA_CONFIG_FILE or the defaults.
//
// Example usage:
//
//	tools, toolsWithAssociates := createTools()
//	framework := NewCLIFramework("config.yaml", ServerDependencies{
//	    Embed:               templates.MagicEmbed,
//	    Version:             "1.0.0",
//	    Tools:               tools,
//	    ToolsWithAssociates: toolsWithAssociates,
//	})
//	cmd := framework.BuildRootCommand()
func NewCLIFramework(configFile string, deps ServerDependencies) *CLIFramework {
	return &CLIFramework{
		configFile:          configFile,
		embed:               deps.Embed,
		version:             deps.Version,
		associates:          deps.Associates,
		tools:               deps.Tools,
		toolsWithAssociates: deps.ToolsWithAssociates,
		resources:           deps.Resources,
		prompts:             deps.Prompts,
		instructions:        deps.Instructions,
		populateCache:       deps.PopulateCache,
	}
}

// BuildRootCommand creates the root Cobra command with integrated MCP server capabilities.
//
// Command behavior:
//   - With --instructions: Displays the client workflows and exits
//   - With a subcommand: Runs it against the configured remote API
//   - Without arguments: Starts the MCP server
//
// It panics when the embedded CLI help template is missing or malformed,
// since that is a build defect rather than a runtime condition.
func (cf *CLIFramework) BuildRootCommand() *cobra.Command {
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "Business associate management with MCP server integration",
		Version:       cf.version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Registered early so its name can be used in the help template.
	rootCmd.Flags().BoolP("help", "h", false, "help for "+exeName)

	rootCmd.PersistentFlags().BoolVar(&cf.showInstructions, "instructions", false, "print the workflows given to MCP clients")
	rootCmd.PersistentFlags().StringVar(&cf.configFile, "config", cf.configFile, "path to configuration file (JSON or YAML)")
	rootCmd.Flags().StringVar(&cf.transport, "transport", "", "MCP transport: stdio or http (default from config)")
	rootCmd.Flags().StringVar(&cf.address, "addr", "", "listen address for the http transport (default from config)")

	instructionsFlagName, configFlagName, helpFlagName := extractFlagNames(rootCmd)

	if cf.embed == nil {
		panic("CLIFramework embed filesystem not initialized")
	}

	longDesc, examples, err := cf.loadAndExecuteCLIHelpTemplate(exeName, instructionsFlagName, configFlagName, helpFlagName)
	if err != nil {
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Read at run time: the flag is bound after the command is built.
		if cf.showInstructions {
			return cf.printInstructions(cmd)
		}
		return cf.startMCPServer(cmd)
	}

	rootCmd.AddCommand(cli.Commands(cf.cliEnv())...)

	return rootCmd
}

// cliEnv connects the subcommands to the configuration selected on the root command.
func (cf *CLIFramework) cliEnv() cli.Env {
	env := cli.Env{
		Load: func() (cli.Settings, error) {
			config, err := loadConfig(cf.configFile)
			if err != nil {
				return cli.Settings{}, err
			}
			return cli.Settings{
				BaseURL:      config.API.BaseURL,
				Timeout:      config.Timeout(),
				UserAgent:    userAgent(cf.version),
				MockAddress:  config.Mock.Address,
				MockDatabase: config.Mock.Database,
			}, nil
		},
	}
	if cf.associates != nil {
		env.NewService = func(cli.Settings, logger.Logger) cli.Service { return cf.associates }
	}
	return env
}

// loadAndExecuteCLIHelpTemplate renders the embedded cli_help.md with the
// executable and flag names and splits it into the Long and Example texts.
func (cf *CLIFramework) loadAndExecuteCLIHelpTemplate(exeName, instructionsFlagName, configFlagName, helpFlagName string) (longDesc, examples string, err error) {
	templateBytes, err := cf.embed.ReadFile("cli_help.md")
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	data := cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: instructionsFlagName,
		ConfigFlagName:       configFlagName,
		HelpFlagName:         helpFlagName,
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}

	return cf.parseTemplateResult(result.String())
}

// parseTemplateResult splits the rendered help at the "## Examples" line.
// Everything before the line becomes the Long description and everything
// after it the Examples section.
func (cf *CLIFramework) parseTemplateResult(templateResult string) (longDesc, examples string, err error) {
	const examplesMarker = "## Examples"
	markerIndex := strings.Index(templateResult, examplesMarker)
	if markerIndex == -1 {
		return "", "", fmt.Errorf("CLI help template has invalid format - missing '## Examples' section")
	}

	lineStart := strings.LastIndex(templateResult[:markerIndex], "\n")
	if lineStart == -1 {
		lineStart = 0
	} else {
		lineStart++
	}

	lineEnd := strings.Index(templateResult[markerIndex:], "\n")
	if lineEnd == -1 {
		lineEnd = len(templateResult)
	} else {
		lineEnd += markerIndex
	}

	longDesc = strings.TrimSpace(templateResult[:lineStart])
	examples = strings.TrimSpace(templateResult[lineEnd:])

	return longDesc, examples, nil
}

// extractFlagNames looks up the instructions, config and help flags on
// rootCmd and returns them with the "--" prefix, falling back to the default
// names when a flag is missing.
func extractFlagNames(rootCmd *cobra.Command) (instructionsFlagName, configFlagName, helpFlagName string) {
	instructionsFlagName = "--instructions"
	if f := rootCmd.PersistentFlags().Lookup("instructions"); f != nil {
		instructionsFlagName = "--" + f.Name
	}

	configFlagName = "--config"
	if f := rootCmd.PersistentFlags().Lookup("config"); f != nil {
		configFlagName = "--" + f.Name
	}

	helpFlagName = "--help"
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		helpFlagName = "--" + f.Name
	}

	return instructionsFlagName, configFlagName, helpFlagName
}

// applyServerFlags overrides the server section of config with the
// --transport and --addr flags given on the command line.
func (cf *CLIFramework) applyServerFlags(cmd *cobra.Command, config *Config) error {
	if cmd.Flags().Changed("transport") {
		transport := strings.ToLower(strings.TrimSpace(cf.transport))
		if transport != transportStdio && transport != transportHTTP {
			return fmt.Errorf("invalid transport %q: must be %q or %q", cf.transport, transportStdio, transportHTTP)
		}
		config.Server.Transport = transport
	}
	if cmd.Flags().Changed("addr") {
		config.Server.Address = cf.address
	}
	return nil
}

// buildServer loads the configuration, applies flag overrides and builds the
// MCP server. Logs go to the command's stderr.
func (cf *CLIFramework) buildServer(cmd *cobra.Command) (*Config, *logger.MCPLogger, *server.MCPServer, error) {
	config, err := loadConfig(cf.configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cf.applyServerFlags(cmd, config); err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewMCPLogger(cmd.ErrOrStderr(), config.Log.Silent)

	builder := NewServerBuilder().
		WithConfig(config).
		WithEmbed(cf.embed).
		WithVersion(cf.version).
		WithAssociates(cf.associates).
		WithLogger(log.WithComponent("business-associate")).
		WithTools(cf.tools...).
		WithToolsWithAssociates(cf.toolsWithAssociates...).
		WithResources(cf.resources...).
		WithPrompts(cf.prompts...).
		WithInstructions(cf.instructions)

	if cf.populateCache {
		builder = builder.WithPopulate()
	}

	s, err := builder.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build MCP server: %w", err)
	}

	return config, log, s, nil
}

// startMCPServer starts the MCP server and blocks until it stops.
//
// SIGINT and SIGTERM cancel the server context; such a shutdown returns nil,
// while configuration, build and transport failures are returned to Cobra.
func (cf *CLIFramework) startMCPServer(cmd *cobra.Command) error {
	config, log, s, err := cf.buildServer(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, s, config, log.WithComponent("transport"), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("MCP server stopped: %w", err)
	}
	log.Printf("%s stopped", serverName)
	return nil
}

// printInstructions writes the pre-rendered client instructions to the
// command output, the same text the server sends during initialization,
// similar to [gopls].
//
// [gopls]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
func (cf *CLIFramework) printInstructions(cmd *cobra.Command) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), cf.instructions)
	return err
}
