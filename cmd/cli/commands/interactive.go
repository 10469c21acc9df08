package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (load the store once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the same store.
With the memory store this keeps matches between commands.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Parent(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// sessionCommands returns the root's subcommands that can run inside a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, subCmd := range root.Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help", "serve":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}
	return commands
}

func runInteractive(root *cobra.Command, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\nStarting interactive session...")
	fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

	commands := sessionCommands(root)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmdName := parts[0]
		cmdArgs := parts[1:]

		if cmdName == "exit" || cmdName == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if cmdName == "help" {
			printInteractiveHelp(out, commands)
			continue
		}

		targetCmd, exists := commands[cmdName]
		if !exists {
			fmt.Fprintf(out, "Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
			continue
		}

		// Reset flags left over from a previous run
		targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
			flag.Value.Set(flag.DefValue)
		})

		// RunE is called directly so PersistentPreRunE does not rebuild the app
		if err := targetCmd.ParseFlags(cmdArgs); err != nil {
			fmt.Fprintf(out, "Error parsing flags: %v\n\n", err)
			continue
		}
		cmdArgs = targetCmd.Flags().Args()

		if targetCmd.Args != nil {
			if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
				fmt.Fprintf(out, "Error: %v\n\n", err)
				continue
			}
		}

		targetCmd.SetOut(out)
		if targetCmd.RunE != nil {
			if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
				fmt.Fprintf(out, "Error: %v\n\n", err)
			}
		} else if targetCmd.Run != nil {
			targetCmd.Run(targetCmd, cmdArgs)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-40s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(out, "\n  help                                     Show this help message")
	fmt.Fprintln(out, "  exit, quit                               Exit the interactive session")
}
