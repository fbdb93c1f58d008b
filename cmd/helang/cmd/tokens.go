package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/foundation/helang/ast"
)

var tokensAST bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the tokens of a script",
	Long:  `Prints one "KIND content" line per token. With --ast the parsed tree is printed instead.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensAST, "ast", false, "print the syntax tree")
}

func runTokens(cmd *cobra.Command, args []string) error {
	engine := newEngine(cmd.OutOrStdout())
	source, err := engine.ReadScript(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tokensAST {
		node, err := engine.Parse(source)
		if err != nil {
			return err
		}
		fmt.Fprint(out, ast.Dump(node))
		return nil
	}

	tokens, err := engine.Tokenize(source)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "%s %s\n", tok.Kind, tok.Content)
	}
	return nil
}
