package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/raml2obj"
	"github.com/erraggy/raml2obj/cmd/raml2obj/commands"
	"github.com/erraggy/raml2obj/internal/cliutil"
	"github.com/erraggy/raml2obj/internal/mcpserver"
)

// commandNames lists the commands offered as suggestions for typos.
var commandNames = []string{"parse", "resources", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		cliutil.Writef(os.Stdout, "raml2obj v%s\n", raml2obj.Version())
		cliutil.Writef(os.Stdout, "commit: %s\n", raml2obj.Commit())
		cliutil.Writef(os.Stdout, "built: %s\n", raml2obj.BuildTime())
		cliutil.Writef(os.Stdout, "go: %s\n", raml2obj.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "parse":
		err = commands.HandleParse(os.Args[2:])
	case "resources":
		err = commands.HandleResources(os.Args[2:])
	case "mcp":
		err = runMCP()
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

func runMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	usage := `raml2obj - RAML documentation tree builder

Usage:
  raml2obj <command> [options]

Commands:
  parse      Load a RAML document and output the enriched tree
  resources  List resources with identifiers, paths and methods
  mcp        Run the MCP server over stdio
  version    Show version information
  help       Show this help message

Examples:
  raml2obj parse api.raml
  raml2obj parse --format yaml --normalize-types api.raml
  raml2obj resources https://example.com/api.raml
  cat api.raml | raml2obj parse -q -

Run 'raml2obj <command> --help' for more information on a command.`
	cliutil.Writef(os.Stdout, "%s\n", usage)
}
