package main

import (
	"fmt"
	"os"

	"github.com/inferspec/inferspec"
	"github.com/inferspec/inferspec/cmd/inferspec/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("inferspec v%s\n", inferspec.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := commands.HandleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`inferspec - OpenAPI inference from statically analyzed service facts

Usage:
  inferspec <command> [options]

Commands:
  generate    Generate an OpenAPI document from a JSON facts file
  check       Run the structural requirement report against a document
  mcp         Start an MCP server over stdio exposing generate and check
  version     Show version information
  help        Show this help message

Examples:
  inferspec generate facts.json
  inferspec generate -t 3.1 -o openapi.yaml facts.json
  inferspec check openapi.json
  inferspec generate facts.json | inferspec check -q -

Run 'inferspec <command> --help' for more information on a command.`)
}
