package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := newApp()
	parser := flags.NewParser(&app.options, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "back-office API client"

	if _, err := parser.AddCommand("login", "Log in", "Exchange credentials for a session token.", &loginCommand{app: app}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("list", "List a collection", "List one page of a resource family.", &listCommand{app: app}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("stats", "Show status counts", "Show per-status counts of a resource family.", &statsCommand{app: app}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("export", "Export a collection", "Download a resource family to a file.", &exportCommand{app: app}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("import", "Import a collection", "Upload a previously exported file.", &importCommand{app: app}); err != nil {
		return err
	}
	_, err := parser.ParseArgs(args)
	return err
}
