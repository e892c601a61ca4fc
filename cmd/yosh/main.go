package main

import (
	"fmt"
	"os"

	syntax "go.yosh.dev/yosh/pkg"
)

// config is the result of scanning os.Args by hand (no flag library):
// POSIX shell invocation syntax bundles short options and takes -c's
// argument inline, which doesn't map cleanly onto flag.FlagSet.
type config struct {
	command     string
	haveCommand bool
	interactive bool
	monitor     bool
	scriptPath  string
}

func parseArgs(args []string) (config, error) {
	var c config
	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-c":
			if i+1 >= len(args) {
				return config{}, fmt.Errorf("-c requires an argument")
			}
			c.command = args[i+1]
			c.haveCommand = true
			i += 2
			continue
		case "-i":
			c.interactive = true
			i++
			continue
		case "-m":
			c.monitor = true
			i++
			continue
		}
		if c.scriptPath == "" && !c.haveCommand {
			c.scriptPath = arg
		}
		i++
	}
	return c, nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	aliases := syntax.NewAliasSet()

	var lexer *syntax.Lexer
	switch {
	case cfg.haveCommand:
		lexer = syntax.NewLexerFromText(cfg.command, syntax.UnknownSource{})
	case cfg.scriptPath != "":
		f, err := os.Open(cfg.scriptPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		lexer = syntax.NewLexer(syntax.NewReaderInput(f), syntax.StdinSource{})
	default:
		input := syntax.NewStdinInput()
		if cfg.interactive {
			echo := &syntax.EchoState{}
			input.SetEcho(echo, os.Stderr)
		}
		lexer = syntax.NewLexer(input, syntax.StdinSource{})
	}

	ast, err := syntax.Parse(lexer, aliases)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(syntax.Print(ast))
}
