// Package main is the mdedit conversion and scripting CLI. It reads a
// document in one format, optionally applies a Lua macro, and writes the
// document in another format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/mdedit/convert"
	"github.com/dshills/mdedit/document"
	"github.com/dshills/mdedit/edit"
	"github.com/dshills/mdedit/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	from       string
	to         string
	scriptPath string
	outPath    string
	inputPath  string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("mdedit %s (%s)\n", version, commit)
		return 0
	}

	input, err := readInput(opts.inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := parse(opts.from, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse %s: %v\n", opts.from, err)
		return 1
	}

	if opts.scriptPath != "" {
		editor := edit.New(edit.WithDocument(doc))
		engine := script.New(editor, script.WithOutput(os.Stderr))
		defer engine.Close()
		if err := engine.RunFile(opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	output, err := serialize(opts.to, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to serialize %s: %v\n", opts.to, err)
		return 1
	}

	if err := writeOutput(opts.outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.from, "from", "md", "Input format (md, json, html)")
	flag.StringVar(&opts.to, "to", "md", "Output format (md, json, html)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua macro to apply before serializing")
	flag.StringVar(&opts.outPath, "o", "", "Output file (default stdout)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mdedit - structured document converter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mdedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mdedit -from md -to html doc.md      Convert markdown to HTML\n")
		fmt.Fprintf(os.Stderr, "  mdedit -to json doc.md               Convert markdown to JSON\n")
		fmt.Fprintf(os.Stderr, "  mdedit -script macro.lua doc.md      Apply a Lua macro\n")
		fmt.Fprintf(os.Stderr, "  cat doc.md | mdedit -to html         Read from stdin\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		opts.inputPath = flag.Arg(0)
	}
	return opts, showVersion
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parse(format, input string) (*document.Document, error) {
	switch format {
	case "md", "markdown":
		return convert.ParseMarkdown(input)
	case "json":
		return convert.ParseJSON(input)
	case "html":
		return convert.ParseHTML(input)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

func serialize(format string, doc *document.Document) (string, error) {
	switch format {
	case "md", "markdown":
		return convert.ToMarkdown(doc)
	case "json":
		return convert.ToJSON(doc)
	case "html":
		return convert.ToHTML(doc)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
