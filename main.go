package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/webasoo/docsecrets/secrets"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	if s == nil || len(*s) == 0 {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	if value == "" {
		return nil
	}
	*s = append(*s, value)
	return nil
}

func commandName() string {
	if len(os.Args) == 0 {
		return "docsecrets"
	}
	base := filepath.Base(os.Args[0])
	if strings.HasSuffix(strings.ToLower(base), ".exe") {
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	base = strings.TrimSpace(base)
	if base == "" || strings.EqualFold(base, "main") {
		return "docsecrets"
	}
	return base
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		if err := runExtract(context.Background(), os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("docsecrets extract: %v", err)
		}
	case "redact":
		if err := runRedact(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			log.Fatalf("docsecrets redact: %v", err)
		}
	case "help", "-h", "--help", "-help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func runExtract(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(out)
	useKin := fs.Bool("kin", false, "load the document with kin-openapi (schemes sorted by name)")
	validate := fs.Bool("validate", false, "validate the document before extracting (implies -kin)")
	var schemes stringSliceFlag
	fs.Var(&schemes, "scheme", "only extract from the named security scheme (repeatable, order kept)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s extract [flags] <openapi-file>\n\n", commandName())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one OpenAPI document")
	}

	doc, err := loadDocument(ctx, fs.Arg(0), *useKin || *validate, *validate)
	if err != nil {
		return err
	}

	list := doc.Secrets()
	if len(schemes) > 0 {
		list = secrets.Extract(doc.Select(schemes...))
	}
	for _, s := range list {
		if _, err := fmt.Fprintln(out, s); err != nil {
			return err
		}
	}
	return nil
}

func runRedact(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("redact", flag.ContinueOnError)
	fs.SetOutput(out)
	specPath := fs.String("spec", "openapi.json", "OpenAPI document providing the secrets")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s redact [flags] [file|-]\n\n", commandName())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	doc, err := loadDocument(context.Background(), strings.TrimSpace(*specPath), false, false)
	if err != nil {
		return err
	}

	if name := fs.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open %q: %w", name, err)
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	_, err = io.WriteString(out, secrets.NewRedactor(doc.Secrets()).Redact(string(text)))
	return err
}

func loadDocument(ctx context.Context, path string, useKin, validate bool) (*secrets.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %q: %w", path, err)
	}
	if useKin {
		return secrets.LoadOpenAPI3(ctx, data, validate)
	}
	return secrets.Parse(data)
}

func printUsage(w io.Writer) {
	cmd := commandName()
	fmt.Fprintf(w, `%s - OpenAPI example credential tool

Usage: %s <command> [arguments]

Available Commands:
  extract     Print the x-scalar-secret-* credentials of a document, one per line
  redact      Mask a document's credentials in text read from a file or stdin
  help        Show this help message

Examples:
  %[1]s extract openapi.yaml
  %[1]s extract -scheme basic -scheme apiKey openapi.json
  curl-snippet.sh | %[1]s redact -spec openapi.yaml
`, cmd, cmd)
}
