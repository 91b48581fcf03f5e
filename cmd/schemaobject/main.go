package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/reoring/schemaobject"
	"github.com/reoring/schemaobject/codec"
	"github.com/reoring/schemaobject/i18n"
	"github.com/reoring/schemaobject/schemayaml"
)

// config holds defaults that can be set through the environment; flags
// override them.
type config struct {
	Lang    string `env:"SCHEMAOBJECT_LANG" envDefault:"en"`
	Verbose bool   `env:"SCHEMAOBJECT_VERBOSE"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fatalf("reading environment: %v", err)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		os.Exit(checkCmd(os.Args[2:], cfg, os.Stdin, os.Stdout))
	case "jsonschema":
		os.Exit(jsonSchemaCmd(os.Args[2:], cfg, os.Stdout))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemaobject CLI\n\nUsage:\n  schemaobject check -schema schema.yaml [-in doc.json] [-lang en|ja] [-v]\n  schemaobject jsonschema -schema schema.yaml\n\nNotes:\n  - check reads the document from stdin when -in is omitted or \"-\".\n  - SCHEMAOBJECT_LANG and SCHEMAOBJECT_VERBOSE set flag defaults.")
}

// checkCmd coerces a JSON document through the schema and prints the
// interchange form together with the recorded issues. It returns 1 when any
// issue was recorded.
func checkCmd(args []string, cfg config, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, inPath, lang string
	var verbose bool
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	fs.StringVar(&inPath, "in", "-", "JSON document (- for stdin)")
	fs.StringVar(&lang, "lang", cfg.Lang, "issue message language (en, ja)")
	fs.BoolVar(&verbose, "v", cfg.Verbose, "enable verbose logs")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(lang)

	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}

	opts := schemaobject.Options{}
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	typ := loadType(schemaPath, opts)
	logf("check: schema=%s fields=%v", schemaPath, typ.Names())

	var r io.Reader = stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			fatalf("opening input: %v", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := codec.DecodeJSONReader(r)
	if err != nil {
		fatalf("decoding input: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		fatalf("input must be a JSON object, got %T", doc)
	}
	obj := typ.New(m)
	issues := obj.Errors()
	logf("check: %d issue(s)", len(issues))

	out := map[string]any{"value": obj.ToJSON(), "issues": issueList(issues)}
	b, err := codec.MarshalJSONIndent(out, "", "  ")
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	fmt.Fprintln(stdout, string(b))
	if len(issues) > 0 {
		return 1
	}
	return 0
}

func jsonSchemaCmd(args []string, cfg config, stdout io.Writer) int {
	fs := flag.NewFlagSet("jsonschema", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		return 2
	}
	typ := loadType(schemaPath, schemaobject.Options{})
	sch, err := typ.JSONSchema()
	if err != nil {
		fatalf("projecting schema: %v", err)
	}
	b, err := codec.MarshalJSONIndent(sch, "", "  ")
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}

func loadType(path string, opts schemaobject.Options) *schemaobject.Type {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	typ, err := schemayaml.ImportType(data, opts)
	if err != nil {
		fatalf("loading schema: %v", err)
	}
	return typ
}

func issueList(iss schemaobject.Issues) []map[string]any {
	out := make([]map[string]any, 0, len(iss))
	for _, it := range iss {
		out = append(out, map[string]any{"path": it.Path, "code": it.Code, "message": it.Message})
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "schemaobject: "+format+"\n", a...)
	os.Exit(1)
}
