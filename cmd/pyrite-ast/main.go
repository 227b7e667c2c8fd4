// pyrite-ast is a debugging tool for the statement subsystem: it decodes the
// parser's JSON handoff and renders the pieces the type checker consumes —
// the pretty-printed source, per-class attribute tables, and the desugaring
// preambles of compound statements.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/funvibe/pyrite/internal/ast"
	"github.com/funvibe/pyrite/internal/astjson"
	"github.com/funvibe/pyrite/internal/config"
	"github.com/funvibe/pyrite/internal/diagnostics"
	"github.com/funvibe/pyrite/internal/location"
	"github.com/funvibe/pyrite/internal/prettyprinter"
	"github.com/funvibe/pyrite/internal/source"
)

var (
	configPath  string
	inTest      bool
	noGenerated bool
)

func main() {
	root := &cobra.Command{
		Use:           "pyrite-ast",
		Short:         "Inspect the statement AST the analyzer works on",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "recognized-names YAML override")

	printCmd := &cobra.Command{
		Use:   "print <ast.json>",
		Short: "Pretty-print a decoded statement stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := loadModule(args[0])
			if err != nil {
				return err
			}
			fmt.Print(prettyprinter.PrintStatements(module.Statements))
			return nil
		},
	}

	attributesCmd := &cobra.Command{
		Use:   "attributes <ast.json>",
		Short: "Dump the attribute table of every class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := loadRecognizedNames()
			if err != nil {
				return err
			}
			module, err := loadModule(args[0])
			if err != nil {
				return err
			}
			for _, class := range module.Classes() {
				printAttributes(class, names)
			}
			return nil
		},
	}
	attributesCmd.Flags().BoolVar(&inTest, "test", false, "treat test setup methods as constructors")
	attributesCmd.Flags().BoolVar(&noGenerated, "no-generated", false, "exclude constructor-discovered attributes")

	preambleCmd := &cobra.Command{
		Use:   "preamble <ast.json>",
		Short: "Show the desugaring preamble of each compound statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := loadModule(args[0])
			if err != nil {
				return err
			}
			printPreambles(module.Statements)
			return nil
		},
	}

	root.AddCommand(printCmd, attributesCmd, preambleCmd)
	if err := root.Execute(); err != nil {
		diagnostics.Render(os.Stderr, []diagnostics.Diagnostic{
			diagnostics.New("CLI001", diagnostics.Error, location.Location{}, "%v", err),
		})
		os.Exit(1)
	}
}

func loadModule(path string) (*source.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	document, err := astjson.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	modulePath := document.Path
	if modulePath == "" {
		modulePath = path
	}
	return source.NewModule(modulePath, document.Statements), nil
}

func loadRecognizedNames() (*config.RecognizedNames, error) {
	if configPath == "" {
		return config.DefaultRecognizedNames(), nil
	}
	return config.LoadRecognizedNames(configPath)
}

func printAttributes(class *ast.Class, names *config.RecognizedNames) {
	header := color.New(color.Bold)
	header.Printf("class %s\n", class.Name)
	attributes := class.Attributes(names, inTest, !noGenerated)
	attributes.Each(func(name string, attribute *ast.Attribute) {
		line := "  " + name
		if attribute.Annotation != nil {
			line += ": " + attribute.Annotation.String()
		}
		if attribute.Value != nil {
			line += " = " + attribute.Value.String()
		}
		var flags []string
		if attribute.Primitive {
			flags = append(flags, "primitive")
		}
		if attribute.Setter {
			flags = append(flags, "setter")
		}
		if attribute.Async {
			flags = append(flags, "async")
		}
		if len(attribute.Defines) > 0 {
			flags = append(flags, fmt.Sprintf("%d signature(s)", len(attribute.Defines)))
		}
		if len(flags) > 0 {
			line += "  (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Println(line)
	})
}

func printPreambles(statements []ast.Statement) {
	for _, statement := range statements {
		switch s := statement.(type) {
		case *ast.For:
			showPreamble(s.GetLoc().String(), "for", s.Preamble())
			printPreambles(s.Body)
			printPreambles(s.OrElse)
		case *ast.With:
			showPreamble(s.GetLoc().String(), "with", s.Preamble())
			printPreambles(s.Body)
		case *ast.Try:
			showPreamble(s.GetLoc().String(), "try", s.Preamble())
			printPreambles(s.Body)
			for _, handler := range s.Handlers {
				printPreambles(handler.Body)
			}
			printPreambles(s.OrElse)
			printPreambles(s.Finally)
		case *ast.While:
			printPreambles(s.Body)
			printPreambles(s.OrElse)
		case *ast.If:
			printPreambles(s.Body)
			printPreambles(s.OrElse)
		case *ast.Class:
			printPreambles(s.Body)
		case *ast.Define:
			printPreambles(s.Body)
		}
	}
}

func showPreamble(loc, kind string, preamble []ast.Statement) {
	if len(preamble) == 0 {
		return
	}
	fmt.Printf("%s %s:\n", loc, kind)
	fmt.Print(prettyprinter.PrintStatements(preamble))
}
