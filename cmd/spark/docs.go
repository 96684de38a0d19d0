package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docGenerators writes the page tree for the root command into a directory.
var docGenerators = map[string]func(root *cobra.Command, dir string) error{
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "SPARK",
			Section: "1",
			Source:  "spark " + version,
			Manual:  "spark manual",
		}, dir)
	},
	"markdown": doc.GenMarkdownTree,
}

func docFormats() string {
	names := make([]string, 0, len(docGenerators))
	for name := range docGenerators {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func newDocsCmd() *cobra.Command {
	var dir, format string
	docsCmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Generate man pages or markdown for spark",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, ok := docGenerators[format]
			if !ok {
				return fmt.Errorf("unknown format %q (one of: %s)", format, docFormats())
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return gen(root, dir)
		},
	}
	docsCmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	docsCmd.Flags().StringVar(&format, "format", "man", "output format: "+docFormats())
	return docsCmd
}
