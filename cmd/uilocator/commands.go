package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/engine"
	"github.com/glesirok/uilocator/pkg/expression"
	"github.com/glesirok/uilocator/pkg/locator"
	"github.com/glesirok/uilocator/pkg/matcher"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <locator>",
		Short: "Parse a locator and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printExpression(cmd.OutOrStdout(), args[0])
		},
	}
}

func printExpression(w io.Writer, text string) error {
	expr, err := expression.Parse(text)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "kind: %s\n", expr.Kind())
	if loc, err := locator.Parse(text); err == nil {
		fmt.Fprintf(w, "canonical: %s\n", loc.Canonical())
	}

	switch e := expr.(type) {
	case *expression.Simple:
		fmt.Fprintf(w, "type: %s\nvalue: %s\n", e.Type, e.Value)
	case *expression.Toolkit:
		fmt.Fprintf(w, "toolkit: %s\nselector: %s (%s)\n", e.Toolkit, e.Selector, e.Inner.Kind())
	case *expression.CSS:
		for i, seg := range e.Segments {
			fmt.Fprintf(w, "segment %d: %s\n", i, seg.Describe())
		}
	case *expression.XPath:
		for i, step := range e.Steps {
			preds := make([]string, len(step.Predicates))
			for j, p := range step.Predicates {
				preds[j] = "[" + p.String() + "]"
			}
			fmt.Fprintf(w, "step %d: %s::%s%s\n", i, step.Axis, step.NodeTest, strings.Join(preds, ""))
		}
	}
	return nil
}

func newFindCmd() *cobra.Command {
	findCmd := &cobra.Command{
		Use:   "find <locator>",
		Short: "Find components matching a locator in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			tree, err := component.LoadFile(snapshotFile)
			if err != nil {
				return err
			}

			eng := engine.NewEngine(
				engine.WithToolkit(s.toolkit),
				engine.WithEvaluator(matcher.New(
					matcher.WithCaseSensitive(s.caseSensitive),
					matcher.WithLogger(logger),
				)),
				engine.WithLogger(logger),
			)
			out, err := eng.ApplyTree(tree, &engine.Query{Action: engine.ActionFind, Locator: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, m := range out.Matches {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Path, m.Element, m.Label)
			}
			fmt.Fprintf(w, "✓ %d match(es)\n", out.Count)
			return nil
		},
	}

	findCmd.Flags().StringVarP(&snapshotFile, "snapshot", "s", "", "Snapshot file (required)")
	findCmd.MarkFlagRequired("snapshot")
	return findCmd
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <locator>",
		Short: "Normalize a locator for the selected toolkit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			n := toolkit.NewNormalizer(s.toolkit, toolkit.DefaultNormalizerCacheSize, logger)
			u, err := n.Normalize(args[0])
			if err != nil {
				var perr *toolkit.ParseError
				if errors.As(err, &perr) {
					for _, hint := range perr.Suggestions {
						fmt.Fprintf(cmd.ErrOrStderr(), "hint: %s\n", hint)
					}
				}
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "kind: %s\nvalue: %s\ntoolkit: %s\n", u.Kind, u.Value, u.Toolkit)
			if u.Scope != "" {
				fmt.Fprintf(w, "scope: %s\n", u.Scope)
			}
			for _, p := range u.Predicates {
				fmt.Fprintf(w, "predicate: %s\n", p)
			}
			fmt.Fprintf(w, "locator: %s\n", u.Locator())
			return nil
		},
	}
}

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params <locator>",
		Short: "Convert a locator to toolkit query parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			params, err := toolkit.Params(args[0], s.toolkit)
			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(params); err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			return encoder.Close()
		},
	}
}
