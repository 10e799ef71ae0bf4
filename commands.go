package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/almonk/arbor/tree"
	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var printIDs bool

func init() {
	printCmd := &cobra.Command{
		Use:   "print <document>",
		Short: "Print the element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.OutOrStdout(), args[0])
		},
	}
	printCmd.Flags().BoolVar(&printIDs, "ids", true, "Show element ids")

	moveCmd := &cobra.Command{
		Use:   "move <document> <id> <parent-id> <position|end>",
		Short: "Move an element under a new parent",
		Long: `Move an element under a new parent. The position is an index among
the parent's current children, or "end".

Example:
  arbor move page.yaml hero-cta body end
  arbor move page.yaml logo nav 0`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd.OutOrStdout(), args[0], args[1], args[2], args[3])
		},
	}

	initCmd := &cobra.Command{
		Use:   "init <document>",
		Short: "Write a sample landing page document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args[0])
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "arbor %s (%s)\n", version, commit)
		},
	}

	rootCmd.AddCommand(printCmd, moveCmd, initCmd, versionCmd)
}

var (
	printContainerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	printLeafStyle      = lipgloss.NewStyle()
	printLockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	printIDStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	printGuideStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runPrint(w io.Writer, path string) error {
	root, _, err := tree.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, buildPrintTree(root).String())
	return nil
}

func printLabel(n *tree.Node) string {
	style := printLeafStyle
	switch {
	case n.Locked:
		style = printLockedStyle
	case n.IsContainer():
		style = printContainerStyle
	}
	label := style.Render(n.Label())
	if printIDs {
		label += " " + printIDStyle.Render("#"+n.ID)
	}
	return label
}

func buildPrintTree(n *tree.Node) *ltree.Tree {
	t := ltree.Root(printLabel(n)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(printGuideStyle)
	for _, c := range n.Children {
		if c.HasChildren() {
			t.Child(buildPrintTree(c))
		} else {
			t.Child(printLabel(c))
		}
	}
	return t
}

func runMove(w io.Writer, path, id, parentID, posArg string) error {
	pos, err := tree.ParsePosition(posArg)
	if err != nil {
		return err
	}
	root, _, err := tree.Load(path)
	if err != nil {
		return err
	}
	next, err := tree.Reparent(root, id, parentID, pos)
	if err != nil {
		return fmt.Errorf("moving %s: %w", id, err)
	}
	if _, err := tree.Save(path, next); err != nil {
		return err
	}
	fmt.Fprintf(w, "moved %s into %s at %s\n", id, parentID, pos)
	return nil
}

func runInit(w io.Writer, path string) error {
	if _, err := tree.FormatFor(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if _, err := tree.Save(path, tree.Sample()); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}
