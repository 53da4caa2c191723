package main

import (
	"os"

	"github.com/spf13/cobra"
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show file",
		Short: "Print the rows of a file",
		Args:  cobra.ExactArgs(1),
		Run:   showTable}
	cmd.Flags().IntP("head", "n", 0, "print only the first n rows (default: all)")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "columns file",
		Short: "List the columns of a file with their inferred types",
		Args:  cobra.ExactArgs(1),
		Run:   listColumns}
	cmd.Flags().Bool("numeric", false, "list only numeric columns")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "filter file",
		Short: "Print the rows matching every condition",
		Long: "Print the rows matching every condition.\n\n" +
			"Conditions have the form column||operator||value, for example\n" +
			"  --where 'age||>||20' --where 'name||Starts With||al'",
		Args: cobra.ExactArgs(1),
		Run:  filterTable}
	cmd.Flags().StringArrayP("where", "w", nil, "condition column||operator||value (repeatable)")
	cmd.MarkFlagRequired("where")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "group file",
		Short: "Group rows by a column and aggregate each group",
		Long: "Group rows by a column and aggregate each group.\n\n" +
			"Aggregations are Count, Sum, Average, Max, Min and List, written\n" +
			"as func(column) or func:column, for example --agg count --agg 'sum(value)'",
		Args: cobra.ExactArgs(1),
		Run:  groupTable}
	cmd.Flags().StringP("by", "b", "", "column to group by (required)")
	cmd.Flags().StringArrayP("agg", "a", nil, "aggregation (repeatable)")
	cmd.Flags().Bool("typed", false, "emit native values instead of strings")
	cmd.MarkFlagRequired("by")
	cmd.MarkFlagRequired("agg")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "stat file",
		Short: "Compute a statistic over a whole column",
		Args:  cobra.ExactArgs(1),
		Run:   statColumn}
	cmd.Flags().StringP("column", "c", "", "column name (required)")
	cmd.Flags().String("op", "sum", "statistic: sum, average, max or min")
	cmd.MarkFlagRequired("column")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "pie file",
		Short: "Sum a value column per category",
		Args:  cobra.ExactArgs(1),
		Run:   pieChart}
	cmd.Flags().String("category", "", "category column (required)")
	cmd.Flags().String("value", "", "value column (required)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("value")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "repl file",
		Short: "Explore a file interactively",
		Args:  cobra.ExactArgs(1),
		Run:   repl}
	root.AddCommand(cmd)
}

func main() {
	var root = &cobra.Command{
		Use:   "tally",
		Short: "Filter, group and summarise tabular files"}
	root.PersistentFlags().StringP("delimiter", "d", "", "CSV delimiter, a single character or \\t (default: , or tab for .tsv)")
	root.PersistentFlags().StringP("format", "f", "table", "output format: table, csv or json")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	addCommands(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
