// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/sheetboard/internal/admin"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

// Edit-specific flag values.
var (
	editRow    int
	editColumn string
	editValue  string
	editDelete []int
)

var editCmd = &cobra.Command{
	Use:   "edit <sheet>",
	Short: "Set a cell or delete rows in a sheet",
	Long: `Edit one sheet in place and overwrite it in the store.

Rows are numbered from 0. Setting a cell in row N where N equals the row
count appends a new row; an unknown column is added to the header.

Examples:
  sheetboard edit followers --row 0 --column followers --value 12000
  sheetboard edit events --row 3 --column event_name --value "Summer Quest"
  sheetboard edit payouts --delete 2,5`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().IntVar(&editRow, "row", -1, "row index to set (0-based)")
	editCmd.Flags().StringVar(&editColumn, "column", "", "column to set")
	editCmd.Flags().StringVar(&editValue, "value", "", "new cell value")
	editCmd.Flags().IntSliceVar(&editDelete, "delete", nil, "row indexes to delete (comma-separated)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	sheet := args[0]
	if !source.ValidSheetName(sheet) {
		return exitError(ExitInvalidArgs, "sheetboard: invalid sheet name %q", sheet)
	}
	setting := cmd.Flags().Changed("row") || cmd.Flags().Changed("column")
	deleting := len(editDelete) > 0
	switch {
	case setting && deleting:
		return exitError(ExitInvalidArgs, "sheetboard: --delete cannot be combined with --row/--column")
	case !setting && !deleting:
		return exitError(ExitInvalidArgs, "sheetboard: nothing to do (use --row/--column/--value or --delete)")
	case setting && (editRow < 0 || strings.TrimSpace(editColumn) == ""):
		return exitError(ExitInvalidArgs, "sheetboard: --row and --column are both required")
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	t, err := b.raw.Read(cmd.Context(), sheet)
	switch {
	case errors.Is(err, source.ErrSheetNotFound) && setting:
		t = record.NewTable()
	case err != nil:
		return unavailable(err)
	}

	w := cmd.OutOrStdout()
	if deleting {
		before := t.Len()
		kept := admin.DropBlank(admin.Delete(t, editDelete))
		if err := admin.Save(cmd.Context(), b.raw, sheet, kept); err != nil {
			return unavailable(err)
		}
		_, _ = fmt.Fprintf(w, "Deleted %d row(s) from %s\n", before-kept.Len(), sheet)
		return nil
	}

	t, err = admin.Apply(t, []admin.Edit{{Row: editRow, Column: strings.TrimSpace(editColumn), Value: editValue}})
	if err != nil {
		return exitError(ExitInvalidArgs, "sheetboard: %v", err)
	}
	if err := admin.Save(cmd.Context(), b.raw, sheet, t); err != nil {
		return unavailable(err)
	}
	_, _ = fmt.Fprintf(w, "Set %s[%d].%s = %s\n", sheet, editRow, editColumn, editValue)
	return nil
}
