package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/skema/internal/logx"
)

func (a *App) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the slot keys of the configured grid",
		Long: `Print every slot key, one per line, in grid order. These are the
KEY values accepted by 'skema show --drop ID@KEY'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.newBoard(logx.Nop())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range b.Keys() {
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
}
