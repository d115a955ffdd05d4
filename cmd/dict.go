/*
Copyright © 2025 Mad Pixels

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/madpixels/lingocards/internal/app"
	"github.com/madpixels/lingocards/internal/repository"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage dictionaries",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dictionaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		dicts, err := container.DictionaryUC.Fetch(cmd.Context(), search,
			repository.Page{Offset: offset, Limit: limit})
		if err != nil {
			return fmt.Errorf("list dictionaries: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKEY\tNAME\tCATEGORY\tWORDS\tACTIVE")
		for _, d := range dicts {
			count, err := container.Words.CountByDictionary(cmd.Context(), d.Key)
			if err != nil {
				return fmt.Errorf("count words for %q: %w", d.Key, err)
			}
			active := ""
			if d.IsActive {
				active = "yes"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				d.ID, d.Key, d.Name, d.Category, count, active)
		}
		return tw.Flush()
	},
}

var dictActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Include a dictionary in search and study",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setDictActive(cmd, args[0], true) },
}

var dictDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Exclude a dictionary from search and study",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setDictActive(cmd, args[0], false) },
}

func setDictActive(cmd *cobra.Command, rawID string, active bool) error {
	var id int64
	if _, err := fmt.Sscanf(rawID, "%d", &id); err != nil {
		return fmt.Errorf("invalid dictionary id %q", rawID)
	}

	container, err := app.New()
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer container.Close()

	if err := container.DictionaryUC.SetActive(cmd.Context(), id, active); err != nil {
		return fmt.Errorf("update dictionary status: %w", err)
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	cmd.Printf("Dictionary %d %s\n", id, state)
	return nil
}

var dictDeleteCmd = &cobra.Command{
	Use:   "delete <dictionary-key>",
	Short: "Delete a dictionary and all its words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		name, err := container.DictionaryUC.DisplayName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolve dictionary: %w", err)
		}
		if err := container.DictionaryUC.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete dictionary: %w", err)
		}
		cmd.Printf("Deleted %q\n", name)
		return nil
	},
}

var dictRenameCmd = &cobra.Command{
	Use:   "rename <dictionary-key> <new-name>",
	Short: "Rename a dictionary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		dict, err := container.DictionaryUC.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolve dictionary: %w", err)
		}
		dict.Name = args[1]
		if err := container.DictionaryUC.Update(cmd.Context(), dict); err != nil {
			return fmt.Errorf("rename dictionary: %w", err)
		}
		cmd.Printf("Renamed %s to %q\n", dict.Key, dict.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictListCmd, dictActivateCmd, dictDeactivateCmd, dictDeleteCmd, dictRenameCmd)

	dictListCmd.Flags().StringP("search", "s", "", "filter by name, author or description")
	dictListCmd.Flags().Int("limit", 50, "maximum dictionaries to list")
	dictListCmd.Flags().Int("offset", 0, "listing offset")
}
