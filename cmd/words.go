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
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/madpixels/lingocards/internal/app"
	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Search and manage words in active dictionaries",
}

var wordsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search words across active dictionaries",
	Long: `Search lists words from active dictionaries ordered by relevance: exact
matches first, then prefix matches, then substring matches.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		words, err := container.WordUC.Fetch(cmd.Context(), query,
			repository.Page{Offset: offset, Limit: limit})
		if err != nil {
			return fmt.Errorf("search words: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFRONT\tBACK\tHINT\tWEIGHT")
		for _, w := range words {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", w.ID, w.FrontText, w.BackText, w.Hint, w.Weight)
		}
		return tw.Flush()
	},
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <dictionary-key> <front> <back>",
	Short: "Add a word to a dictionary",
	Long: `Add stores a new flashcard. Both sides may carry alternatives separated
by | which are all accepted as answers during study.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		hint, _ := cmd.Flags().GetString("hint")
		description, _ := cmd.Flags().GetString("description")

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		if _, err := container.DictionaryUC.Get(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("resolve dictionary: %w", err)
		}
		word := entity.Word{
			Dictionary:  args[0],
			FrontText:   args[1],
			BackText:    args[2],
			Hint:        hint,
			Description: description,
		}
		if err := container.WordUC.Add(cmd.Context(), &word); err != nil {
			return fmt.Errorf("add word: %w", err)
		}
		cmd.Printf("Added word %d: %s / %s\n", word.ID, word.FrontText, word.BackText)
		return nil
	},
}

var wordsEditCmd = &cobra.Command{
	Use:   "edit <id> <front> <back>",
	Short: "Replace a word's text fields",
	Long: `Edit rewrites the card's text while keeping its study history: the answer
counters and sampling weight survive the edit.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid word id %q", args[0])
		}
		hint, _ := cmd.Flags().GetString("hint")
		description, _ := cmd.Flags().GetString("description")

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		word := entity.Word{
			ID:          id,
			FrontText:   args[1],
			BackText:    args[2],
			Hint:        hint,
			Description: description,
		}
		if err := container.WordUC.Edit(cmd.Context(), &word); err != nil {
			return fmt.Errorf("edit word: %w", err)
		}
		cmd.Printf("Updated word %d\n", word.ID)
		return nil
	},
}

var wordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid word id %q", args[0])
		}

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		if err := container.WordUC.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete word: %w", err)
		}
		cmd.Printf("Deleted word %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.AddCommand(wordsSearchCmd, wordsAddCmd, wordsEditCmd, wordsDeleteCmd)

	wordsSearchCmd.Flags().Int("limit", 50, "maximum words to list")
	wordsSearchCmd.Flags().Int("offset", 0, "listing offset")

	for _, c := range []*cobra.Command{wordsAddCmd, wordsEditCmd} {
		c.Flags().String("hint", "", "optional hint shown during study")
		c.Flags().String("description", "", "optional long-form note")
	}
}
