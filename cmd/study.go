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
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madpixels/lingocards/internal/app"
	"github.com/madpixels/lingocards/internal/entity"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Run an interactive study session",
	Long: `Study draws cards from one subcategory of the active dictionaries,
blending random picks with picks weighted toward words you get wrong.
Type your answer and press enter; an empty line reveals the card,
"q" ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rounds, _ := cmd.Flags().GetInt("rounds")

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		ctx := cmd.Context()
		if err := container.StudyUC.Start(ctx); err != nil {
			if errors.Is(err, entity.ErrNoActiveDictionaries) {
				return fmt.Errorf("no active dictionaries, import one or activate an existing one")
			}
			return fmt.Errorf("start study session: %w", err)
		}
		defer container.StudyUC.Reset()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		correct, total := 0, 0
		for rounds <= 0 || total < rounds {
			word, err := container.StudyUC.Next(ctx)
			if err != nil {
				if errors.Is(err, entity.ErrWordNotFound) {
					break
				}
				return fmt.Errorf("next card: %w", err)
			}

			cmd.Printf("\n%s", word.FrontText)
			if word.Hint != "" {
				cmd.Printf("  (hint: %s)", word.Hint)
			}
			cmd.Print("\n> ")
			if !scanner.Scan() {
				break
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "q" {
				break
			}
			if answer == "" {
				cmd.Printf("%s\n", word.BackText)
				continue
			}

			total++
			ok, updated, err := container.StudyUC.Answer(ctx, word, answer)
			if err != nil {
				return fmt.Errorf("record answer: %w", err)
			}
			if ok {
				correct++
				cmd.Printf("correct (%s)\n", updated.BackText)
			} else {
				cmd.Printf("wrong, expected: %s\n", updated.BackText)
			}
		}

		if total > 0 {
			cmd.Printf("\nSession over: %d/%d correct\n", correct, total)
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)

	studyCmd.Flags().IntP("rounds", "r", 0, "stop after this many answered cards (0 = unlimited)")
}
