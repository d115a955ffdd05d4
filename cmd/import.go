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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/madpixels/lingocards/internal/app"
	"github.com/madpixels/lingocards/internal/usecase"
)

const importSampleKey = "import.sample_size"

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a CSV file as a new dictionary",
	Long: `Import reads a delimiter-separated file, detects its separator and column
roles, and stores the result as a new dictionary. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		name, _ := cmd.Flags().GetString("name")
		author, _ := cmd.Flags().GetString("author")
		category, _ := cmd.Flags().GetString("category")
		subcategory, _ := cmd.Flags().GetString("subcategory")
		description, _ := cmd.Flags().GetString("description")
		bestEffort, _ := cmd.Flags().GetBool("best-effort")

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		input := args[0]
		var reader io.Reader = cmd.InOrStdin()
		if input != "-" {
			file, openErr := os.Open(filepath.Clean(input))
			if openErr != nil {
				return fmt.Errorf("open import file: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			reader = file
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			}
		}
		if name == "" {
			return fmt.Errorf("a dictionary name is required when importing from stdin, use --name")
		}

		opts := []usecase.ImportOption{
			usecase.WithSampleSize(viper.GetInt(importSampleKey)),
		}
		if bestEffort {
			opts = append(opts, usecase.WithBestEffortColumns())
		}

		dict, words, err := container.ImportUC.Import(cmd.Context(), reader, usecase.ImportMetadata{
			Name:        name,
			Description: description,
			Category:    category,
			Subcategory: subcategory,
			Author:      author,
		}, opts...)
		if err != nil {
			return fmt.Errorf("import dictionary: %w", err)
		}

		cmd.Printf("Imported %q (%s): %d words\n", dict.Name, dict.Key, len(words))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("name", "n", "", "dictionary name (default: file name without extension)")
	importCmd.Flags().StringP("author", "a", "", "dictionary author")
	importCmd.Flags().String("category", "", "dictionary category")
	importCmd.Flags().String("subcategory", "", "dictionary subcategory")
	importCmd.Flags().String("description", "", "dictionary description")
	importCmd.Flags().Bool("best-effort", false, "fall back to positional column roles when detection fails")
	importCmd.Flags().Int("sample-size", 0, "rows sampled for column detection (default 30)")

	bindFlagToViper(importSampleKey, importCmd.Flags().Lookup("sample-size"))
}
