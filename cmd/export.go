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
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/madpixels/lingocards/internal/app"
	"github.com/madpixels/lingocards/internal/tabular"
)

var exportCmd = &cobra.Command{
	Use:   "export <dictionary-key>",
	Short: "Export a dictionary back to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		output, _ := cmd.Flags().GetString("output")
		sepFlag, _ := cmd.Flags().GetString("separator")

		sep := tabular.DefaultSeparator
		if sepFlag != "" {
			r, size := utf8.DecodeRuneInString(sepFlag)
			if size != len(sepFlag) {
				return fmt.Errorf("separator must be a single character, got %q", sepFlag)
			}
			sep = r
		}

		container, err := app.New()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		defer container.Close()

		var writer io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			file, createErr := os.Create(filepath.Clean(output))
			if createErr != nil {
				return fmt.Errorf("create output file: %w", createErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}

		if err := container.ImportUC.Export(cmd.Context(), args[0], writer, sep); err != nil {
			return fmt.Errorf("export dictionary: %w", err)
		}
		if output != "" && output != "-" {
			cmd.Printf("Exported to %s\n", output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "output file path, - or empty for stdout")
	exportCmd.Flags().StringP("separator", "s", "", "field separator (default ,)")
}
