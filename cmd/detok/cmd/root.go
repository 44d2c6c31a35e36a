package cmd

import (
	"fmt"
	"os"

	"github.com/qbtools/detok/internal/mac"
	"github.com/qbtools/detok/internal/qb"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "detok <file>",
	Short: "Detokenize BASIC program files",
	Long: `detok decodes tokenized BASIC program files back into source text.

Supported formats:
  - QuickBASIC 4.0, 4.5, 7.0 and 7.1 "Fast Load and Save" files
  - Visual Basic for MS-DOS files, including the embedded form resource
  - Macintosh BASIC tokenized files

The format is recognized from the file's first byte. The reconstructed
source is written to standard output; for a QuickBASIC-family file that
fails to decode midway, everything decoded up to the failure is still
printed and the error goes to standard error.`,
	Version:      Version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDetok,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func runDetok(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	var first [1]byte
	if _, err := file.Read(first[:]); err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}

	if first[0] == 0xFC {
		decoded, err := qb.Decode(file)
		if decoded != nil {
			decoded.Print(os.Stdout)
		}
		if err != nil {
			if decoded == nil {
				return err
			}
			// partial output was printed; report the failure but exit 0
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	}
	return mac.Decode(file, os.Stdout)
}
