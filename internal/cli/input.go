package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/errors"
)

// stdinArg names standard input as the source file.
const stdinArg = "-"

// readInput reads the explanation named by args, or stdin when args is
// empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, "stdin", nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, path, nil
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty. Output to stdout always ends with a newline.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(out, "\n")
			return err
		}
		return nil
	}

	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	printFile(path)
	return nil
}
