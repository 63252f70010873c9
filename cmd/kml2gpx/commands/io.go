package commands

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

// writeOutput writes data to the named file, or stdout for "" and "-".
func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}
