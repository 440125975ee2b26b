package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/flarebyte/seshat-compendium/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagJSON  bool
)

// VersionCmd prints build metadata, one line by default or a JSON object.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort || !flagJSON {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "seshat %s\n", buildinfo.Summary())
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "seshat version: %s\n", buildinfo.Summary())
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(versionInfo{
			Name:      "seshat",
			Version:   buildinfo.Version,
			Commit:    buildinfo.Commit,
			Date:      buildinfo.Date,
			BuiltBy:   buildinfo.BuiltBy,
			Go:        runtime.Version(),
			GoOS:      runtime.GOOS,
			GoArch:    runtime.GOARCH,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	},
}

type versionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	Go        string `json:"go"`
	GoOS      string `json:"go_os"`
	GoArch    string `json:"go_arch"`
	Timestamp string `json:"timestamp"`
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
