package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/infra/buildinfo"
)

// versionInfo is the output of the version command.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Crypto    bool   `json:"crypto" yaml:"crypto"`
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	info := buildinfo.Get()
	return render(c, versionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildTime: info.BuildTime,
		GoVersion: info.GoVersion,
		Crypto:    cryptolock.Enabled,
	})
}
