package operations

import (
	"strings"

	"github.com/campdirector/campdirector"
	"github.com/urfave/cli"
)

const confFlagName = "conf"

func serviceConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(confFlagName, "c", "config"),
		Usage: "path to the service configuration file",
		Value: campdirector.DefaultServiceConfigurationFileName,
	})
}

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }
