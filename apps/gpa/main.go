package main

import (
	"os"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/services/logger"
)

func main() {
	logger := logsvc.New(core.Conf)

	cli := commandLine{
		conf: core.Conf,
		log:  logger,
		in:   os.Stdin,
		out:  os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("gpa", err)
		}
		os.Exit(1)
	}
}
