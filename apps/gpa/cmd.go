package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/storage/catalog"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *viper.Viper
	log  core.Logger
	in   io.Reader
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  [session] [-catalog PATH]               - interactive grade book (default)")
	fmt.Fprintln(cli.out, "  catalog [-catalog PATH]                 - print the program catalog")
	fmt.Fprintln(cli.out, "  calc [-catalog PATH] CREDITS:GRADE ...  - GPA of ad-hoc courses; a trailing ! marks pass/fail")
}

func (cli *commandLine) run(args []string) error {
	cmd, args := "session", args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	catalogPath := fs.String("catalog", "", "Path of a YAML program catalog. Defaults to the catalogPath setting, then to the embedded catalog.")

	switch cmd {
	case "session", "catalog", "calc":
	default:
		cli.printUsage()
		return errHelp
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}

	svc, err := cli.service(*catalogPath)
	if err != nil {
		return err
	}
	r := newRenderer(cli.printer())

	switch cmd {
	case "catalog":
		r.catalog(cli.out, svc.Catalog())
		return nil
	case "calc":
		if fs.NArg() == 0 {
			fs.Usage()
			return errHelp
		}
		return cli.calc(r, fs.Args())
	default:
		return cli.session(svc, r)
	}
}

func (cli *commandLine) service(catalogPath string) (*curriculum.Service, error) {
	var (
		cat *curriculum.Catalog
		err error
	)
	if catalogPath != "" {
		cat, err = catalog.Load(catalogPath)
	} else {
		cat, err = catalog.Open(cli.conf)
	}
	if err != nil {
		return nil, err
	}
	rules, err := curriculum.RulesFromConfig(cli.conf)
	if err != nil {
		return nil, err
	}
	return curriculum.NewService(cat, rules, cli.log), nil
}

func (cli *commandLine) printer() *message.Printer {
	tag, err := language.Parse(cli.conf.GetString("lang"))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// interactive reports whether commands are typed in a terminal.
func (cli *commandLine) interactive() bool {
	f, ok := cli.in.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}
