// Command magichome allows performing basic operations on MagicHome LED
// controllers over the LAN
package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/magichome-go/magichome"
	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol"
)

var (
	client *magichome.Client

	flagTimeout  time.Duration
	flagLogLevel string
	flagAddrs    []string

	logger = logrus.New()
	app    = &cobra.Command{
		Use:   `magichome`,
		Short: `magichome interacts with MagicHome LED controllers on the LAN`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			setLogger()
		},
	}

	cmdGenerateBashComp = &cobra.Command{
		Use:   `bashcomp <filename>`,
		Short: "generate bash completion at <file>",
		Run:   generateBashComp,
	}

	cmdGenerateDocs = &cobra.Command{
		Use:   `docs <path>`,
		Short: "generate markdown documentation at <path>",
		Run:   generateDocs,
	}
)

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	magichome.SetLogger(logger)

	app.PersistentFlags().DurationVarP(&flagTimeout, `timeout`, `t`, common.DefaultTimeout, `timeout for all operations`)
	app.PersistentFlags().StringVarP(&flagLogLevel, `log-level`, `L`, `info`, `log level, one of: [debug,info,warn,error]`)
	app.PersistentFlags().StringSliceVarP(&flagAddrs, `addr`, `a`, nil, `controller address, may be repeated; when absent controllers are discovered by broadcast`)

	app.AddCommand(cmdList)
	app.AddCommand(cmdOn)
	app.AddCommand(cmdOff)
	app.AddCommand(cmdToggle)
	app.AddCommand(cmdColor)
	app.AddCommand(cmdState)
	app.AddCommand(cmdGenerateBashComp)
	app.AddCommand(cmdGenerateDocs)
}

func main() {
	_ = app.Execute()
}

func setupClient(c *cobra.Command, args []string) {
	var err error

	client, err = magichome.NewClient(&protocol.V1{})
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed initializing client`)
	}
	client.SetTimeout(flagTimeout)
}

func closeClient(c *cobra.Command, args []string) {
	err := client.Close()
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed closing client`)
	}
}

// resolveControllers returns the controllers an action applies to: the
// discovered set, or one unicast resolution per --addr when given.
func resolveControllers() []common.Controller {
	if len(flagAddrs) == 0 {
		controllers, err := client.GetControllers()
		if err != nil {
			logger.WithField(`error`, err).Fatalln(`No controllers discovered`)
		}
		return controllers
	}

	controllers := make([]common.Controller, 0, len(flagAddrs))
	for _, addr := range flagAddrs {
		ctrl, err := client.Connect(addr)
		if err != nil {
			logger.WithFields(logrus.Fields{
				`addr`:  addr,
				`error`: err,
			}).Fatalln(`Failed resolving controller`)
		}
		controllers = append(controllers, ctrl)
	}
	return controllers
}

func generateBashComp(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing filename`)
	}

	buf := new(bytes.Buffer)
	f, err := os.Create(args[0])
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: args[0],
			`error`:    err,
		}).Fatalln(`Could not open file`)
	}
	_ = app.GenBashCompletion(buf)
	_, _ = buf.WriteTo(f)
}

func generateDocs(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing output path`)
	}

	path := args[0]
	if path[len(path)-1] != os.PathSeparator {
		path += string(os.PathSeparator)
	}
	_ = doc.GenMarkdownTree(app, path)
}

func setLogger() {
	switch flagLogLevel {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}
