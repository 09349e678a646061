package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/magichome-go/magichome/common"
)

var (
	cmdList = &cobra.Command{
		Use:     `list`,
		Short:   `list known controllers`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runList,
	}

	cmdOn = &cobra.Command{
		Use:     `on`,
		Short:   `turn controllers on`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runOn,
	}

	cmdOff = &cobra.Command{
		Use:     `off`,
		Short:   `turn controllers off`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runOff,
	}

	cmdToggle = &cobra.Command{
		Use:     `toggle`,
		Short:   `toggle controller power`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runToggle,
	}

	cmdColor = &cobra.Command{
		Use:     `color <red> <green> <blue> [white]`,
		Short:   `set controller color channels (0-255 each)`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runColor,
	}

	cmdState = &cobra.Command{
		Use:     `state`,
		Short:   `query controller state`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     runState,
	}
)

func runList(c *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tID\tMODEL")
	for _, ctrl := range resolveControllers() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ctrl.Addr(), ctrl.ID(), ctrl.Model())
	}
	_ = w.Flush()
}

func runOn(c *cobra.Command, args []string) {
	forEachController(`turning on`, func(ctrl common.Controller) error {
		return ctrl.TurnOn()
	})
}

func runOff(c *cobra.Command, args []string) {
	forEachController(`turning off`, func(ctrl common.Controller) error {
		return ctrl.TurnOff()
	})
}

func runToggle(c *cobra.Command, args []string) {
	forEachController(`toggling`, func(ctrl common.Controller) error {
		return ctrl.PowerToggle()
	})
}

func runColor(c *cobra.Command, args []string) {
	if len(args) < 3 || len(args) > 4 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`color requires red, green and blue values, and optionally white`)
	}

	channels := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			logger.WithFields(logrus.Fields{
				`value`: arg,
				`error`: err,
			}).Fatalln(`Channel values must be integers`)
		}
		channels[i] = v
	}

	color := common.NewColorState(channels[0], channels[1], channels[2], channels[3])
	forEachController(`setting color on`, func(ctrl common.Controller) error {
		return ctrl.SetColor(color)
	})
}

func runState(c *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tPOWER\tR\tG\tB\tW")
	for _, ctrl := range resolveControllers() {
		state, err := ctrl.State()
		if err != nil {
			logger.WithFields(logrus.Fields{
				`addr`:  ctrl.Addr(),
				`error`: err,
			}).Errorln(`Failed querying state`)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			ctrl.Addr(), state.Power, state.Color.R, state.Color.G, state.Color.B, state.Color.W)
	}
	_ = w.Flush()
}

// forEachController applies op to every resolved controller, logging
// failures per controller and carrying on with the rest.
func forEachController(action string, op func(common.Controller) error) {
	for _, ctrl := range resolveControllers() {
		if err := op(ctrl); err != nil {
			logger.WithFields(logrus.Fields{
				`addr`:  ctrl.Addr(),
				`error`: err,
			}).Errorf("Failed %s controller", action)
		}
	}
}
