// Command transitctl is the CLI front-end for the routing engine (C9
// of SPEC_FULL.md): a root command that launches an interactive
// mode/origin/destination/departure-time prompt loop, plus a `route`
// subcommand for a single non-interactive query.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"karlsruhe.dev/transit/calendar"
	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/graph"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/resolver"
	"karlsruhe.dev/transit/router"
	"karlsruhe.dev/transit/station"
)

var (
	gtfsDir       string
	addressesPath string
	maxWalkM      float64
	walkSpeedMS   float64
	transferTime  time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "transitctl",
	Short:        "Karlsruhe transit journey planner",
	Long:         "Plans walking+transit journeys over a static Karlsruhe GTFS feed.",
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gtfsDir, "gtfs-dir", "", "directory containing the GTFS static feed (required)")
	rootCmd.PersistentFlags().StringVar(&addressesPath, "addresses", "", "path to the address lookup CSV (full_address,lat,lon); optional")
	rootCmd.PersistentFlags().Float64Var(&maxWalkM, "max-walk-m", 0, "override the default max walking distance in meters")
	rootCmd.PersistentFlags().Float64Var(&walkSpeedMS, "walk-speed", 0, "override the default walking speed in m/s")
	rootCmd.PersistentFlags().DurationVar(&transferTime, "transfer-time", 0, "override the default minimum transfer dwell")

	rootCmd.AddCommand(routeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildConfig() *config.Config {
	cfg := config.NewDefault()
	if maxWalkM > 0 {
		cfg.MaxWalkingDistanceM = maxWalkM
	}
	if walkSpeedMS > 0 {
		cfg.WalkingSpeedMS = walkSpeedMS
	}
	if transferTime > 0 {
		cfg.TransferTime = transferTime
	}
	return cfg
}

// setup loads the GTFS feed, builds today's connection graph, and
// wires a Router, mirroring the startup sequence of the REPL this CLI
// replaces.
func setup() (*router.Router, error) {
	if gtfsDir == "" {
		return nil, errors.New("--gtfs-dir is required")
	}

	fmt.Println("Initialisiere System...")

	tables, err := gtfs.LoadTables(gtfsDir)
	if err != nil {
		return nil, errors.Wrap(err, "loading GTFS feed")
	}

	cfg := buildConfig()

	active, usedFallback := calendar.ActiveServices(tables, time.Now(), cfg)
	if usedFallback {
		fmt.Println("WARNUNG: keine aktiven Services für heute gefunden, verwende alle verfügbaren Services")
	}

	idx, err := graph.Build(tables, active, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "building connection graph")
	}

	var addresses *resolver.Addresses
	if addressesPath != "" {
		addresses, err = resolver.LoadAddresses(addressesPath)
		if err != nil {
			return nil, errors.Wrap(err, "loading address table")
		}
	}

	hierarchy := station.NewHierarchy(tables.Stops)
	res := resolver.New(tables, hierarchy, addresses, cfg)

	fmt.Println("System erfolgreich initialisiert")

	return router.New(idx, res, tables, cfg), nil
}
