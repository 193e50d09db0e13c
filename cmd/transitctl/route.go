package main

import (
	"time"

	"github.com/spf13/cobra"

	"karlsruhe.dev/transit/model"
)

var (
	routeDeparture string
	routeRailOnly  bool
	routeLimit     int
)

var routeCmd = &cobra.Command{
	Use:   "route <origin> <destination>",
	Short: "Finds journeys between an origin and a destination",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeDeparture, "departure", "t", "", "Departure time as HH:MM or HH:MM:SS, defaults to now")
	routeCmd.Flags().BoolVarP(&routeRailOnly, "rail-only", "r", false, "Restrict to rail/subway/tram")
	routeCmd.Flags().IntVarP(&routeLimit, "limit", "l", 3, "Maximum number of journeys returned")
}

func runRoute(cmd *cobra.Command, args []string) error {
	origin, destination := args[0], args[1]

	r, err := setup()
	if err != nil {
		return err
	}

	departure, err := resolveDepartureFlag(routeDeparture)
	if err != nil {
		return err
	}

	mode := model.TransportModeAll
	if routeRailOnly {
		mode = model.TransportModeRail
	}

	journeys, err := r.FindRoutes(origin, destination, departure, mode, routeLimit)
	if err != nil {
		return err
	}

	displayResults(journeys)
	return nil
}

func resolveDepartureFlag(input string) (time.Duration, error) {
	if input == "" {
		now := time.Now()
		return time.Duration(now.Hour())*time.Hour +
			time.Duration(now.Minute())*time.Minute +
			time.Duration(now.Second())*time.Second, nil
	}
	return parseClockTime(input)
}
