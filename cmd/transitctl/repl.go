package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"karlsruhe.dev/transit/model"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Karlsruhe ÖPNV-Router ===")

	r, err := setup()
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Willkommen beim Karlsruhe ÖPNV-Router!")
	fmt.Println(strings.Repeat("=", 50))

	in := bufio.NewScanner(os.Stdin)

	for {
		mode, ok := promptTransportMode(in)
		if !ok {
			continue
		}

		origin, ok := promptLocation(in, "Start (Adresse oder Haltestelle)")
		if !ok {
			continue
		}
		destination, ok := promptLocation(in, "Ziel (Adresse oder Haltestelle)")
		if !ok {
			continue
		}

		departure, ok := promptDepartureTime(in)
		if !ok {
			continue
		}

		journeys, err := r.FindRoutes(origin, destination, departure, mode, 3)
		if err != nil {
			fmt.Printf("Fehler: %v\n", err)
		} else {
			displayResults(journeys)
		}

		if !promptContinue(in) {
			break
		}
	}

	return nil
}

func promptTransportMode(in *bufio.Scanner) (model.TransportMode, bool) {
	fmt.Println("\nModusauswahl:")
	fmt.Println("1 - Nur Bahn (S-Bahn, Straßenbahn)")
	fmt.Println("2 - Bus und Bahn")
	fmt.Println("0 - Beenden")
	fmt.Print("Geben Sie 1, 2 oder 0 ein: ")

	if !in.Scan() {
		return 0, false
	}
	choice := strings.TrimSpace(in.Text())

	switch choice {
	case "0":
		fmt.Println("Auf Wiedersehen!")
		os.Exit(0)
	case "1":
		return model.TransportModeRail, true
	case "2":
		return model.TransportModeAll, true
	}

	fmt.Println("Ungültige Eingabe. Bitte 1, 2 oder 0 eingeben.")
	return 0, false
}

func promptLocation(in *bufio.Scanner, prompt string) (string, bool) {
	fmt.Printf("%s: ", prompt)
	if !in.Scan() {
		return "", false
	}
	loc := strings.TrimSpace(in.Text())
	if loc == "" {
		fmt.Println("Bitte geben Sie einen Ort ein.")
		return "", false
	}
	return loc, true
}

func promptDepartureTime(in *bufio.Scanner) (time.Duration, bool) {
	fmt.Print("Bitte Startzeit angeben (HH:MM) oder (HH:MM:SS), Enter für jetzt: ")
	if !in.Scan() {
		return 0, false
	}
	input := strings.TrimSpace(in.Text())
	if input == "" {
		now := time.Now()
		return time.Duration(now.Hour())*time.Hour +
			time.Duration(now.Minute())*time.Minute +
			time.Duration(now.Second())*time.Second, true
	}

	d, err := parseClockTime(input)
	if err != nil {
		fmt.Printf("Ungültige Zeitangabe: %v\n", err)
		fmt.Println("Bitte verwenden Sie das Format HH:MM oder HH:MM:SS")
		return 0, false
	}
	return d, true
}

func parseClockTime(input string) (time.Duration, error) {
	parts := strings.Split(input, ":")
	var h, m, s int
	var err error

	switch len(parts) {
	case 2:
		h, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("ungültiges Zeitformat")
		}
		m, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("ungültiges Zeitformat")
		}
	case 3:
		h, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("ungültiges Zeitformat")
		}
		m, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("ungültiges Zeitformat")
		}
		s, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("ungültiges Zeitformat")
		}
	default:
		return 0, fmt.Errorf("ungültiges Zeitformat")
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("ungültige Zeit")
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

func promptContinue(in *bufio.Scanner) bool {
	fmt.Print("\nWeitere Suche? (j/n): ")
	if !in.Scan() {
		return false
	}
	choice := strings.ToLower(strings.TrimSpace(in.Text()))
	switch choice {
	case "j", "ja", "y", "yes", "":
		return true
	default:
		return false
	}
}

func displayResults(journeys []model.Journey) {
	if len(journeys) == 0 {
		fmt.Println("\nKeine Route gefunden.")
		fmt.Println("Versuchen Sie es mit anderen Eingaben oder einem späteren Zeitpunkt.")
		return
	}

	fmt.Printf("\nGefundene Routen (%d):\n", len(journeys))
	fmt.Println(strings.Repeat("=", 60))

	for i, j := range journeys {
		fmt.Printf("\n--- Route %d ---\n", i+1)
		displayJourney(j)
	}
}

func displayJourney(j model.Journey) {
	fmt.Printf("Gesamtdauer: %s\n", formatDuration(j.TotalDuration))
	fmt.Printf("Umstiege: %d\n", j.Transfers)

	if j.TotalWalkingDistanceM > 0 {
		fmt.Printf("Fußweg gesamt: %.0fm\n", j.TotalWalkingDistanceM)
	}

	fmt.Println("\nVerbindungen:")
	for _, seg := range j.Segments {
		if seg.Mode == model.SegmentWalking {
			displayWalkingSegment(seg)
		} else {
			displayTransitSegment(seg)
		}
	}
}

func displayWalkingSegment(seg model.Segment) {
	fmt.Printf("Fußweg (%.0fm)\n", seg.WalkingDistanceM)

	for _, direction := range seg.WalkingDirections {
		fmt.Printf("   -> %s\n", direction)
	}

	if seg.ToStopName != "" {
		fmt.Printf("   -> zur Haltestelle: %s\n", seg.ToStopName)
	} else if seg.FromStopName != "" {
		fmt.Printf("   -> von Haltestelle: %s\n", seg.FromStopName)
	}
}

func displayTransitSegment(seg model.Segment) {
	routeName := seg.RouteName
	if routeName == "" {
		routeName = "Unbekannte Linie"
	}
	direction := seg.RouteDirection
	if direction == "" {
		direction = "Unbekannte Richtung"
	}

	fmt.Printf("%s Richtung %s\n", routeName, direction)
	fmt.Printf("%s -> %s\n", seg.FromStopName, seg.ToStopName)
	fmt.Printf("Abfahrt: %s, Ankunft: %s\n", formatClock(seg.Departure), formatClock(seg.Arrival))
}

func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatDuration(d time.Duration) string {
	totalMinutes := int(d.Minutes())
	h := totalMinutes / 60
	m := totalMinutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}
