package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sourcegraph/pummel"
	"github.com/sourcegraph/pummel/types"
)

var configFile string
var storeResults bool
var printLogs bool
var noColor bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pummel URL [CONCURRENCY] [DURATION_SECONDS] [REPEAT] [DELAY_MS] [AUTHORIZATION] [PERCENTILES]",
	Short: "Pummel a URL with concurrent GET requests and report latency percentiles",
	Long: `Pummel issues repeated GET requests against one URL from
concurrent workers for a bounded duration, then reports
latency statistics per response status: count, standard
deviation, mean and a configurable percentile list.

Every argument after the URL is optional and positional:

  CONCURRENCY     workers issuing requests in parallel (default 2)
  DURATION        seconds per measured run (default 60)
  REPEAT          how many measured runs (default 1)
  DELAY           milliseconds each worker waits between
                  requests (default 0)
  AUTHORIZATION   sent as the Authorization header (default none)
  PERCENTILES     comma-separated, e.g. 50,95,99
                  (default 5,25,50,75,95,99)

A short warm-up run precedes the measurements and is
discarded. Interrupting the program finishes the run in
progress and reports what was collected.

Pummel will use a pummel.json file in the current working
directory when one exists, to wire report storage and
notifiers. You can specify a different file location using
the --config/-c flag. To archive the aggregate reports to
the configured storage, use --store.`,

	Args: cobra.RangeArgs(1, 7),
	Run: func(cmd *cobra.Command, args []string) {
		if printLogs {
			log.SetOutput(os.Stdout)
		}
		if noColor {
			types.DisableColor()
		}

		p := loadPummel()

		settings, err := parseSettings(args, p.Settings)
		if err != nil {
			log.Fatal(err)
		}
		p.Settings = settings

		if storeResults && p.Storage == nil {
			log.Fatal("no storage configured")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		reports, err := p.Run(ctx)
		if err != nil {
			log.Fatal(err)
		}

		if storeResults {
			if err := p.Storage.Store(reports); err != nil {
				log.Fatal(err)
			}
		}

		if err := p.Notify(reports); err != nil {
			log.Print(err)
		}
	},
}

// parseSettings overlays the positional arguments on base. Argument
// order and defaults follow the usage line; an unparsable number is
// a fatal configuration error.
func parseSettings(args []string, base types.Settings) (types.Settings, error) {
	s := base
	s.URL = args[0]

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return s, fmt.Errorf("bad concurrency %q: %v", args[1], err)
		}
		s.Concurrency = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return s, fmt.Errorf("bad duration %q: %v", args[2], err)
		}
		s.Duration = time.Duration(n) * time.Second
	}
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return s, fmt.Errorf("bad repeat count %q: %v", args[3], err)
		}
		s.Repeat = n
	}
	if len(args) > 4 {
		n, err := strconv.Atoi(args[4])
		if err != nil {
			return s, fmt.Errorf("bad delay %q: %v", args[4], err)
		}
		s.Delay = time.Duration(n) * time.Millisecond
	}
	if len(args) > 5 {
		s.Authorization = args[5]
	}
	if len(args) > 6 {
		percentiles, err := parsePercentiles(args[6])
		if err != nil {
			return s, err
		}
		s.Percentiles = percentiles
	}

	return s, nil
}

func parsePercentiles(arg string) ([]int, error) {
	var percentiles []int
	for _, field := range strings.Split(arg, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad percentile %q: %v", field, err)
		}
		percentiles = append(percentiles, p)
	}
	return percentiles, nil
}

// loadPummel reads the optional JSON config file. A missing file is
// not an error; the config only wires storage and notifiers, which a
// plain run does not need.
func loadPummel() pummel.Pummel {
	f, err := os.Open(configFile)
	if os.IsNotExist(err) {
		return pummel.Pummel{}
	}
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	p, err := pummel.LoadConfig(f)
	if err != nil {
		log.Fatal(err)
	}
	return p
}

// Execute runs the root command. This is called by main.main() and
// only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "pummel.json", "JSON config file")
	RootCmd.Flags().BoolVar(&storeResults, "store", false, "Archive aggregate reports to the configured storage")
	RootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored report rows")
	RootCmd.Flags().BoolVar(&printLogs, "v", false, "Enable logging to standard output")
}
