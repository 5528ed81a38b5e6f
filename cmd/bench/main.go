package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"qsched/internal/baseline"
	"qsched/internal/bench"
	"qsched/internal/qjob"
	"qsched/internal/sched"
)

var (
	out          string
	pairs        string
	runs         int
	baseSeed     int64
	instanceSeed int64
	perRunTO     time.Duration
	strict       bool
	fleetFile    string
	logLevel     string
)

func init() {
	pflag.StringVar(&out, "out", "artifacts/results.csv", "path of the output CSV file")
	pflag.StringVar(&pairs, "pairs", "20x5,50x10,100x20", "comma-separated cases as jobsXmachines, or plain job counts with --fleet")
	pflag.IntVar(&runs, "runs", 30, "number of runs per case")
	pflag.Int64Var(&baseSeed, "seed", 1000, "base seed for scheduler runs")
	pflag.Int64Var(&instanceSeed, "instance_seed", 777, "base seed for instance generation (fixed per case)")
	pflag.DurationVar(&perRunTO, "per_run_timeout", 0, "timeout for a single run; 0 = unlimited")
	pflag.BoolVar(&strict, "strict", false, "error on missing cost-matrix entries instead of defaulting to zero")
	pflag.StringVar(&fleetFile, "fleet", "", "YAML file with an explicit ordered machine fleet")
	pflag.StringVar(&logLevel, "log_level", "info", "log level: trace, debug, info, warn, error")
}

// fleetSpec is the YAML shape of a --fleet file. The fleet is a list,
// not a map: machine iteration order is part of the packing contract.
type fleetSpec struct {
	Machines []struct {
		Name   string `yaml:"name"`
		Qubits int    `yaml:"qubits"`
	} `yaml:"machines"`
}

func loadFleet(path string) ([]qjob.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec fleetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing fleet file %q: %w", path, err)
	}
	if len(spec.Machines) == 0 {
		return nil, fmt.Errorf("fleet file %q lists no machines", path)
	}
	fleet := make([]qjob.Machine, 0, len(spec.Machines))
	for _, m := range spec.Machines {
		fleet = append(fleet, qjob.Machine{Name: m.Name, Qubits: m.Qubits})
	}
	return fleet, nil
}

func main() {
	pflag.Parse()

	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level:", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()

	ctx := context.Background()

	var fleet []qjob.Machine
	if fleetFile != "" {
		fleet, err = loadFleet(fleetFile)
		if err != nil {
			log.Error().Err(err).Msg("loading fleet")
			os.Exit(2)
		}
	}

	cases, err := parseCases(pairs, fleet, instanceSeed)
	if err != nil {
		log.Error().Err(err).Msg("parsing cases")
		os.Exit(2)
	}

	cfg := baseline.Config{Strict: strict}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid baseline config")
		os.Exit(2)
	}

	algos := []bench.Algorithm{
		{
			Name: "baseline",
			Factory: func(int64) sched.Scheduler {
				solver, _ := baseline.New(cfg)
				return solver
			},
		},
	}

	runner := bench.Runner{
		Runs:          runs,
		BaseSeed:      baseSeed,
		PerRunTimeout: perRunTO,
		Log:           log,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range algos {
			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				log.Error().Err(err).Str("algo", a.Name).Int("jobs", c.Jobs).Msg("case failed")
				os.Exit(1)
			}
			records = append(records, rec)
		}
	}

	if err := bench.WriteCSV(out, records); err != nil {
		log.Error().Err(err).Str("path", out).Msg("writing CSV")
		os.Exit(1)
	}
	log.Info().Str("path", out).Int("cases", len(records)).Msg("saved")
}

// parseCases turns the --pairs value into benchmark cases. Without a
// fleet the entries are "jobsXmachines"; with one they are plain job
// counts and every case shares the fleet.
func parseCases(s string, fleet []qjob.Machine, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no cases in %q", s)
	}
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		var jobs, machines int
		var err error

		if len(fleet) > 0 {
			jobs, err = atoiStrict(p)
			if err != nil {
				return nil, fmt.Errorf("case %q: parsing job count: %w", p, err)
			}
			machines = len(fleet)
		} else {
			jm := strings.Split(p, "x")
			if len(jm) != 2 {
				return nil, fmt.Errorf("case %q is not of the form 50x10", p)
			}
			jobs, err = atoiStrict(jm[0])
			if err != nil {
				return nil, fmt.Errorf("case %q: parsing job count: %w", p, err)
			}
			machines, err = atoiStrict(jm[1])
			if err != nil {
				return nil, fmt.Errorf("case %q: parsing machine count: %w", p, err)
			}
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("case %q: job and machine counts must be > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
			Fleet:        fleet,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
