package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"gridcombat/internal/combat"
	"gridcombat/internal/config"
	"gridcombat/internal/logging"
	"gridcombat/internal/util"
)

const (
	modeA    = "a"
	modeB    = "b"
	modeBoth = "both"
)

type job struct {
	index int
	name  string
	load  func() (*combat.Map, error)
}

type report struct {
	Name   string            `json:"name"`
	Single *combat.SimResult `json:"single,omitempty"`
	Search *combat.SimResult `json:"search,omitempty"`
	Errors []string          `json:"errors,omitempty"`
}

type runner struct {
	mode   string
	powers combat.AttackPowers
	search combat.PowerSearch
	trace  bool
	logger *slog.Logger
}

func main() {
	var cfgPath, out, mode, logLevel, logFormat, random string
	var seed int64
	var workers, jobsN, elves, goblins int
	var walls float64
	var trace bool
	flag.StringVar(&cfgPath, "config", "assets/rules.yaml", "rules file (empty for built-in defaults)")
	flag.StringVar(&out, "out", "", "write JSON reports to this file")
	flag.StringVar(&mode, "mode", modeBoth, "a (fixed powers), b (power search) or both")
	flag.IntVar(&workers, "workers", 0, "concurrent power search trials (overrides search.workers)")
	flag.IntVar(&jobsN, "j", 4, "maps simulated in parallel")
	flag.BoolVar(&trace, "trace", false, "record the event log in the JSON reports")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&logFormat, "log-format", logging.FormatText, "text, json or pretty")
	flag.StringVar(&random, "random", "", "simulate a generated WxH arena instead of files")
	flag.Int64Var(&seed, "seed", 0, "seed for -random (0 picks one)")
	flag.IntVar(&elves, "elves", 4, "elves placed by -random")
	flag.IntVar(&goblins, "goblins", 4, "goblins placed by -random")
	flag.Float64Var(&walls, "walls", 0.15, "interior wall density for -random")
	flag.Parse()

	logger, err := logging.New(os.Stderr, logLevel, logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if mode != modeA && mode != modeB && mode != modeBoth {
		logger.Error("unknown mode", "mode", mode)
		os.Exit(2)
	}

	rules, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("load rules", "err", err)
		os.Exit(1)
	}
	if workers > 0 {
		rules.Search.Workers = workers
	}
	search, err := combat.NewPowerSearch(rules.Search)
	if err != nil {
		logger.Error("search faction", "err", err)
		os.Exit(1)
	}

	var jobs []job
	if random != "" {
		var w, h int
		if _, err := fmt.Sscanf(random, "%dx%d", &w, &h); err != nil {
			logger.Error("bad -random size, want WxH", "value", random)
			os.Exit(2)
		}
		seed = util.ResolveSeed(seed)
		logger.Info("generating arena", "width", w, "height", h, "seed", seed)
		m := combat.Generate(util.New(seed), combat.GenOptions{
			Width: w, Height: h, Elves: elves, Goblins: goblins,
			WallDensity: walls, HitPoints: rules.HitPoints,
		})
		fmt.Print(m)
		jobs = append(jobs, job{name: fmt.Sprintf("random-%dx%d-%d", w, h, seed), load: func() (*combat.Map, error) { return m, nil }})
	}
	for _, path := range flag.Args() {
		jobs = append(jobs, job{name: filepath.Base(path), load: func() (*combat.Map, error) {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return combat.ParseMap(string(b), combat.WithHitPoints(rules.HitPoints))
		}})
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: combatsim [flags] map.txt... (or -random WxH)")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &runner{
		mode:   mode,
		powers: combat.NewAttackPowers(rules),
		search: search,
		trace:  trace,
		logger: logger,
	}

	reports := make([]report, len(jobs))
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	queue := make(chan job, len(jobs))
	for w := 0; w < max(jobsN, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range queue {
				rep := r.run(ctx, jb)
				mu.Lock()
				reports[jb.index] = rep
				mu.Unlock()
			}
		}()
	}
	for i := range jobs {
		jobs[i].index = i
		queue <- jobs[i]
	}
	close(queue)
	wg.Wait()

	failed := false
	for _, rep := range reports {
		printReport(rep)
		failed = failed || len(rep.Errors) > 0
	}
	if out != "" {
		if err := os.WriteFile(out, combat.MarshalPretty(reports), 0644); err != nil {
			logger.Error("write reports", "file", out, "err", err)
			os.Exit(1)
		}
		logger.Info("reports written", "file", out, "maps", len(reports))
	}
	if failed {
		os.Exit(1)
	}
}

func (r *runner) run(ctx context.Context, jb job) report {
	rep := report{Name: jb.name}
	logger := r.logger.With("map", jb.name)
	m, err := jb.load()
	if err != nil {
		rep.Errors = append(rep.Errors, err.Error())
		logger.Error("load map", "err", err)
		return rep
	}

	opts := []combat.Option{combat.WithLogger(logger)}
	if r.trace {
		opts = append(opts, combat.WithRecord())
	}
	if r.mode == modeA || r.mode == modeBoth {
		res, err := combat.RunSingle(m, r.powers, opts...)
		if err != nil {
			rep.Errors = append(rep.Errors, "mode A: "+err.Error())
			logger.Error("fixed powers", "err", err)
		} else {
			rep.Single = &res
		}
	}
	if r.mode == modeB || r.mode == modeBoth {
		res, err := combat.SearchPower(ctx, m, r.powers, r.search, opts...)
		if err != nil {
			rep.Errors = append(rep.Errors, "mode B: "+err.Error())
			level := slog.LevelError
			if errors.Is(err, combat.ErrNoWinningPower) {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "power search", "err", err)
			return rep
		}
		rep.Search = &res
	}
	return rep
}

func printReport(rep report) {
	if rep.Single != nil {
		s := rep.Single
		fmt.Printf("%s: mode A %d (rounds=%d hp=%d winner=%s)\n", rep.Name, s.Outcome, s.Rounds, s.HitPoints, s.Winner)
	}
	if rep.Search != nil {
		s := rep.Search
		fmt.Printf("%s: mode B %d (power=%v rounds=%d hp=%d trials=%d)\n", rep.Name, s.Outcome, s.Powers[s.Winner], s.Rounds, s.HitPoints, s.Trials)
	}
	for _, e := range rep.Errors {
		fmt.Printf("%s: error: %s\n", rep.Name, e)
	}
}
