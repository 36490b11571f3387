// Command satcore is a thin CLI front end over the core solving packages
// (spec.md §6): it parses a DIMACS CNF instance, dispatches to whichever
// algorithm and heuristics were requested, and prints the ternary result.
// It is out of the core's scope per spec.md §1 and is kept deliberately
// thin: all solving logic lives in dpll, cdcl, preprocess, and the
// internal oracle/bruteforce packages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/adrianhallmark/satcore/cdcl"
	"github.com/adrianhallmark/satcore/dpll"
	"github.com/adrianhallmark/satcore/heuristics"
	"github.com/adrianhallmark/satcore/internal/bruteforce"
	"github.com/adrianhallmark/satcore/internal/oracle"
	"github.com/adrianhallmark/satcore/internal/parsers"
	"github.com/adrianhallmark/satcore/preprocess"
	"github.com/adrianhallmark/satcore/proof"
	"github.com/adrianhallmark/satcore/sat"
)

var (
	flagInput        = flag.String("input", "", "DIMACS CNF instance file; stdin if absent")
	flagInputShort   = flag.String("i", "", "shorthand for --input")
	flagAlgorithm    = flag.String("algorithm", "cdcl", "bruteforce|cadical|dpll|cdcl")
	flagDPLLBranch   = flag.String("dpll-branching", "DLCS", "naive|DLIS|DLCS|MOM|Jeroslaw-Wang")
	flagCDCLBranch   = flag.String("cdcl-branching", "VSIDS", "VSIDS (only option)")
	flagCDCLRestart  = flag.String("cdcl-restart", "luby", "fixed|geom|luby|never")
	flagCDCLDeletion = flag.String("cdcl-deletion", "berk-min", "berk-min|never")
	flagCDCLLearning = flag.String("cdcl-learning", "relsat", "relsat (only option)")
	flagCDCLPreproc  = flag.String("cdcl-preproc", "", "comma-separated list from {niver,tautologies}, in order")
	flagDRUP         = flag.String("drup", "", "write a DRUP proof to FILE (CDCL only)")
	flagReturnCode   = flag.Bool("return-code", false, "exit 1=SAT, 0=UNSAT/error instead of 0=handled, 2=error")
	flagReturnCodeR  = flag.Bool("r", false, "shorthand for --return-code")
	flagCPUProfile   = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile   = flag.Bool("memprof", false, "save pprof memory profile to memprof")
)

type config struct {
	inputFile    string
	algorithm    string
	dpllBranch   string
	cdclRestart  string
	cdclDeletion string
	preproc      []preprocess.Step
	drupFile     string
	returnCode   bool
	cpuProfile   bool
	memProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	input := *flagInput
	if input == "" {
		input = *flagInputShort
	}

	switch *flagAlgorithm {
	case "bruteforce", "cadical", "dpll", "cdcl":
	default:
		return nil, fmt.Errorf("ConfigError: unknown --algorithm %q", *flagAlgorithm)
	}

	if *flagDRUP != "" && *flagAlgorithm != "cdcl" {
		return nil, fmt.Errorf("ConfigError: --drup requires --algorithm=cdcl")
	}

	var steps []preprocess.Step
	if *flagCDCLPreproc != "" {
		for _, name := range strings.Split(*flagCDCLPreproc, ",") {
			steps = append(steps, preprocess.Step(strings.TrimSpace(name)))
		}
	}
	if _, err := preprocess.NewPipeline(steps); err != nil {
		return nil, fmt.Errorf("ConfigError: %w", err)
	}

	return &config{
		inputFile:    input,
		algorithm:    *flagAlgorithm,
		dpllBranch:   *flagDPLLBranch,
		cdclRestart:  *flagCDCLRestart,
		cdclDeletion: *flagCDCLDeletion,
		preproc:      steps,
		drupFile:     *flagDRUP,
		returnCode:   *flagReturnCode || *flagReturnCodeR,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
	}, nil
}

func loadFormula(cfg *config) (*sat.Formula, error) {
	if cfg.inputFile == "" {
		f, err := parsers.ReadFormula(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("ParseError: %w", err)
		}
		return f, nil
	}
	gzipped := strings.HasSuffix(cfg.inputFile, ".gz")
	f, err := parsers.LoadFormulaFile(cfg.inputFile, gzipped)
	if err != nil {
		return nil, fmt.Errorf("ParseError: %w", err)
	}
	return f, nil
}

func run(cfg *config) (sat.Result, error) {
	f, err := loadFormula(cfg)
	if err != nil {
		return sat.Result{}, err
	}

	pipeline, err := preprocess.NewPipeline(cfg.preproc)
	if err != nil {
		return sat.Result{}, fmt.Errorf("ConfigError: %w", err)
	}
	reduced := pipeline.Run(f)

	fmt.Printf("c variables: %d\n", reduced.NumVars())
	fmt.Printf("c clauses:   %d\n", reduced.NumClauses())

	start := time.Now()
	var res sat.Result

	switch cfg.algorithm {
	case "bruteforce":
		br := bruteforce.Solve(reduced)
		if br.Sat {
			res = sat.Result{Status: sat.StatusSat, Model: br.Model}
		} else {
			res = sat.Result{Status: sat.StatusUnsat}
		}
	case "cadical":
		res = oracle.Solve(reduced)
	case "dpll":
		h, err := heuristics.ByName(cfg.dpllBranch)
		if err != nil {
			return sat.Result{}, fmt.Errorf("ConfigError: %w", err)
		}
		s, err := dpll.New(reduced, dpll.Options{Heuristic: h})
		if err != nil {
			return sat.Result{}, err
		}
		res = s.Solve()
	case "cdcl":
		opts := cdcl.DefaultOptions
		opts.Restart = cdcl.RestartPolicy(cfg.cdclRestart)
		opts.Deletion = cdcl.DeletionPolicy(cfg.cdclDeletion)

		var emitter proof.Emitter = proof.Discard{}
		var drupFile *os.File
		if cfg.drupFile != "" {
			drupFile, err = os.Create(cfg.drupFile)
			if err != nil {
				return sat.Result{}, fmt.Errorf("ConfigError: %w", err)
			}
			defer drupFile.Close()
			w := proof.NewWriter(drupFile)
			defer w.Close()
			emitter = w
		}
		opts.Proof = emitter

		s, err := cdcl.New(reduced, opts)
		if err != nil {
			return sat.Result{}, err
		}
		res = s.Solve()
	}

	elapsed := time.Since(start)
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d\n", res.Conflicts)
	fmt.Printf("c decisions:  %d\n", res.Decisions)
	fmt.Printf("c restarts:   %d\n", res.Restarts)

	if res.Status == sat.StatusSat {
		res.Model = pipeline.ExtendModel(res.Model)
	}

	return res, nil
}

func printResult(res sat.Result) {
	switch res.Status {
	case sat.StatusSat:
		fmt.Println("SAT")
		var sb strings.Builder
		for v, val := range res.Model {
			if !val {
				sb.WriteString(fmt.Sprintf("-%d ", v+1))
			} else {
				sb.WriteString(fmt.Sprintf("%d ", v+1))
			}
		}
		sb.WriteString("0")
		fmt.Println(sb.String())
	case sat.StatusUnsat:
		fmt.Println("UNSAT")
	default:
		fmt.Println("UNKNOWN")
	}
}

func exitCode(cfg *config, res sat.Result, runErr error) int {
	if cfg.returnCode {
		if runErr != nil || res.Status != sat.StatusSat {
			return 0
		}
		return 1
	}
	if runErr != nil {
		return 2
	}
	return 0
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(&config{returnCode: *flagReturnCode || *flagReturnCodeR}, sat.Result{}, err))
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	res, runErr := run(cfg)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
	} else {
		printResult(res)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	os.Exit(exitCode(cfg, res, runErr))
}
