// Program jvalid reports whether each of its input files is valid JSON text.
//
// Usage:
//
//	jvalid [flags] path...
//
// For each path, jvalid prints a verdict line to stdout. A path of "-" reads
// from standard input. Paths ending in ".gz" or ".zst" are decompressed before
// validation. The exit status is 0 if every input is valid, 1 if any input is
// invalid, and 2 if an input or the configuration could not be loaded.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creachadair/jvalid"
	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"
)

const appName = "jvalid"

var (
	configPath = flag.String("config", "", "Read settings from this TOML file")
	doVerbose  = flag.Bool("v", false, "Log diagnostics for each input")
	doRelaxed  = flag.Bool("relaxed", false, "Accept comments and trailing commas")
)

// Exit statuses.
const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %[1]s [flags] path...

Report whether each input is valid JSON text. A path of "-" reads from
standard input; paths ending in .gz or .zst are decompressed first.

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(exitError)
	}

	cfg := defaultConfig()
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			os.Exit(exitError)
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = *doVerbose
		case "relaxed":
			cfg.Relaxed = *doRelaxed
		}
	})

	log := initLogger(appName, cfg, os.Stderr)
	os.Exit(run(cfg, flag.Args(), os.Stdin, os.Stdout, log))
}

// run validates each of paths, writes a verdict line for each to w, and
// returns the exit status. An input that cannot be loaded is reported as not
// valid.
func run(cfg config, paths []string, stdin io.Reader, w io.Writer, log zerolog.Logger) int {
	status := exitValid
	for _, path := range paths {
		data, err := loadSource(path, stdin, cfg.MaxSize)
		if err != nil {
			var lerr *LoadError
			if errors.As(err, &lerr) {
				log.Error().Str("path", lerr.Path).Err(lerr.Err).Msg("load failed")
			}
			fmt.Fprintf(w, "'%s' is NOT a VALID json\n", path)
			status = exitError
			continue
		}

		ok := checkSource(cfg, path, data, log)
		if ok {
			fmt.Fprintf(w, "'%s' is a VALID json\n", path)
		} else {
			fmt.Fprintf(w, "'%s' is NOT a VALID json\n", path)
			if status == exitValid {
				status = exitInvalid
			}
		}
	}
	return status
}

// checkSource reports whether data is valid, logging the diagnostics that
// account for the verdict.
func checkSource(cfg config, path string, data []byte, log zerolog.Logger) bool {
	if cfg.Relaxed {
		std, err := hujson.Standardize(data)
		if err != nil {
			log.Info().Str("path", path).Bool("valid", false).Err(err).Msg("relaxed parse failed")
			return false
		}
		data = std
	}

	tokens, err := jvalid.Scan(data)
	if err != nil {
		log.Info().Str("path", path).Bool("valid", false).Err(err).Msg("scan failed")
		return false
	}

	vs := jvalid.Validate(tokens)
	log.Info().Str("path", path).Bool("valid", len(vs) == 0).Int("tokens", len(tokens)).
		Int("bytes", len(data)).Msg("checked")
	for _, v := range vs {
		ev := log.Info().Str("path", path).Stringer("rule", v.Rule).Str("detail", v.Message)
		if v.Index >= 0 && v.Index < len(tokens) {
			span := tokens[v.Index].Span
			ev = ev.Int("token", v.Index).Stringer("pos", jvalid.Position(data, span.Pos))
		}
		ev.Msg("violation")
	}
	return len(vs) == 0
}
