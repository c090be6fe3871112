// szstool encodes or decodes a Yaz0/SZS container (C1), selecting
// among the three encoders by name. Grounded on g3n-engine's own
// command-line tools (gls/glapi2go/main.go, util/app/app.go): stdlib
// flag for options, a usage func, and plain os.Exit(1) on error
// rather than a third-party CLI framework, since none appears
// anywhere in the example pack.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gc3dtools/librii/config"
	"github.com/gc3dtools/librii/szs"
)

var (
	oDecode  = flag.Bool("d", false, "decode instead of encode")
	oAlgo    = flag.String("algo", "", "encoder: worstcase, bmh, or ctgp (default from config, falls back to bmh)")
	oOut     = flag.String("o", "", "output file (default: stdout)")
	oConfig  = flag.String("config", "", "YAML tunables file (optional)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: szstool [-d] [-algo worstcase|bmh|ctgp] [-o out] [-config file.yaml] <input>\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if len(flag.Args()) != 1 {
		usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *oConfig != "" {
		data, err := os.ReadFile(*oConfig)
		if err != nil {
			abort(err)
		}
		cfg, err = config.Load(data)
		if err != nil {
			abort(err)
		}
	}

	in, err := os.ReadFile(flag.Args()[0])
	if err != nil {
		abort(err)
	}

	var out []byte
	if *oDecode {
		out, err = szs.Decode(in)
		if err != nil {
			abort(err)
		}
	} else {
		algoName := *oAlgo
		if algoName == "" {
			algoName = cfg.Szs.DefaultEncoder
		}
		algo, err := parseAlgorithm(algoName)
		if err != nil {
			abort(err)
		}
		out, err = szs.Encode(in, algo)
		if err != nil {
			abort(err)
		}
	}

	if *oOut == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*oOut, out, 0644); err != nil {
		abort(err)
	}
}

func parseAlgorithm(name string) (szs.Algorithm, error) {
	switch name {
	case "worstcase":
		return szs.WorstCase, nil
	case "bmh", "":
		return szs.BoyerMooreHorspool, nil
	case "ctgp":
		return szs.CTGP, nil
	default:
		return 0, fmt.Errorf("szstool: unknown algorithm %q", name)
	}
}

func abort(err error) {
	fmt.Fprintln(os.Stderr, "szstool:", err)
	os.Exit(1)
}
