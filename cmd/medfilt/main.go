// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

// Command medfilt applies a 2-D sliding-window median filter to a CSV
// grid of numbers. Empty cells and the literal "nan" are treated as
// missing values; missing outputs are written as empty cells.
//
// Usage:
//
//	medfilt -hx 29 -hy 3 -i input.csv -o output.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wxtools/go-medfilt/medfilt"
)

var log *zap.SugaredLogger

func main() {
	var (
		inPath  = flag.String("i", "-", "input CSV path, - for stdin")
		outPath = flag.String("o", "-", "output CSV path, - for stdout")
		hx      = flag.Int("hx", 1, "window half-width along columns")
		hy      = flag.Int("hy", 1, "window half-width along rows")
		block   = flag.Int("block", 0, "block capacity override, 0 = auto")
		workers = flag.Int("workers", 0, "worker count, 0 = GOMAXPROCS")
		debug   = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	var zapLogger *zap.Logger
	var err error
	if *debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "medfilt: could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	log = zapLogger.Sugar()

	if err := run(*inPath, *outPath, *hx, *hy, *block, *workers); err != nil {
		log.Fatalw("filtering failed", "error", err)
	}
}

func run(inPath, outPath string, hx, hy, block, workers int) error {
	in, err := readGrid(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	log.Infow("grid loaded",
		"width", in.Width(),
		"height", in.Height(),
		"dispatch", medfilt.DispatchName(),
	)

	start := time.Now()
	out, err := medfilt.Filter2D(in, medfilt.Config{
		HaloX:     hx,
		HaloY:     hy,
		BlockSize: block,
		Workers:   workers,
	})
	if err != nil {
		return err
	}
	log.Infow("filter complete",
		"hx", hx,
		"hy", hy,
		"elapsed", time.Since(start),
	)

	if err := writeGrid(outPath, out); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

func readGrid(path string) (*medfilt.Grid[float64], error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty input")
	}

	height := len(records)
	width := len(records[0])
	data := make([]float64, 0, width*height)
	for y, rec := range records {
		if len(rec) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(rec), width)
		}
		for x, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", y, x, err)
			}
			data = append(data, v)
		}
	}
	return medfilt.GridFromSlice(data, width, height), nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func writeGrid(path string, g *medfilt.Grid[float64]) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	rec := make([]string, g.Width())
	for y := 0; y < g.Height(); y++ {
		row := g.Row(y)
		for x, v := range row {
			if math.IsNaN(v) {
				rec[x] = ""
			} else {
				rec[x] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
