package ingest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/henderiw/intervaltree/pkg/tree"
	"github.com/pkg/errors"
)

// Mode selects how the interval tree is loaded.
type Mode string

const (
	// ModeBuild sorts all ranges and builds a balanced tree in one go.
	ModeBuild Mode = "build"
	// ModeInsert inserts the ranges one by one.
	ModeInsert Mode = "insert"
)

// Input is a parsed record file: a block of "<start>-<end>" ranges, a blank
// line, then one query point per line.
type Input struct {
	Intervals []tree.Interval[int64]
	Queries   []int64
}

// Report summarizes a run.
type Report struct {
	Intervals int
	Queries   int
	// Contained is the number of query points inside at least one range.
	Contained int
	// Covered is the number of distinct integers covered by the ranges.
	Covered uint64
	Merged  []tree.Interval[int64]
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer f.Close()

	in, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file: %s", path)
	}
	return in, nil
}

// Read parses the record format. The range block ends at the first blank
// line; a file without one holds ranges only. Blank lines among the queries
// are skipped. Any malformed record fails the whole read.
func Read(r io.Reader) (*Input, error) {
	in := &Input{}
	scanner := bufio.NewScanner(r)
	var lineNumber int
	queries := false

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			queries = true
			continue
		}
		if !queries {
			iv, err := tree.ParseInterval[int64](line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			in.Intervals = append(in.Intervals, iv)
			continue
		}
		x, err := tree.ParsePoint[int64](line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid query %q", lineNumber, line)
		}
		in.Queries = append(in.Queries, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read line %d", lineNumber+1)
	}
	return in, nil
}

// Load returns the tree for in.Intervals, built according to mode.
func Load(in *Input, mode Mode) (*tree.Tree[int64], error) {
	switch mode {
	case ModeBuild, "":
		return tree.Build(in.Intervals), nil
	case ModeInsert:
		t := tree.New[int64]()
		for _, iv := range in.Intervals {
			t.InsertInterval(iv)
		}
		return t, nil
	default:
		return nil, errors.Errorf("unknown load mode %q", mode)
	}
}

// Run loads the ranges of in, checks every query against them and computes
// the covered total.
func Run(in *Input, mode Mode, log logr.Logger) (*Report, *tree.Tree[int64], error) {
	t, err := Load(in, mode)
	if err != nil {
		return nil, nil, err
	}
	log.V(1).Info("loaded interval tree", "mode", mode, "intervals", t.Len(), "height", t.Height())

	report := &Report{
		Intervals: len(in.Intervals),
		Queries:   len(in.Queries),
	}
	for _, x := range in.Queries {
		if t.ContainsIncludingBorders(x) {
			report.Contained++
		} else {
			log.V(2).Info("query outside all ranges", "point", x)
		}
	}
	report.Merged = t.Merge()
	report.Covered = tree.Covered(report.Merged)

	log.V(1).Info("run complete", "queries", report.Queries, "contained", report.Contained,
		"merged", len(report.Merged), "covered", report.Covered)
	return report, t, nil
}
