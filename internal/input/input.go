// Package input turns textual number lists into samples for the renderer.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Result holds parsed samples. Tokens that are not numbers are recorded in
// Skipped and appear in Samples as NaN, so the renderer drops them.
type Result struct {
	Samples []float64
	Skipped []string
}

// Parse reads whitespace- or comma-separated numbers from r.
func Parse(r io.Reader) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		res.addWord(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read samples: %w", err)
	}
	return res, nil
}

// ParseArgs parses command-line arguments. Each argument may itself hold
// several comma-separated numbers.
func ParseArgs(args []string) Result {
	var res Result
	for _, a := range args {
		for _, w := range strings.Fields(a) {
			res.addWord(w)
		}
	}
	return res
}

func (res *Result) addWord(w string) {
	for _, tok := range strings.Split(w, ",") {
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// ParseFloat reports overflow as ±Inf with ErrRange; keep those.
			if !errors.Is(err, strconv.ErrRange) {
				res.Skipped = append(res.Skipped, tok)
				v = math.NaN()
			}
		}
		res.Samples = append(res.Samples, v)
	}
}

// Tail returns the last n samples, or all of them when n <= 0.
func Tail(samples []float64, n int) []float64 {
	if n <= 0 || len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}
