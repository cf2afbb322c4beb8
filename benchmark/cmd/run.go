package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	jsoniter "github.com/json-iterator/go"
)

type BenchmarkResult struct {
	Name       string  `json:"name"`
	Framework  string  `json:"framework"`
	Category   string  `json:"category"`
	Scenario   string  `json:"scenario"`
	Iterations int64   `json:"iterations"`
	NsPerOp    float64 `json:"nsPerOp"`
	BytesPerOp int64   `json:"bytesPerOp"`
	AllocsOp   int64   `json:"allocsPerOp"`
}

type CategoryResults struct {
	Category string
	Results  []BenchmarkResult
}

var frameworkColors = map[string]text.Colors{
	"Spool":         {text.FgGreen},
	"SpoolParallel": {text.FgCyan},
	"Do":            {text.FgYellow},
	"Dig":           {text.FgMagenta},
	"Fx":            {text.FgBlue},
}

var categoryOrder = []string{
	"Provide_Simple", "Provide_Chain",
	"Invoke_Singleton", "Invoke_Chain", "Invoke_Transient",
	"Named_10", "Named_Modules10",
	"Lifecycle_10", "Lifecycle_50",
	"LifecycleWithWork_10", "LifecycleWithWork_50",
}

var categoryTitles = map[string]string{
	"Provide_Simple":       "Registration (simple)",
	"Provide_Chain":        "Registration (dependency chain)",
	"Invoke_Singleton":     "Resolution (cached value)",
	"Invoke_Chain":         "Resolution (cached dependency chain)",
	"Invoke_Transient":     "Resolution (transient factory)",
	"Named_10":             "Named components (10)",
	"Named_Modules10":      "Components in submodules (10)",
	"Lifecycle_10":         "Build and dispose (10 components)",
	"Lifecycle_50":         "Build and dispose (50 components)",
	"LifecycleWithWork_10": "Build and dispose with work (10 components, 1ms each)",
	"LifecycleWithWork_50": "Build and dispose with work (50 components, 1ms each)",
}

func main() {
	fmt.Println(text.Colors{text.Bold, text.FgCyan}.Sprint("\nspool DI benchmark suite\n"))
	fmt.Println(text.Faint.Sprint("Running benchmarks...\n"))

	exportToJSON := slices.Contains(os.Args[1:], "--json")
	benchDir := ".."
	for _, arg := range os.Args[1:] {
		if arg != "--json" {
			benchDir = arg
		}
	}

	cmd := exec.Command("go", "test", "-bench=.", "-benchmem", "-count=3", "-benchtime=100ms")
	cmd.Dir = benchDir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Benchmark failed: %s\n", string(exitErr.Stderr))
		}
		os.Exit(1)
	}

	results := parseResults(output)
	grouped := groupByCategory(results)

	for _, cat := range grouped {
		printCategory(cat)
	}
	printSummary(grouped)

	if exportToJSON {
		if err := exportJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
	}
}

var (
	benchPattern = regexp.MustCompile(`^Benchmark(\w+)-\d+\s+(\d+)\s+([\d.]+) ns/op\s+(\d+) B/op\s+(\d+) allocs/op`)
	namePattern  = regexp.MustCompile(`^([^_]+)_([^_]+)_(\w+)$`)
)

// parseResults averages repeated runs of the same benchmark. Names follow
// Category_Scenario_Framework.
func parseResults(output []byte) []BenchmarkResult {
	seen := make(map[string][]BenchmarkResult)
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		matches := benchPattern.FindStringSubmatch(scanner.Text())
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.ParseInt(matches[2], 10, 64)
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)
		bytesPerOp, _ := strconv.ParseInt(matches[4], 10, 64)
		allocsOp, _ := strconv.ParseInt(matches[5], 10, 64)

		r := BenchmarkResult{
			Name:       name,
			Iterations: iterations,
			NsPerOp:    nsPerOp,
			BytesPerOp: bytesPerOp,
			AllocsOp:   allocsOp,
		}
		if parts := namePattern.FindStringSubmatch(name); parts != nil {
			r.Category, r.Scenario, r.Framework = parts[1], parts[2], parts[3]
		}

		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
		seen[name] = append(seen[name], r)
	}

	results := make([]BenchmarkResult, 0, len(names))
	for _, name := range names {
		runs := seen[name]

		var totalNs float64
		var totalBytes, totalAllocs int64
		for _, r := range runs {
			totalNs += r.NsPerOp
			totalBytes += r.BytesPerOp
			totalAllocs += r.AllocsOp
		}
		count := float64(len(runs))

		avg := runs[0]
		avg.NsPerOp = totalNs / count
		avg.BytesPerOp = int64(float64(totalBytes) / count)
		avg.AllocsOp = int64(float64(totalAllocs) / count)
		results = append(results, avg)
	}

	return results
}

func groupByCategory(results []BenchmarkResult) []CategoryResults {
	groups := make(map[string][]BenchmarkResult)
	for _, r := range results {
		key := r.Category + "_" + r.Scenario
		groups[key] = append(groups[key], r)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return rank(keys[i]) < rank(keys[j]) || rank(keys[i]) == rank(keys[j]) && keys[i] < keys[j]
	})

	ordered := make([]CategoryResults, 0, len(keys))
	for _, key := range keys {
		results := groups[key]
		sort.Slice(results, func(i, j int) bool {
			return results[i].NsPerOp < results[j].NsPerOp
		})
		ordered = append(ordered, CategoryResults{Category: key, Results: results})
	}
	return ordered
}

func rank(category string) int {
	if i := slices.Index(categoryOrder, category); i >= 0 {
		return i
	}
	return len(categoryOrder)
}

func printCategory(cat CategoryResults) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(categoryTitle(cat.Category))
	t.AppendHeader(table.Row{"Framework", "Time/op", "Relative", "B/op", "Allocs/op"})

	fastest := 0.0
	if len(cat.Results) > 0 {
		fastest = cat.Results[0].NsPerOp
	}

	for i, r := range cat.Results {
		relative := "fastest"
		if i > 0 && fastest > 0 {
			relative = fmt.Sprintf("%.1fx slower", r.NsPerOp/fastest)
		}
		t.AppendRow(table.Row{
			colorize(r.Framework),
			formatNs(r.NsPerOp),
			relative,
			r.BytesPerOp,
			r.AllocsOp,
		})
	}

	t.Render()
	fmt.Println()
}

func categoryTitle(cat string) string {
	if title, ok := categoryTitles[cat]; ok {
		return title
	}
	return strings.ReplaceAll(cat, "_", " ")
}

func colorize(framework string) string {
	if colors, ok := frameworkColors[framework]; ok {
		return colors.Sprint(framework)
	}
	return framework
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1_000_000:
		return fmt.Sprintf("%.2f ms", ns/1_000_000)
	case ns >= 1_000:
		return fmt.Sprintf("%.2f µs", ns/1_000)
	default:
		return fmt.Sprintf("%.0f ns", ns)
	}
}

func printSummary(groups []CategoryResults) {
	wins := make(map[string]int)
	for _, cat := range groups {
		if len(cat.Results) > 0 {
			wins[cat.Results[0].Framework]++
		}
	}

	frameworks := make([]string, 0, len(wins))
	for name := range wins {
		frameworks = append(frameworks, name)
	}
	sort.Slice(frameworks, func(i, j int) bool {
		return wins[frameworks[i]] > wins[frameworks[j]]
	})

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Summary")
	t.AppendHeader(table.Row{"#", "Framework", "Wins"})
	for i, name := range frameworks {
		t.AppendRow(table.Row{i + 1, colorize(name), fmt.Sprintf("%d/%d", wins[name], len(groups))})
	}
	t.AppendFooter(table.Row{"", "Compared", "spool, samber/do, uber/dig, uber/fx"})
	t.Render()
}

func exportJSON(results []BenchmarkResult) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(
		struct {
			Benchmarks []BenchmarkResult `json:"benchmarks"`
		}{Benchmarks: results}, "", "  ",
	)
	if err != nil {
		return err
	}
	if err := os.WriteFile("benchmark_results.json", data, 0o644); err != nil {
		return err
	}
	fmt.Println(text.Faint.Sprint("Results exported to benchmark_results.json"))
	return nil
}
