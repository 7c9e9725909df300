// Command cxcompare diffs a golden fixture HTML file against live
// lineardoc.Process output for the matching source file. Ported from
// cmd/htmlcompare/main.go's flag-driven, single-test-case comparison
// workflow, trading its shell-exec'd `diff -u -w -B` for
// github.com/sergi/go-diff so the tool has no external dependency at
// runtime.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wikicx/lineardoc"
	"github.com/wikicx/lineardoc/internal/segment"
	"github.com/wikicx/lineardoc/internal/testutil"
)

func main() {
	var sourceFile, goldenFile, language string
	flag.StringVar(&sourceFile, "source", "", "path to source HTML file (required)")
	flag.StringVar(&goldenFile, "golden", "", "path to expected output HTML file (required)")
	flag.StringVar(&language, "lang", "en", "language code passed to the segmenter")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -source FILE -golden FILE [-lang en]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if sourceFile == "" || goldenFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(sourceFile, goldenFile, language); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sourceFile, goldenFile, language string) error {
	source, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	golden, err := os.ReadFile(goldenFile)
	if err != nil {
		return fmt.Errorf("reading golden: %w", err)
	}

	actual, err := lineardoc.Process(string(source), lineardoc.ProcessOptions{
		Language:  language,
		Segmenter: segment.PunctuationSegmenter,
	})
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	same, err := testutil.SameStructure(string(golden), actual)
	if err != nil {
		return fmt.Errorf("comparing output: %w", err)
	}

	if same {
		fmt.Println("OK: output matches golden fixture")
		return nil
	}

	fmt.Println("MISMATCH: output differs from golden fixture")
	fmt.Println(testutil.Diff(string(golden), actual))
	os.Exit(1)
	return nil
}
