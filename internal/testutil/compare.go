// Package testutil adapts gomjml's integration-test DOM comparison helpers
// (mjml/integration_test.go's compareNodes/compareAttributes) to the
// lineardoc domain: structural HTML comparison, plus a human-readable diff
// on mismatch. Used by cmd/cxcompare.
package testutil

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SameStructure reports whether expected and actual parse to the same DOM
// shape: same tag names, same attributes (order-independent), same text at
// each node, recursively. Attribute order and whitespace between tags are
// intentionally not load-bearing; attribute values must match exactly.
func SameStructure(expected, actual string) (bool, error) {
	expectedDoc, err := goquery.NewDocumentFromReader(strings.NewReader(expected))
	if err != nil {
		return false, fmt.Errorf("testutil: parsing expected: %w", err)
	}
	actualDoc, err := goquery.NewDocumentFromReader(strings.NewReader(actual))
	if err != nil {
		return false, fmt.Errorf("testutil: parsing actual: %w", err)
	}
	return compareNodes(expectedDoc.Selection, actualDoc.Selection), nil
}

func compareNodes(expected, actual *goquery.Selection) bool {
	if expected.Length() != actual.Length() {
		return false
	}

	equal := true
	expected.Each(func(i int, expectedNode *goquery.Selection) {
		if !equal || i >= actual.Length() {
			equal = false
			return
		}
		actualNode := actual.Eq(i)

		expectedTag := goquery.NodeName(expectedNode)
		actualTag := goquery.NodeName(actualNode)
		if expectedTag != actualTag {
			equal = false
			return
		}

		if expectedTag == "#text" {
			if strings.TrimSpace(expectedNode.Text()) != strings.TrimSpace(actualNode.Text()) {
				equal = false
			}
			return
		}

		if !compareAttributes(expectedNode, actualNode) {
			equal = false
			return
		}

		if !compareNodes(expectedNode.Children(), actualNode.Children()) {
			equal = false
			return
		}

		expectedText := strings.TrimSpace(expectedNode.Contents().Not("*").Text())
		actualText := strings.TrimSpace(actualNode.Contents().Not("*").Text())
		if expectedText != actualText {
			equal = false
		}
	})

	return equal
}

func compareAttributes(expected, actual *goquery.Selection) bool {
	expectedAttrs := attrMap(expected)
	actualAttrs := attrMap(actual)

	if len(expectedAttrs) != len(actualAttrs) {
		return false
	}
	for key, val := range expectedAttrs {
		if actualAttrs[key] != val {
			return false
		}
	}
	return true
}

func attrMap(sel *goquery.Selection) map[string]string {
	attrs := map[string]string{}
	if sel.Length() == 0 {
		return attrs
	}
	for _, attr := range sel.Get(0).Attr {
		attrs[attr.Key] = attr.Val
	}
	return attrs
}

// Diff renders a human-readable unified diff between expected and actual,
// for use in test failure messages and cmd/cxcompare.
func Diff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	return dmp.DiffPrettyText(diffs)
}
