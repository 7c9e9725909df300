package lineardoc

import (
	"strings"
	"testing"
)

func TestTagAttrOrdering(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Tag
		expected string
	}{
		{
			name: "attrs rendered sorted ascending regardless of insertion order",
			build: func() *Tag {
				tag := NewTag("a")
				tag.SetAttr("zebra", "1")
				tag.SetAttr("apple", "2")
				tag.SetAttr("mango", "3")
				return tag
			},
			expected: `<a apple="2" mango="3" zebra="1">`,
		},
		{
			name: "self-closing tag gets trailing slash before close",
			build: func() *Tag {
				tag := NewTag("br")
				tag.IsSelfClosing = true
				return tag
			},
			expected: `<br />`,
		},
		{
			name: "updating an existing attribute keeps its original position",
			build: func() *Tag {
				tag := NewTag("a")
				tag.SetAttr("href", "/x")
				tag.SetAttr("class", "cx-link")
				tag.SetAttr("href", "/y")
				return tag
			},
			expected: `<a class="cx-link" href="/y">`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.build().OpenHTML(); got != tc.expected {
				t.Errorf("OpenHTML() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestTagRenderClose(t *testing.T) {
	voidTag := NewTag("img")
	voidTag.IsSelfClosing = true
	if got := voidTag.CloseHTML(); got != "" {
		t.Errorf("self-closing CloseHTML() = %q, want empty", got)
	}

	pTag := NewTag("p")
	if got := pTag.CloseHTML(); got != "</p>" {
		t.Errorf("CloseHTML() = %q, want </p>", got)
	}
}

func TestEscapeText(t *testing.T) {
	in := `a & b < c > d`
	want := `a &#38; b &#60; c &#62; d`
	if got := EscapeText(in); got != want {
		t.Errorf("EscapeText(%q) = %q, want %q", in, got, want)
	}
	// idempotent: escaping its own output changes nothing further
	if twice := EscapeText(want); twice != want {
		t.Errorf("EscapeText is not idempotent: got %q", twice)
	}
}

func TestEscapeAttr(t *testing.T) {
	in := `"quoted" & 'apos' < >`
	got := EscapeAttr(in)
	for _, want := range []string{"&#34;", "&#39;", "&#38;", "&#60;", "&#62;"} {
		if !strings.Contains(got, want) {
			t.Errorf("EscapeAttr(%q) = %q, missing %q", in, got, want)
		}
	}
	// an & introduced by a prior EscapeText pass on a *different* string is
	// not touched by EscapeAttr run on this string
	preEscaped := EscapeText("&")
	if got := EscapeAttr(preEscaped); got != preEscaped {
		t.Errorf("EscapeAttr re-escaped an already-escaped ampersand: %q -> %q", preEscaped, got)
	}
}

func TestTagPredicates(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		pred func(*Tag) bool
		want bool
	}{
		{
			name: "span typeof=mw:Extension/ref is a reference",
			tag:  NewTagAttrs("span", [2]string{"typeof", "mw:Extension/ref"}),
			pred: IsReference,
			want: true,
		},
		{
			name: "sup class=reference is a reference",
			tag:  NewTagAttrs("sup", [2]string{"class", "reference"}),
			pred: IsReference,
			want: true,
		},
		{
			name: "div is not a reference",
			tag:  NewTag("div"),
			pred: IsReference,
			want: false,
		},
		{
			name: "span typeof=mw:Extension/math is math",
			tag:  NewTagAttrs("span", [2]string{"typeof", "mw:Extension/math"}),
			pred: IsMath,
			want: true,
		},
		{
			name: "typeof mw:Transclusion is a transclusion",
			tag:  NewTagAttrs("div", [2]string{"typeof", "mw:Transclusion"}),
			pred: IsTransclusion,
			want: true,
		},
		{
			name: "typeof with leading token boundary word mw:Transclusion matches",
			tag:  NewTagAttrs("div", [2]string{"typeof", "mw:Transclusion/Template"}),
			pred: IsTransclusion,
			want: true,
		},
		{
			name: "typeof mw:Placeholder is a transclusion",
			tag:  NewTagAttrs("div", [2]string{"typeof", "mw:Placeholder"}),
			pred: IsTransclusion,
			want: true,
		},
		{
			name: "a rel mw:ExtLink is an external link",
			tag:  NewTagAttrs("a", [2]string{"rel", "mw:ExtLink"}),
			pred: IsExternalLink,
			want: true,
		},
		{
			name: "a rel nofollow is not an external link",
			tag:  NewTagAttrs("a", [2]string{"rel", "nofollow"}),
			pred: IsExternalLink,
			want: false,
		},
		{
			name: "span class=cx-segment is a segment",
			tag:  NewTagAttrs("span", [2]string{"class", "cx-segment"}),
			pred: IsSegment,
			want: true,
		},
		{
			name: "div typeof=mw:Extension/references with data-mw is a reference list",
			tag: NewTagAttrs("div",
				[2]string{"typeof", "mw:Extension/references"},
				[2]string{"data-mw", "{}"}),
			pred: IsReferenceList,
			want: true,
		},
		{
			name: "div typeof=mw:Extension/references without data-mw is not a reference list",
			tag:  NewTagAttrs("div", [2]string{"typeof", "mw:Extension/references"}),
			pred: IsReferenceList,
			want: false,
		},
		{
			name: "style is non-translatable",
			tag:  NewTag("style"),
			pred: IsNonTranslatable,
			want: true,
		},
		{
			name: "rel mw:Entity is non-translatable",
			tag:  NewTagAttrs("span", [2]string{"rel", "mw:Entity"}),
			pred: IsNonTranslatable,
			want: true,
		},
		{
			name: "p is translatable",
			tag:  NewTag("p"),
			pred: IsNonTranslatable,
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(tc.tag); got != tc.want {
				t.Errorf("predicate(%s) = %v, want %v", tc.tag.Name, got, tc.want)
			}
		})
	}
}

func TestIsInlineEmptyTag(t *testing.T) {
	for _, name := range []string{"br", "img", "source", "track", "link", "meta"} {
		if !IsInlineEmptyTag(name) {
			t.Errorf("IsInlineEmptyTag(%q) = false, want true", name)
		}
	}
	if IsInlineEmptyTag("div") {
		t.Errorf("IsInlineEmptyTag(\"div\") = true, want false")
	}
}

func TestTagCloneIsIndependent(t *testing.T) {
	original := NewTagAttrs("a", [2]string{"href", "/wiki/Foo"})
	clone := original.Clone()
	clone.SetAttr("href", "/wiki/Bar")

	if got, _ := original.Attr("href"); got != "/wiki/Foo" {
		t.Errorf("mutating clone affected original: href = %q", got)
	}
	if clone == original {
		t.Errorf("Clone() returned the same pointer")
	}
}
