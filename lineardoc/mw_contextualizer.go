package lineardoc

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

// RemovableConfig is the removability configuration spec.md §6 describes:
// classes and RDFa values to strip outright, and template names/regexes to
// strip by their expanded data-mw metadata. Read-only once loaded
// (spec.md §5) — internal/config is responsible for loading it from YAML.
type RemovableConfig struct {
	Classes   []string
	RDFA      []string
	Templates []string
}

var contentBranchNodeNames = map[string]bool{
	"blockquote": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "p": true, "pre": true, "div": true,
	"table": true, "ol": true, "ul": true, "dl": true, "figure": true,
	"center": true, "section": true,
}

// MWContextualizer implements the MediaWiki-specific contextualization
// rules of spec.md §4.4 on top of the generic Contextualizer state machine.
type MWContextualizer struct {
	*Contextualizer
	config                       RemovableConfig
	removableTransclusionFragment map[string]bool
}

// NewMWContextualizer creates a contextualizer with the given removability
// config (zero value disables all removal).
func NewMWContextualizer(config RemovableConfig) *MWContextualizer {
	mw := &MWContextualizer{
		config:                        config,
		removableTransclusionFragment: map[string]bool{},
	}
	mw.Contextualizer = NewContextualizerWithRules(mw.childContext, mwCanSegment)
	return mw
}

func mwCanSegment(cur Context) bool {
	return cur == ContextContentBranch
}

func (mw *MWContextualizer) childContext(parent Context, tag *Tag) Context {
	tagType := tag.AttrOr("typeof", "")
	if tagType == "" {
		tagType = tag.AttrOr("rel", "")
	}

	if parent == ContextRemovable || mw.IsRemovable(tag) {
		return ContextRemovable
	}

	if parent == ContextVerbatim || transclusionTypeofRe.MatchString(tagType) {
		return ContextVerbatim
	}

	if tag.Name == "figure" {
		return ContextMedia
	}

	if tag.Name == "span" && mediaInlineTypeofRe.MatchString(tagType) {
		return ContextMediaInline
	}

	if parent == ContextNone && tag.Name == "body" {
		return ContextSection
	}

	if (parent == ContextMedia || parent == ContextMediaInline) && tag.Name == "figcaption" {
		return ContextContentBranch
	}

	if (parent == ContextSection || parent == ContextNone) && contentBranchNodeNames[tag.Name] {
		return ContextContentBranch
	}

	return parent
}

var mediaInlineTypeofRe = regexp.MustCompile(`(^|\s)(mw:File|mw:Image|mw:Video|mw:Audio)\b`)

// IsRemovable reports whether tag (and its subtree) should be dropped from
// output, per spec.md §4.4 "Removability". It records transclusion fragment
// ids as a side effect, so later siblings sharing the same `about` are also
// treated as removable.
func (mw *MWContextualizer) IsRemovable(tag *Tag) bool {
	if mw.config.Classes == nil && mw.config.RDFA == nil && mw.config.Templates == nil {
		return false
	}

	about, hasAbout := tag.Attr("about")
	if hasAbout && mw.removableTransclusionFragment[about] {
		return true
	}

	classList := strings.Fields(tag.AttrOr("class", ""))
	for _, removableClass := range mw.config.Classes {
		if containsString(classList, removableClass) {
			if hasAbout {
				mw.removableTransclusionFragment[about] = true
			}
			return true
		}
	}

	types := strings.Fields(tag.AttrOr("typeof", ""))
	rels := strings.Fields(tag.AttrOr("rel", ""))
	rdfa := append(append([]string{}, types...), rels...)
	for _, removableRDFA := range mw.config.RDFA {
		if len(rdfa) == 1 && rdfa[0] == removableRDFA {
			if hasAbout {
				mw.removableTransclusionFragment[about] = true
			}
			return true
		}
	}

	dataMw, hasDataMw := tag.Attr("data-mw")
	if !hasDataMw || dataMw == "" {
		return false
	}

	templateName, ok := extractTemplateName(dataMw)
	if !ok {
		// ConfigurationError (spec.md §7): invalid JSON is non-fatal,
		// just means "not a removable template".
		return false
	}

	for _, removableTemplate := range mw.config.Templates {
		if matchesTemplate(removableTemplate, templateName) {
			if hasAbout {
				mw.removableTransclusionFragment[about] = true
			}
			return true
		}
	}

	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// dataMwShape mirrors the narrow slice of data-mw we need: parts[0].template.target.wt.
type dataMwShape struct {
	Parts []struct {
		Template struct {
			Target struct {
				WT string `json:"wt"`
			} `json:"target"`
		} `json:"template"`
	} `json:"parts"`
}

func extractTemplateName(dataMw string) (string, bool) {
	var shape dataMwShape
	if err := sonic.UnmarshalString(dataMw, &shape); err != nil {
		return "", false
	}
	if len(shape.Parts) == 0 || shape.Parts[0].Template.Target.WT == "" {
		return "", false
	}
	return shape.Parts[0].Template.Target.WT, true
}

func matchesTemplate(pattern, templateName string) bool {
	if strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") && len(pattern) >= 2 {
		inner := pattern[1 : len(pattern)-1]
		re, err := regexp.Compile("(?i)" + inner)
		if err != nil {
			return false
		}
		return re.MatchString(templateName)
	}
	return strings.EqualFold(pattern, templateName)
}
