package lineardoc

// Context classifies the descendant region of a currently-open tag. The
// zero value ("") represents the Python original's None.
type Context string

const (
	// ContextNone is the undefined/default context.
	ContextNone Context = ""
	// ContextSection is direct content of <body>.
	ContextSection Context = "section"
	// ContextContentBranch is translatable prose; the only context in
	// which sentence segmentation fires.
	ContextContentBranch Context = "contentBranch"
	// ContextMedia is inside a <figure>.
	ContextMedia Context = "media"
	// ContextMediaInline is inside an inline file/image/video/audio span.
	ContextMediaInline Context = "media-inline"
	// ContextVerbatim is inside a transclusion or placeholder.
	ContextVerbatim Context = "verbatim"
	// ContextRemovable is inside a subtree marked for removal.
	ContextRemovable Context = "removable"
)

// ChildContextFunc computes the context a new tag opens into, given the
// context of its parent. Contextualizer.GetChildContext delegates here so
// that MWContextualizer (and any other caller) can supply its own rule
// table while reusing the base stack bookkeeping.
type ChildContextFunc func(parent Context, tag *Tag) Context

// CanSegmentFunc decides whether sentence segmentation may fire given the
// current context.
type CanSegmentFunc func(current Context) bool

// Contextualizer is a pushdown automaton over Context, the generic (non
// MediaWiki-specific) base described in SPEC_FULL.md supplemented feature 6:
// it knows only that <figure> opens a media context and <figcaption> resets
// to none, and that segmentation is allowed only in the undefined context.
// MWContextualizer wraps this with its own rule table and removability
// logic (Go has no virtual dispatch, so the "subclass" supplies both as
// plain functions rather than overriding methods).
type Contextualizer struct {
	stack       []Context
	ruleFunc    ChildContextFunc
	canSegment  CanSegmentFunc
}

// NewContextualizer creates a Contextualizer using the base figure/
// figcaption rule. Callers that need a different rule table should use
// NewContextualizerWithRules instead.
func NewContextualizer() *Contextualizer {
	return NewContextualizerWithRules(baseChildContext, func(cur Context) bool { return cur == ContextNone })
}

// NewContextualizerWithRules creates a Contextualizer with a custom rule
// function and segmentability predicate.
func NewContextualizerWithRules(rules ChildContextFunc, canSegment CanSegmentFunc) *Contextualizer {
	return &Contextualizer{ruleFunc: rules, canSegment: canSegment}
}

func baseChildContext(parent Context, tag *Tag) Context {
	switch tag.Name {
	case "figure":
		return ContextMedia
	case "figcaption":
		return ContextNone
	default:
		return parent
	}
}

// GetContext returns the context of the innermost currently-open tag, or
// ContextNone if nothing is open.
func (c *Contextualizer) GetContext() Context {
	if len(c.stack) == 0 {
		return ContextNone
	}
	return c.stack[len(c.stack)-1]
}

// GetChildContext computes (without pushing) the context tag would open
// into.
func (c *Contextualizer) GetChildContext(tag *Tag) Context {
	return c.ruleFunc(c.GetContext(), tag)
}

// OnOpenTag pushes the context tag opens into.
func (c *Contextualizer) OnOpenTag(tag *Tag) {
	c.stack = append(c.stack, c.GetChildContext(tag))
}

// OnCloseTag pops the innermost context.
func (c *Contextualizer) OnCloseTag() {
	if len(c.stack) > 0 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// CanSegment reports whether sentence segmentation may fire in the current
// context, per the predicate supplied at construction.
func (c *Contextualizer) CanSegment() bool {
	return c.canSegment(c.GetContext())
}

// IsRemovable always reports false for the base Contextualizer, which has no
// removability config. MWContextualizer defines its own method of the same
// name, shadowing this one for callers that hold a *MWContextualizer.
func (c *Contextualizer) IsRemovable(tag *Tag) bool {
	return false
}

// ContextTracker is the subset of Contextualizer/MWContextualizer that
// Parser depends on, so either can drive parsing.
type ContextTracker interface {
	GetContext() Context
	GetChildContext(tag *Tag) Context
	OnOpenTag(tag *Tag)
	OnCloseTag()
	CanSegment() bool
	IsRemovable(tag *Tag) bool
}
