package trie

import (
	"fmt"
	"strings"

	"github.com/kelindar/varkit/errs"
	"github.com/kelindar/varkit/internal/options"
)

// Config carries construction-time tuning for a Trie.
type Config struct {
	maxSubscribers int
}

// Option configures a Trie at construction time.
type Option = options.Option[*Config]

// WithMaxSubscribers caps the number of distinct subscribers a single
// pattern may accumulate; Insert reports errs.ErrTooManySubscribers once
// the cap is reached. The default, 0, is unbounded (spec §9, "Subscriber
// limit").
func WithMaxSubscribers(n int) Option {
	return options.NoError(func(c *Config) { c.maxSubscribers = n })
}

// Trie is a pattern-matching trie over dot-separated segment paths.
type Trie struct {
	root            *Node
	patternCount    int
	nodeCount       int
	subscriberCount int
	maxSubscribers  int
}

// New creates an empty Trie.
func New(opts ...Option) *Trie {
	cfg := &Config{}
	_ = options.Apply(cfg, opts...) // options here never fail

	return &Trie{
		root:           newNode("", Literal),
		nodeCount:      1,
		maxSubscribers: cfg.maxSubscribers,
	}
}

// PatternCount returns the number of distinct patterns with at least one
// subscriber.
func (t *Trie) PatternCount() int { return t.patternCount }

// NodeCount returns the total number of nodes in the trie, including the
// root.
func (t *Trie) NodeCount() int { return t.nodeCount }

// SubscriberCount returns the sum, over every terminal node, of its
// distinct subscriber count.
func (t *Trie) SubscriberCount() int { return t.subscriberCount }

func classify(seg string) (Kind, string) {
	switch seg {
	case "*":
		return Star, "*"
	case "#":
		return Hash, "#"
	default:
		return Literal, seg
	}
}

// splitPattern breaks a dot-separated pattern into segments. The empty
// string is zero segments (matching the root itself), not one empty
// segment.
func splitPattern(pattern string) []string {
	if pattern == "" {
		return nil
	}

	return strings.Split(pattern, ".")
}

// Insert registers (subscriberID, name) against pattern, creating any
// trie nodes the pattern needs. The empty pattern refers to the root
// itself, zero segments. Re-inserting the same (pattern, subscriberID)
// pair is a no-op; the previously registered name is kept.
func (t *Trie) Insert(pattern string, subscriberID uint64, name string) error {
	current := t.root
	for _, seg := range splitPattern(pattern) {
		kind, text := classify(seg)
		child := current.findChild(kind, text)
		if child == nil {
			child = newNode(text, kind)
			current.addChild(child)
			t.nodeCount++
		}
		current = child
	}

	if t.maxSubscribers > 0 {
		if _, already := current.subSet[subscriberID]; !already && len(current.Subscribers) >= t.maxSubscribers {
			return fmt.Errorf("%w: pattern %q", errs.ErrTooManySubscribers, pattern)
		}
	}

	if !current.Terminal {
		current.Terminal = true
		t.patternCount++
	}
	if current.addSubscriber(subscriberID, name) {
		t.subscriberCount++
	}

	return nil
}

// walkPattern returns the root-to-terminal path for pattern, ending in the
// node holding its subscribers. It fails if any segment along the way is
// missing.
func (t *Trie) walkPattern(pattern string) ([]*Node, error) {
	segs := splitPattern(pattern)
	path := make([]*Node, 0, len(segs)+1)
	path = append(path, t.root)

	current := t.root
	for _, seg := range segs {
		kind, text := classify(seg)
		child := current.findChild(kind, text)
		if child == nil {
			return nil, fmt.Errorf("%w: pattern %q not registered", errs.ErrInvalidFormat, pattern)
		}
		path = append(path, child)
		current = child
	}

	return path, nil
}

// prune drops any node along path (root excluded) left holding no
// information (not terminal, no subscribers, no children), working
// bottom-up so a chain of now-empty ancestors collapses in one pass (spec
// §9, "Pruning is eager").
func (t *Trie) prune(path []*Node) {
	for i := len(path) - 1; i > 0; i-- {
		node, parent := path[i], path[i-1]
		if !node.isEmpty() {
			break
		}
		for idx, c := range parent.Children {
			if c == node {
				parent.removeChild(idx)
				t.nodeCount--
				break
			}
		}
	}
}

// Remove unregisters subscriberID from pattern. If it was the pattern's
// last subscriber, the pattern's terminal marker is cleared and any nodes
// left holding no information are pruned back toward the root.
func (t *Trie) Remove(pattern string, subscriberID uint64) error {
	path, err := t.walkPattern(pattern)
	if err != nil {
		return err
	}
	current := path[len(path)-1]

	if !current.Terminal || !current.removeSubscriber(subscriberID) {
		return fmt.Errorf("%w: subscriber %d not registered on pattern %q", errs.ErrInvalidFormat, subscriberID, pattern)
	}
	t.subscriberCount--

	if len(current.Subscribers) == 0 {
		current.Terminal = false
		t.patternCount--
	}

	t.prune(path)

	return nil
}

// RemovePattern unregisters every subscriber of pattern in one call: it
// locates the pattern's terminal node, clears its entire subscriber set,
// marks it non-terminal, and prunes any nodes that fall empty as a result.
// Unlike Remove, which drops a single subscriber, this drops the pattern
// as a whole regardless of how many subscribers it carries (spec §4.10,
// "Remove pattern").
func (t *Trie) RemovePattern(pattern string) error {
	path, err := t.walkPattern(pattern)
	if err != nil {
		return err
	}
	current := path[len(path)-1]

	if !current.Terminal {
		return fmt.Errorf("%w: pattern %q not registered", errs.ErrInvalidFormat, pattern)
	}

	t.subscriberCount -= current.clearSubscribers()
	current.Terminal = false
	t.patternCount--

	t.prune(path)

	return nil
}
