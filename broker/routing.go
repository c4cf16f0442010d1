package broker

import "strings"

// splitRoutingKey segments a routing key on '.'; "" splits to zero
// segments, which a lone "#" pattern matches (spec.md 8: pattern "#",
// key "" -> match).
func splitRoutingKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

func parseTopicPattern(pattern string) []PatternSegment {
	if pattern == "" {
		return nil
	}
	words := strings.Split(pattern, ".")
	out := make([]PatternSegment, len(words))
	for i, w := range words {
		switch w {
		case "*":
			out[i] = PatternSegment{SingleWildcard: true}
		case "#":
			out[i] = PatternSegment{MultiWildcard: true}
		default:
			out[i] = PatternSegment{Word: w}
		}
	}
	return out
}

// matchTopic implements AMQP 0-9-1 section 3.1.3.3 topic matching (spec.md
// 4.5): Word matches a literal segment, SingleWildcard (*) matches exactly
// one, MultiWildcard (#) matches zero or more and, when followed by more
// pattern, scans forward for the first position where the remaining
// pattern matches the remaining key.
//
// The reference source's match_topic is an empty stub (original_source
// haesli_messaging/src/routing.rs); this implements the real semantics
// against spec.md's own worked examples instead of reproducing that bug.
func matchTopic(pattern []PatternSegment, key []string) bool {
	if len(pattern) == 0 {
		return len(key) == 0
	}
	seg := pattern[0]
	switch {
	case seg.MultiWildcard:
		if len(pattern) == 1 {
			return true
		}
		for i := 0; i <= len(key); i++ {
			if matchTopic(pattern[1:], key[i:]) {
				return true
			}
		}
		return false
	case seg.SingleWildcard:
		if len(key) == 0 {
			return false
		}
		return matchTopic(pattern[1:], key[1:])
	default:
		if len(key) == 0 || key[0] != seg.Word {
			return false
		}
		return matchTopic(pattern[1:], key[1:])
	}
}
