package adapter

import (
	logger "github.com/shuliangfu/logger"
)

// tagFilter evaluates entries against a FilterConfig. The tag lists are
// materialized into sets once per SetFilter so the per-entry checks stay
// constant-time.
//
// Precedence: an excluded tag rejects the entry outright, then a non-empty
// include list requires at least one match, then the predicate has the
// final word. A nil filter admits everything.
type tagFilter struct {
	cfg     *logger.FilterConfig
	include map[string]struct{}
	exclude map[string]struct{}
}

func newTagFilter(cfg *logger.FilterConfig) *tagFilter {
	if cfg == nil {
		return nil
	}

	return &tagFilter{
		cfg:     cfg,
		include: tagSet(cfg.IncludeTags),
		exclude: tagSet(cfg.ExcludeTags),
	}
}

// Allow reports whether the entry passes the filter. The entry carries its
// already-merged tags.
func (f *tagFilter) Allow(entry *logger.Entry) bool {
	if f == nil {
		return true
	}

	for _, tag := range entry.Tags {
		if _, excluded := f.exclude[tag]; excluded {
			return false
		}
	}

	if len(f.include) > 0 {
		matched := false

		for _, tag := range entry.Tags {
			if _, included := f.include[tag]; included {
				matched = true

				break
			}
		}

		if !matched {
			return false
		}
	}

	if f.cfg.Predicate != nil {
		return f.cfg.Predicate(entry)
	}

	return true
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}

	return set
}
