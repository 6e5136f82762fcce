// Package search finds catalog entries in the local store without touching
// the network.
package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/pokedex/internal/domain"
)

// Source provides the cached entries to search
type Source interface {
	All() []domain.Pokemon
}

// Result is a ranked match. Lower Score is better.
type Result struct {
	Pokemon domain.Pokemon
	Score   int
}

// Service handles fuzzy search over cached entries
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(source Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source: source,
		logger: logger,
	}
}

// Find returns cached entries matching query, best first. A numeric query
// also matches the catalog index exactly.
func (s *Service) Find(query string, limit int) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	items := s.source.All()
	if len(items) == 0 {
		s.logger.Debug("search on empty store", "query", query)
		return nil
	}

	names := make([]string, len(items))
	for i, p := range items {
		names[i] = strings.ToLower(p.Name)
	}

	seen := make(map[int]bool)
	var results []Result

	for i, p := range items {
		if p.Index() == query {
			results = append(results, Result{Pokemon: p, Score: -1})
			seen[i] = true
		}
	}

	for _, match := range fuzzy.RankFindNormalizedFold(query, names) {
		if seen[match.OriginalIndex] {
			continue
		}
		seen[match.OriginalIndex] = true
		results = append(results, Result{
			Pokemon: items[match.OriginalIndex],
			Score:   matchScore(match.Target, query, match.Distance),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// matchScore ranks a match; lower is better
func matchScore(name, query string, distance int) int {
	switch {
	case name == query:
		return 0
	case strings.HasPrefix(name, query):
		return 10 + distance
	case strings.Contains(name, query):
		return 50 + distance
	default:
		return 100 + distance
	}
}
