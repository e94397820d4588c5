package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/database"
	"github.com/jask/pdfsel/internal/database/repository"
	"github.com/jask/pdfsel/internal/document"
)

// minSimilarity is the lowest normalized edit similarity a fuzzy suggestion
// may have.
const minSimilarity = 0.5

// RecentService records loaded documents and suggests them back.
type RecentService struct {
	Recent *repository.RecentRepo
	Logger *zap.Logger
}

// Suggestion is a history entry ranked against a query.
type Suggestion struct {
	repository.RecentDocument
	Score float64
}

// Record stores every loaded descriptor under module. Failed loads are skipped.
func (s *RecentService) Record(ctx context.Context, module string, docs []*document.Descriptor) error {
	now := database.Now()
	for _, d := range docs {
		if !d.Loaded() {
			continue
		}
		err := s.Recent.Touch(ctx, repository.RecentDocument{
			ID:         uuid.NewString(),
			Path:       d.Path,
			Name:       d.Name,
			Module:     module,
			LastUsedAt: now,
		})
		if err != nil {
			return err
		}
	}
	s.logger().Debug("recent documents recorded", zap.String("module", module), zap.Int("count", len(docs)))
	return nil
}

// Suggest returns up to limit history entries matching query, best first.
// An empty query returns the most recent entries.
func (s *RecentService) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, nil
	}
	pool, err := s.Recent.List(ctx, max(limit*5, 100))
	if err != nil {
		return nil, err
	}
	ranked := rankRecent(pool, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Forget removes path from the history so it is no longer suggested.
func (s *RecentService) Forget(ctx context.Context, path string) error {
	if err := s.Recent.Delete(ctx, path); err != nil {
		return fmt.Errorf("forget %s: %w", path, err)
	}
	s.logger().Debug("recent document forgotten", zap.String("path", path))
	return nil
}

func (s *RecentService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

type rankedRecent struct {
	Suggestion
	tier int
	pos  int
}

// rankRecent orders items by match tier (exact name, name prefix, substring,
// fuzzy), then score, then recency.
func rankRecent(items []repository.RecentDocument, query string) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	var ranked []rankedRecent
	for pos, it := range items {
		if q == "" {
			ranked = append(ranked, rankedRecent{Suggestion: Suggestion{RecentDocument: it, Score: 1}, pos: pos})
			continue
		}
		tier, score, ok := matchRecent(it, q)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedRecent{Suggestion: Suggestion{RecentDocument: it, Score: score}, tier: tier, pos: pos})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.pos < b.pos
	})
	out := make([]Suggestion, len(ranked))
	for i, r := range ranked {
		out[i] = r.Suggestion
	}
	return out
}

func matchRecent(it repository.RecentDocument, q string) (tier int, score float64, ok bool) {
	name := strings.ToLower(it.Name)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case stem == q || name == q:
		return 0, 1, true
	case strings.HasPrefix(name, q):
		return 1, float64(len(q)) / float64(len(name)), true
	case strings.Contains(name, q) || strings.Contains(strings.ToLower(it.Path), q):
		return 2, float64(len(q)) / float64(len(name)), true
	}
	sim := similarity(stem, q)
	if sim < minSimilarity {
		return 0, 0, false
	}
	return 3, sim, true
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
