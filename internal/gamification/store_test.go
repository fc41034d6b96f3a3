package gamification

import (
	"strings"
	"testing"

	"github.com/studybuddy/backend/internal/models"
)

// Every leaderboard metric must order descending (highest value gets rank
// 1) and must carry a matching value column for the SELECT list. The two
// maps are spliced into the same query, so they have to agree.
func TestLeaderboardMetricWhitelistConsistent(t *testing.T) {
	canonical := []string{models.MetricXP, models.MetricWeeklyXP, models.MetricStreak, models.MetricLevel}
	if len(metricOrder) != len(canonical) {
		t.Errorf("metricOrder has %d entries, want %d", len(metricOrder), len(canonical))
	}

	for _, metric := range canonical {
		order, ok := metricOrder[metric]
		if !ok {
			t.Errorf("metric %s has no ORDER BY clause", metric)
			continue
		}
		value, ok := metricValue[metric]
		if !ok {
			t.Errorf("metric %s has no value column", metric)
			continue
		}
		for _, clause := range strings.Split(order, ",") {
			if !strings.HasSuffix(strings.TrimSpace(clause), "DESC") {
				t.Errorf("metric %s clause %q does not sort descending", metric, clause)
			}
		}
		if !strings.HasPrefix(order, value+" ") {
			t.Errorf("metric %s orders by %q but reports column %q", metric, order, value)
		}
	}

	for metric := range metricValue {
		if _, ok := metricOrder[metric]; !ok {
			t.Errorf("metricValue has %s but metricOrder does not", metric)
		}
	}
}

func TestNormalizeMetricFeedsWhitelist(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"xp", models.MetricXP},
		{"total_xp", models.MetricXP},
		{"weekly", models.MetricWeeklyXP},
		{"WEEKLY_XP", models.MetricWeeklyXP},
		{"streak_days", models.MetricStreak},
		{"level", models.MetricLevel},
	}
	for _, tt := range tests {
		got := NormalizeMetric(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeMetric(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		if _, ok := metricOrder[got]; !ok {
			t.Errorf("NormalizeMetric(%q) = %q, which the whitelist rejects", tt.in, got)
		}
	}

	if _, ok := metricOrder[NormalizeMetric("karma")]; ok {
		t.Error("unknown metric slipped through the whitelist")
	}
}
