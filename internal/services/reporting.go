package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Ambassador performance statuses, mutually exclusive, evaluated in
// priority order: tenure first, then performance bands.
const (
	StatusNew   = "new"
	StatusTop   = "top"
	StatusGood  = "good"
	StatusWatch = "watch"
	StatusRisk  = "risk"
)

// EntityCount is one member of a ranked population: an ambassador with
// its referral count, or a driver with its payment count.
type EntityCount struct {
	ID    uint
	Name  string
	Count int
}

// LeaderboardEntry is one row of a ranked leaderboard.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Rank  int    `json:"rank"`
}

// sortByCountDesc orders a population by descending count. The sort is
// stable so ties keep their first-seen order, which fixes the rank a
// tied entity receives.
func sortByCountDesc(population []EntityCount) []EntityCount {
	sorted := make([]EntityCount, len(population))
	copy(sorted, population)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	return sorted
}

// RankByCount returns the 1-based position of id in the population
// after the descending stable sort. An id absent from the population
// ranks last.
func RankByCount(id uint, population []EntityCount) int {
	sorted := sortByCountDesc(population)
	for i, e := range sorted {
		if e.ID == id {
			return i + 1
		}
	}
	return len(sorted) + 1
}

// BuildLeaderboard returns the top limit entries of the population,
// ranked by the same sort RankByCount uses.
func BuildLeaderboard(population []EntityCount, limit int) []LeaderboardEntry {
	sorted := sortByCountDesc(population)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]LeaderboardEntry, 0, len(sorted))
	for i, e := range sorted {
		out = append(out, LeaderboardEntry{Name: e.Name, Total: e.Count, Rank: i + 1})
	}
	return out
}

// Trend is the week-over-week growth percentage. A quiet prior week
// followed by any activity reads as +100; two quiet weeks read as 0.
// Negative values are meaningful, not an error.
func Trend(thisWeek, lastWeek int) int {
	if lastWeek > 0 {
		return int(math.Round(float64(thisWeek-lastWeek) / float64(lastWeek) * 100))
	}
	if thisWeek > 0 {
		return 100
	}
	return 0
}

// ActivationRate is the rounded percentage of active drivers. The
// denominator is floored at 1 so ambassadors without drivers read as
// 0% instead of failing.
func ActivationRate(active, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(active) / float64(total) * 100))
}

// ClassifyStatus maps an ambassador's tenure and performance onto one
// status. Tenure wins: within the first 14 days the ambassador is
// "new" no matter how it performs.
func ClassifyStatus(joinedDays, activationRate, recruits int) string {
	if joinedDays <= 14 {
		return StatusNew
	}
	switch {
	case activationRate >= 70 && recruits >= 5:
		return StatusTop
	case activationRate >= 50 && recruits >= 3:
		return StatusGood
	case activationRate >= 30 || recruits >= 2:
		return StatusWatch
	default:
		return StatusRisk
	}
}

// AmbassadorOverview is one ambassador row of the manager dashboard,
// with every derived metric already computed.
type AmbassadorOverview struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	City            string  `json:"city"`
	Zone            string  `json:"zone"`
	Phone           string  `json:"phone"`
	Recruits        int     `json:"recruits"`
	Active          int     `json:"active"`
	Passengers      int     `json:"passengers"`
	Commission      float64 `json:"commission"`
	CommissionTotal float64 `json:"commissionTotal"`
	Target          int     `json:"target"`
	Streak          int     `json:"streak"`
	Joined          string  `json:"joined"`
	JoinedDays      int     `json:"joined_days"`
	Trend           int     `json:"trend"`
	ActivationRate  int     `json:"activation_rate"`
	Status          string  `json:"status"`

	// Raw window counts kept for territory growth, not serialized.
	ThisWeekRecruits int `json:"-"`
	LastWeekRecruits int `json:"-"`
}

// Alert is one derived manager alert.
type Alert struct {
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Bg     string `json:"bg"`
	Action string `json:"action"`
	BAID   uint   `json:"ba_id"`
}

const maxAlerts = 10

// DeriveAlerts evaluates every alert rule independently for each
// ambassador: one ambassador can raise several alerts, unlike the
// mutually exclusive status. Output is deduplicated by (ambassador,
// icon) in first-seen order and capped.
func DeriveAlerts(ambassadors []AmbassadorOverview) []Alert {
	var alerts []Alert

	for _, ba := range ambassadors {
		if ba.Status == StatusRisk {
			alerts = append(alerts, Alert{
				Icon:   "⚠️",
				Title:  fmt.Sprintf("%s — Inactive", ba.Name),
				Desc:   fmt.Sprintf("Statut à risque. %d recrues, %d actifs. Objectif: %d.", ba.Recruits, ba.Active, ba.Target),
				Bg:     "var(--red-dim)",
				Action: "Contacter",
				BAID:   ba.ID,
			})
		}

		if ba.Status == StatusWatch && ba.Trend < -5 {
			alerts = append(alerts, Alert{
				Icon:   "📉",
				Title:  fmt.Sprintf("%s — Taux en baisse", ba.Name),
				Desc:   fmt.Sprintf("Activation à %d%% (%d%% WoW). À suivre.", ba.ActivationRate, ba.Trend),
				Bg:     "var(--amber-dim)",
				Action: "Analyser",
				BAID:   ba.ID,
			})
		}

		if ba.Status == StatusNew {
			alerts = append(alerts, Alert{
				Icon:   "🆕",
				Title:  fmt.Sprintf("%s — Nouveau BA", ba.Name),
				Desc:   fmt.Sprintf("Inscrit il y a %d jours. %d recrue(s). Accompagnement nécessaire.", ba.JoinedDays, ba.Recruits),
				Bg:     "var(--blue-dim)",
				Action: "Coacher",
				BAID:   ba.ID,
			})
		}

		if float64(ba.Recruits) < float64(ba.Target)*0.5 && ba.JoinedDays > 20 {
			target := ba.Target
			if target < 1 {
				target = 1
			}
			pct := int(math.Round(float64(ba.Recruits) / float64(target) * 100))
			alerts = append(alerts, Alert{
				Icon:   "🎯",
				Title:  fmt.Sprintf("%s — Objectif à risque", ba.Name),
				Desc:   fmt.Sprintf("%d/%d recrues (%d%%).", ba.Recruits, ba.Target, pct),
				Bg:     "var(--amber-dim)",
				Action: "Relancer",
				BAID:   ba.ID,
			})
		}
	}

	type alertKey struct {
		baID uint
		icon string
	}
	seen := make(map[alertKey]bool)
	unique := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		key := alertKey{a.BAID, a.Icon}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	if len(unique) > maxAlerts {
		unique = unique[:maxAlerts]
	}
	return unique
}

// TerritoryStats aggregates ambassadors by their first driver's city.
type TerritoryStats struct {
	Name       string  `json:"name"`
	BAs        int     `json:"bas"`
	Recruits   int     `json:"recruits"`
	Commission float64 `json:"commission"`
	Active     int     `json:"active"`
	Growth     int     `json:"growth"`
}

// formatXAF renders an amount with space-grouped thousands and the
// currency suffix: 5000 becomes "5 000 XAF".
func formatXAF(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + strings.Join(groups, " ") + " XAF"
}

// timeAgo renders a relative timestamp the way the dashboards expect:
// "Il y a 12 min", "Il y a 3h", "Hier 14:00", "Il y a 4j".
func timeAgo(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	hours := diff.Hours()
	switch {
	case hours < 1:
		return fmt.Sprintf("Il y a %d min", int(diff.Minutes()))
	case hours < 24:
		return fmt.Sprintf("Il y a %dh", int(hours))
	case hours < 48:
		return fmt.Sprintf("Hier %s", t.Format("15:04"))
	default:
		return fmt.Sprintf("Il y a %dj", int(hours/24))
	}
}
