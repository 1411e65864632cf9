package services

import (
	"testing"
	"time"
)

func TestRankByCountTiesKeepFirstSeenOrder(t *testing.T) {
	population := []EntityCount{
		{ID: 1, Name: "Alice", Count: 5},
		{ID: 2, Name: "Brice", Count: 8},
		{ID: 3, Name: "Clarisse", Count: 5},
	}

	if got := RankByCount(2, population); got != 1 {
		t.Errorf("rank of top entity = %d, want 1", got)
	}
	// Tied at 5: Alice appeared first, so she outranks Clarisse.
	if got := RankByCount(1, population); got != 2 {
		t.Errorf("rank of first tied entity = %d, want 2", got)
	}
	if got := RankByCount(3, population); got != 3 {
		t.Errorf("rank of second tied entity = %d, want 3", got)
	}
}

func TestRankByCountAbsentRanksLast(t *testing.T) {
	population := []EntityCount{
		{ID: 1, Count: 3},
		{ID: 2, Count: 1},
	}
	if got := RankByCount(99, population); got != 3 {
		t.Errorf("rank of absent entity = %d, want 3", got)
	}
}

func TestBuildLeaderboardMatchesRank(t *testing.T) {
	population := []EntityCount{
		{ID: 1, Name: "Alice", Count: 2},
		{ID: 2, Name: "Brice", Count: 7},
		{ID: 3, Name: "Clarisse", Count: 7},
		{ID: 4, Name: "David", Count: 0},
	}

	board := BuildLeaderboard(population, 3)
	if len(board) != 3 {
		t.Fatalf("leaderboard size = %d, want 3", len(board))
	}

	// Every leaderboard position must agree with RankByCount.
	ids := []uint{2, 3, 1}
	for i, entry := range board {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
		if got := RankByCount(ids[i], population); got != entry.Rank {
			t.Errorf("RankByCount(%d) = %d, leaderboard says %d", ids[i], got, entry.Rank)
		}
	}
}

func TestTrend(t *testing.T) {
	cases := []struct {
		thisWeek, lastWeek, want int
	}{
		{0, 0, 0},
		{3, 0, 100},
		{8, 10, -20},
		{10, 8, 25},
		{5, 5, 0},
		{1, 3, -67},
	}
	for _, c := range cases {
		if got := Trend(c.thisWeek, c.lastWeek); got != c.want {
			t.Errorf("Trend(%d, %d) = %d, want %d", c.thisWeek, c.lastWeek, got, c.want)
		}
	}
}

func TestActivationRate(t *testing.T) {
	if got := ActivationRate(0, 0); got != 0 {
		t.Errorf("ActivationRate(0, 0) = %d, want 0", got)
	}
	if got := ActivationRate(2, 3); got != 67 {
		t.Errorf("ActivationRate(2, 3) = %d, want 67", got)
	}
	if got := ActivationRate(3, 3); got != 100 {
		t.Errorf("ActivationRate(3, 3) = %d, want 100", got)
	}
}

func TestClassifyStatusTenureWins(t *testing.T) {
	// A brand-new BA with stellar numbers is still "new".
	if got := ClassifyStatus(3, 100, 50); got != StatusNew {
		t.Errorf("status = %q, want %q", got, StatusNew)
	}
	if got := ClassifyStatus(14, 0, 0); got != StatusNew {
		t.Errorf("status at day 14 = %q, want %q", got, StatusNew)
	}
	if got := ClassifyStatus(15, 0, 0); got != StatusRisk {
		t.Errorf("status at day 15 = %q, want %q", got, StatusRisk)
	}
}

func TestClassifyStatusBands(t *testing.T) {
	cases := []struct {
		rate, recruits int
		want           string
	}{
		{70, 5, StatusTop},
		{69, 5, StatusGood},
		{50, 3, StatusGood},
		{50, 2, StatusWatch},
		{30, 0, StatusWatch},
		{0, 2, StatusWatch},
		{29, 1, StatusRisk},
	}
	for _, c := range cases {
		if got := ClassifyStatus(30, c.rate, c.recruits); got != c.want {
			t.Errorf("ClassifyStatus(30, %d, %d) = %q, want %q", c.rate, c.recruits, got, c.want)
		}
	}
}

func TestDeriveAlertsMultipleRulesPerAmbassador(t *testing.T) {
	// Risk status plus a badly missed target: two alerts, different icons.
	ba := AmbassadorOverview{
		ID: 1, Name: "Alice", Status: StatusRisk,
		Recruits: 1, Target: 12, JoinedDays: 30,
	}
	alerts := DeriveAlerts([]AmbassadorOverview{ba})
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	if alerts[0].Icon == alerts[1].Icon {
		t.Errorf("expected distinct icons, both are %q", alerts[0].Icon)
	}
	for _, a := range alerts {
		if a.BAID != 1 {
			t.Errorf("alert ba_id = %d, want 1", a.BAID)
		}
	}
}

func TestDeriveAlertsCap(t *testing.T) {
	var ambassadors []AmbassadorOverview
	for i := 1; i <= 8; i++ {
		ambassadors = append(ambassadors, AmbassadorOverview{
			ID: uint(i), Name: "BA", Status: StatusRisk,
			Recruits: 0, Target: 12, JoinedDays: 40,
		})
	}
	// Each raises two alerts, 16 total, capped at 10.
	alerts := DeriveAlerts(ambassadors)
	if len(alerts) != 10 {
		t.Errorf("alerts = %d, want 10", len(alerts))
	}
}

func TestDeriveAlertsNewBA(t *testing.T) {
	ba := AmbassadorOverview{ID: 2, Name: "Brice", Status: StatusNew, JoinedDays: 4, Recruits: 1, Target: 12}
	alerts := DeriveAlerts([]AmbassadorOverview{ba})
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Icon != "🆕" || alerts[0].Action != "Coacher" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
}

func TestFormatXAF(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{500, "500 XAF"},
		{5000, "5 000 XAF"},
		{75000, "75 000 XAF"},
		{1250000, "1 250 000 XAF"},
		{0, "0 XAF"},
		{-5000, "-5 000 XAF"},
	}
	for _, c := range cases {
		if got := formatXAF(c.amount); got != c.want {
			t.Errorf("formatXAF(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Minute), "Il y a 30 min"},
		{now.Add(-5 * time.Hour), "Il y a 5h"},
		{now.Add(-30 * time.Hour), "Hier 06:00"},
		{now.Add(-96 * time.Hour), "Il y a 4j"},
		{time.Time{}, "—"},
	}
	for _, c := range cases {
		if got := timeAgo(c.t, now); got != c.want {
			t.Errorf("timeAgo(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}
