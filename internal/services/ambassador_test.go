package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

func seedAmbassador(t *testing.T, store *storage.MemoryStore, n int) *models.Ambassador {
	t.Helper()
	amb := &models.Ambassador{
		FirstName: "BA",
		LastName:  fmt.Sprintf("Numero%d", n),
		Email:     fmt.Sprintf("ba%d@taxiconnect.cg", n),
		Phone:     fmt.Sprintf("+2420600001%02d", n),
	}
	if err := store.CreateAmbassador(amb); err != nil {
		t.Fatalf("seed ambassador %d: %v", n, err)
	}
	return amb
}

func seedDriver(t *testing.T, store *storage.MemoryStore, ambID uint, n int, active bool) *models.Driver {
	t.Helper()
	d := &models.Driver{
		AmbassadorID: ambID,
		FirstName:    "Chauffeur",
		LastName:     fmt.Sprintf("Numero%d", n),
		Phone:        fmt.Sprintf("+2420600002%02d", n),
		Plate:        fmt.Sprintf("KG%02dAB", n),
		Status:       models.DriverStatusEnrolled,
	}
	if active {
		now := time.Now()
		d.Status = models.DriverStatusActive
		d.ActivatedAt = &now
	}
	if err := store.CreateDriver(d); err != nil {
		t.Fatalf("seed driver %d: %v", n, err)
	}
	return d
}

func TestDashboardCountsAndRank(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())

	alice := seedAmbassador(t, store, 1)
	bob := seedAmbassador(t, store, 2)

	seedDriver(t, store, alice.ID, 1, true)
	seedDriver(t, store, alice.ID, 2, false)
	seedDriver(t, store, bob.ID, 3, false)

	dash, err := svc.Dashboard(alice)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalDrivers != 2 {
		t.Errorf("totalDrivers = %d, want 2", dash.TotalDrivers)
	}
	if dash.ActiveDrivers != 1 {
		t.Errorf("activeDrivers = %d, want 1", dash.ActiveDrivers)
	}
	if dash.Rank != 1 {
		t.Errorf("rank = %d, want 1", dash.Rank)
	}

	bobDash, err := svc.Dashboard(bob)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if bobDash.Rank != 2 {
		t.Errorf("bob rank = %d, want 2", bobDash.Rank)
	}
}

func TestDashboardPendingCommission(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())
	amb := seedAmbassador(t, store, 1)

	seedCommission(t, store, amb.ID, 5000, models.CommissionStatusPending)
	seedCommission(t, store, amb.ID, 2000, models.CommissionStatusInProgress)
	seedCommission(t, store, amb.ID, 7000, models.CommissionStatusPaid)

	dash, err := svc.Dashboard(amb)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.PendingCommission != 7000 {
		t.Errorf("pendingCommission = %v, want 7000", dash.PendingCommission)
	}
	// All statuses count toward the monthly figure.
	if dash.MonthlyCommission != 14000 {
		t.Errorf("monthlyCommission = %v, want 14000", dash.MonthlyCommission)
	}
}

func TestLeaderboardTopTwenty(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())

	for i := 1; i <= 25; i++ {
		seedAmbassador(t, store, i)
	}

	board, err := svc.Leaderboard()
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 20 {
		t.Errorf("leaderboard size = %d, want 20", len(board))
	}
}

func TestRecentRecruitsMergedNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())
	amb := seedAmbassador(t, store, 1)

	base := time.Now().Add(-48 * time.Hour)
	d := seedDriver(t, store, amb.ID, 1, false)
	d.CreatedAt = base

	p := &models.Passenger{
		AmbassadorID: amb.ID,
		FirstName:    "Grace",
		LastName:     "Loemba",
		Phone:        "+242060000300",
	}
	p.CreatedAt = base.Add(time.Hour)
	if err := store.CreatePassengerWithCommission(p, &models.Commission{AmbassadorID: amb.ID, Amount: 500}); err != nil {
		t.Fatalf("seed passenger: %v", err)
	}

	items, err := svc.RecentRecruits(amb)
	if err != nil {
		t.Fatalf("recent recruits: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Type != "Passager" || items[1].Type != "Chauffeur" {
		t.Errorf("order = %s, %s; want Passager first", items[0].Type, items[1].Type)
	}
	if items[1].Status != "Inscrit" {
		t.Errorf("driver status = %q, want Inscrit", items[1].Status)
	}
}

func TestZonesIncludeMaterializedStations(t *testing.T) {
	store := storage.NewMemoryStore()
	cfg := testConfig()
	svc := NewAmbassadorService(store, cfg)

	if _, err := store.GetOrCreateStation("Oyo", "Oyo"); err != nil {
		t.Fatalf("station: %v", err)
	}

	zones, err := svc.Zones()
	if err != nil {
		t.Fatalf("zones: %v", err)
	}
	if len(zones) != len(cfg.Zones) {
		t.Fatalf("zones = %d, want %d", len(zones), len(cfg.Zones))
	}
	found := false
	for _, z := range zones {
		if z.Name == "Oyo" && z.ID != 0 {
			found = true
		}
	}
	if !found {
		t.Error("Oyo zone missing its station id")
	}
}

func seedChallenge(t *testing.T, store *storage.MemoryStore, title string, start, end time.Time, active bool) *models.Challenge {
	t.Helper()
	c := &models.Challenge{
		Title:          title,
		Description:    "Recruter des chauffeurs",
		Type:           "RECRUTEMENT",
		ObjectiveType:  "CHAUFFEURS",
		ObjectiveValue: 10,
		StartsAt:       start,
		EndsAt:         end,
		Active:         active,
	}
	if err := store.CreateChallenge(c); err != nil {
		t.Fatalf("seed challenge %q: %v", title, err)
	}
	return c
}

func TestChallengesListsOpenWindowOnly(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())
	amb := seedAmbassador(t, store, 1)

	now := time.Now()
	late := seedChallenge(t, store, "Marathon", now.Add(-24*time.Hour), now.Add(14*24*time.Hour), true)
	soon := seedChallenge(t, store, "Sprint", now.Add(-24*time.Hour), now.Add(3*24*time.Hour), true)
	seedChallenge(t, store, "Terminé", now.Add(-10*24*time.Hour), now.Add(-24*time.Hour), true)
	seedChallenge(t, store, "Futur", now.Add(24*time.Hour), now.Add(7*24*time.Hour), true)
	seedChallenge(t, store, "Suspendu", now.Add(-24*time.Hour), now.Add(7*24*time.Hour), false)

	items, err := svc.Challenges(amb)
	if err != nil {
		t.Fatalf("challenges: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("challenges = %d, want 2", len(items))
	}
	// Soonest deadline first.
	if items[0].ID != soon.ID || items[1].ID != late.ID {
		t.Errorf("order = %d, %d, want %d, %d", items[0].ID, items[1].ID, soon.ID, late.ID)
	}
	if items[0].EndsIn != soon.EndsAt.Format("02/01/2006") {
		t.Errorf("endsIn = %q, want %q", items[0].EndsIn, soon.EndsAt.Format("02/01/2006"))
	}
}

func TestChallengesProgressFromParticipation(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAmbassadorService(store, testConfig())
	amb := seedAmbassador(t, store, 1)
	other := seedAmbassador(t, store, 2)

	now := time.Now()
	c := seedChallenge(t, store, "Sprint", now.Add(-24*time.Hour), now.Add(7*24*time.Hour), true)

	err := store.CreateParticipation(&models.ChallengeParticipation{AmbassadorID: amb.ID, ChallengeID: c.ID, Progression: 4})
	if err != nil {
		t.Fatalf("participation: %v", err)
	}
	err = store.CreateParticipation(&models.ChallengeParticipation{AmbassadorID: other.ID, ChallengeID: c.ID, Progression: 9})
	if err != nil {
		t.Fatalf("other participation: %v", err)
	}

	items, err := svc.Challenges(amb)
	if err != nil {
		t.Fatalf("challenges: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("challenges = %d, want 1", len(items))
	}
	if items[0].Progress != 4 {
		t.Errorf("progress = %d, want 4", items[0].Progress)
	}

	// Without a participation the progress reads as zero.
	fresh, err := svc.Challenges(seedAmbassador(t, store, 3))
	if err != nil {
		t.Fatalf("challenges: %v", err)
	}
	if fresh[0].Progress != 0 {
		t.Errorf("progress = %d, want 0", fresh[0].Progress)
	}
}

func TestCreateParticipationRejectsDuplicatePair(t *testing.T) {
	store := storage.NewMemoryStore()
	amb := seedAmbassador(t, store, 1)

	now := time.Now()
	c := seedChallenge(t, store, "Sprint", now.Add(-24*time.Hour), now.Add(7*24*time.Hour), true)

	p := &models.ChallengeParticipation{AmbassadorID: amb.ID, ChallengeID: c.ID}
	if err := store.CreateParticipation(p); err != nil {
		t.Fatalf("participation: %v", err)
	}
	dup := &models.ChallengeParticipation{AmbassadorID: amb.ID, ChallengeID: c.ID}
	if err := store.CreateParticipation(dup); err != storage.ErrDuplicateKey {
		t.Errorf("duplicate pair err = %v, want ErrDuplicateKey", err)
	}
}
