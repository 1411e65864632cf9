package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

// pendingCommissionStatuses are the statuses counted as not yet paid
// out on the BA dashboard.
var pendingCommissionStatuses = []string{
	models.CommissionStatusPending,
	"EN_ATTENTE",
	models.CommissionStatusInProgress,
}

// AmbassadorService computes the BA-facing dashboards. Everything is
// recomputed from the store on each call; nothing is cached.
type AmbassadorService struct {
	store storage.Store
	cfg   *config.Config
}

func NewAmbassadorService(store storage.Store, cfg *config.Config) *AmbassadorService {
	return &AmbassadorService{store: store, cfg: cfg}
}

// DashboardPayload is the BA dashboard response.
type DashboardPayload struct {
	Name              string  `json:"name"`
	Level             string  `json:"level"`
	Rank              int     `json:"rank"`
	TotalDrivers      int     `json:"totalDrivers"`
	ActiveDrivers     int     `json:"activeDrivers"`
	TotalPassengers   int     `json:"totalPassengers"`
	MonthlyCommission float64 `json:"monthlyCommission"`
	PendingCommission float64 `json:"pendingCommission"`
	Streak            int     `json:"streak"`
	TargetProgress    int     `json:"targetProgress"`
	Telephone         string  `json:"telephone"`
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// referralCounts builds the ranked population of all ambassadors by
// total referrals (drivers + passengers). This is the canonical rank
// definition used everywhere on the read side.
func (s *AmbassadorService) referralCounts() ([]EntityCount, error) {
	ambassadors, err := s.store.GetAllAmbassadors()
	if err != nil {
		return nil, err
	}
	counts := make([]EntityCount, 0, len(ambassadors))
	for _, amb := range ambassadors {
		drivers, err := s.store.CountDriversByAmbassador(amb.ID, nil)
		if err != nil {
			return nil, err
		}
		passengers, err := s.store.CountPassengersByAmbassador(amb.ID, nil)
		if err != nil {
			return nil, err
		}
		counts = append(counts, EntityCount{ID: amb.ID, Name: amb.FullName(), Count: drivers + passengers})
	}
	return counts, nil
}

// Dashboard assembles the BA dashboard payload.
func (s *AmbassadorService) Dashboard(amb *models.Ambassador) (*DashboardPayload, error) {
	now := time.Now()
	mStart := monthStart(now)

	totalDrivers, err := s.store.CountDriversByAmbassador(amb.ID, nil)
	if err != nil {
		return nil, err
	}
	activeDrivers, err := s.store.CountActiveDriversByAmbassador(amb.ID)
	if err != nil {
		return nil, err
	}
	totalPassengers, err := s.store.CountPassengersByAmbassador(amb.ID, nil)
	if err != nil {
		return nil, err
	}
	monthlyCommission, err := s.store.SumCommissionsByAmbassador(amb.ID, nil, &mStart)
	if err != nil {
		return nil, err
	}
	pendingCommission, err := s.store.SumCommissionsByAmbassador(amb.ID, pendingCommissionStatuses, nil)
	if err != nil {
		return nil, err
	}
	monthlyDrivers, err := s.store.CountDriversByAmbassador(amb.ID, &mStart)
	if err != nil {
		return nil, err
	}
	monthlyPassengers, err := s.store.CountPassengersByAmbassador(amb.ID, &mStart)
	if err != nil {
		return nil, err
	}

	target := amb.MonthlyTarget
	if target < 1 {
		target = s.cfg.DefaultMonthlyTarget
	}
	monthlyRecruits := monthlyDrivers + monthlyPassengers
	progress := int(math.Min(100, float64(monthlyRecruits)/float64(target)*100))

	counts, err := s.referralCounts()
	if err != nil {
		return nil, err
	}

	return &DashboardPayload{
		Name:              amb.FullName(),
		Level:             amb.Level,
		Rank:              RankByCount(amb.ID, counts),
		TotalDrivers:      totalDrivers,
		ActiveDrivers:     activeDrivers,
		TotalPassengers:   totalPassengers,
		MonthlyCommission: monthlyCommission,
		PendingCommission: pendingCommission,
		Streak:            amb.Streak,
		TargetProgress:    progress,
		Telephone:         amb.Phone,
	}, nil
}

// Leaderboard ranks all ambassadors by referral count, top 20.
func (s *AmbassadorService) Leaderboard() ([]LeaderboardEntry, error) {
	counts, err := s.referralCounts()
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(counts, 20), nil
}

// RecruitItem is one entry of the recent-recruits list.
type RecruitItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Commission float64 `json:"commission"`

	createdAt time.Time
}

// RecentRecruits merges the ambassador's latest driver and passenger
// enrollments, newest first, capped at ten.
func (s *AmbassadorService) RecentRecruits(amb *models.Ambassador) ([]RecruitItem, error) {
	drivers, err := s.store.ListRecentDriversByAmbassador(amb.ID, 6)
	if err != nil {
		return nil, err
	}
	passengers, err := s.store.ListRecentPassengersByAmbassador(amb.ID, 6)
	if err != nil {
		return nil, err
	}

	out := make([]RecruitItem, 0, len(drivers)+len(passengers))
	for _, d := range drivers {
		status := "Inscrit"
		if d.IsActive() {
			status = "Activé"
		}
		out = append(out, RecruitItem{
			ID:         fmt.Sprintf("DRV-%d", d.ID),
			Name:       d.FullName(),
			Type:       "Chauffeur",
			Date:       d.CreatedAt.Format("02/01/2006"),
			Status:     status,
			Commission: s.cfg.DriverCommission,
			createdAt:  d.CreatedAt,
		})
	}
	for _, p := range passengers {
		status := "Inscrit"
		if p.IsActive() {
			status = "Activé"
		}
		out = append(out, RecruitItem{
			ID:         fmt.Sprintf("PAS-%d", p.ID),
			Name:       p.FullName(),
			Type:       "Passager",
			Date:       p.CreatedAt.Format("02/01/2006"),
			Status:     status,
			Commission: s.cfg.PassengerCommission,
			createdAt:  p.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].createdAt.After(out[j].createdAt) })
	if len(out) > 10 {
		out = out[:10]
	}
	return out, nil
}

// ChallengeItem is one entry of the BA challenges list.
type ChallengeItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	EndsIn      string `json:"endsIn"`
}

// Challenges lists the challenges currently open, soonest deadline
// first, with the ambassador's recorded progression (zero when they
// have not joined yet).
func (s *AmbassadorService) Challenges(amb *models.Ambassador) ([]ChallengeItem, error) {
	challenges, err := s.store.ListActiveChallenges(time.Now())
	if err != nil {
		return nil, err
	}
	participations, err := s.store.ListParticipationsByAmbassador(amb.ID)
	if err != nil {
		return nil, err
	}
	progressByChallenge := make(map[uint]int, len(participations))
	for _, p := range participations {
		progressByChallenge[p.ChallengeID] = p.Progression
	}

	out := make([]ChallengeItem, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, ChallengeItem{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Progress:    progressByChallenge[c.ID],
			EndsIn:      c.EndsAt.Format("02/01/2006"),
		})
	}
	return out, nil
}

// ZoneOption is one entry of the zone picker.
type ZoneOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Zones lists the configured operating zones, with station ids for
// the ones already materialized.
func (s *AmbassadorService) Zones() ([]ZoneOption, error) {
	stations, err := s.store.ListStations()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.Station, len(stations))
	for _, st := range stations {
		byName[st.Name] = st
	}
	out := make([]ZoneOption, 0, len(s.cfg.Zones))
	for _, zone := range s.cfg.Zones {
		opt := ZoneOption{Name: zone}
		if st, ok := byName[zone]; ok {
			opt.ID = st.ID
			opt.Name = st.Label()
		}
		out = append(out, opt)
	}
	return out, nil
}
