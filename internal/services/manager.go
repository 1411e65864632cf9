package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

// ManagerService assembles the manager dashboard. Every metric is
// recomputed from the raw tables on each call; a missing linked
// profile reads as zero, never as an error.
type ManagerService struct {
	store storage.Store
}

func NewManagerService(store storage.Store) *ManagerService {
	return &ManagerService{store: store}
}

// AllAmbassadors returns every BA with its derived stats, newest
// first.
func (s *ManagerService) AllAmbassadors() ([]AmbassadorOverview, error) {
	now := time.Now()
	mStart := monthStart(now)
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	cfg, err := s.store.GetObjectiveConfig()
	if err != nil {
		return nil, err
	}

	ambassadors, err := s.store.GetAllAmbassadors()
	if err != nil {
		return nil, err
	}

	out := make([]AmbassadorOverview, 0, len(ambassadors))
	for _, amb := range ambassadors {
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
		totalCommission, err := s.store.SumCommissionsByAmbassador(amb.ID, nil, nil)
		if err != nil {
			return nil, err
		}

		thisWeekDrivers, err := s.store.CountDriversByAmbassadorBetween(amb.ID, weekAgo, now)
		if err != nil {
			return nil, err
		}
		thisWeekPassengers, err := s.store.CountPassengersByAmbassadorBetween(amb.ID, weekAgo, now)
		if err != nil {
			return nil, err
		}
		lastWeekDrivers, err := s.store.CountDriversByAmbassadorBetween(amb.ID, twoWeeksAgo, weekAgo)
		if err != nil {
			return nil, err
		}
		lastWeekPassengers, err := s.store.CountPassengersByAmbassadorBetween(amb.ID, twoWeeksAgo, weekAgo)
		if err != nil {
			return nil, err
		}

		thisWeek := thisWeekDrivers + thisWeekPassengers
		lastWeek := lastWeekDrivers + lastWeekPassengers

		overview := AmbassadorOverview{
			ID:               amb.ID,
			Name:             amb.FullName(),
			Phone:            amb.Phone,
			Recruits:         totalDrivers + totalPassengers,
			Active:           activeDrivers,
			Passengers:       totalPassengers,
			Commission:       monthlyCommission,
			CommissionTotal:  totalCommission,
			Target:           cfg.BARecruitsTarget,
			Streak:           amb.Streak,
			Joined:           amb.CreatedAt.Format("2006-01-02"),
			JoinedDays:       amb.JoinedDays(now),
			Trend:            Trend(thisWeek, lastWeek),
			ActivationRate:   ActivationRate(activeDrivers, totalDrivers),
			ThisWeekRecruits: thisWeek,
			LastWeekRecruits: lastWeek,
		}

		// City and zone come from the first enrolled driver's station.
		if first, err := s.store.FirstDriverByAmbassador(amb.ID); err == nil && first.Station != nil {
			overview.City = first.Station.City
			if overview.City == "" {
				overview.City = first.Station.Name
			}
			overview.Zone = first.Station.District
			if overview.Zone == "" {
				overview.Zone = first.Station.Name
			}
		}

		overview.Status = ClassifyStatus(overview.JoinedDays, overview.ActivationRate, overview.Recruits)
		out = append(out, overview)
	}

	return out, nil
}

// DriverOverview is one driver row of the manager dashboard.
type DriverOverview struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	City        string  `json:"city"`
	Plate       string  `json:"plate"`
	Vehicle     string  `json:"vehicle"`
	BA          string  `json:"ba"`
	BAID        uint    `json:"baId"`
	Status      string  `json:"status"`
	Passengers  int     `json:"passengers"`
	Trips       int     `json:"trips"`
	Revenue     float64 `json:"revenue"`
	Rating      float64 `json:"rating"`
	LastActive  string  `json:"lastActive"`
	Enrolled    string  `json:"enrolled"`
	Complaints  int     `json:"complaints"`
	CancelRate  int     `json:"cancelRate"`
	OnTimeRate  int     `json:"onTimeRate"`
	AvgTrip     float64 `json:"avgTrip"`
	WeeklyTrips []int   `json:"weeklyTrips"`
}

func normalizeDriverStatus(status string) string {
	switch strings.ToUpper(status) {
	case "ACTIF", "ACTIVE":
		return "actif"
	case "INSCRIT", "EN_ATTENTE":
		return "en_attente"
	default:
		return "inactif"
	}
}

// AllDrivers returns every driver with trip, revenue and weekly
// breakdown stats, newest first.
func (s *ManagerService) AllDrivers() ([]DriverOverview, error) {
	now := time.Now()

	drivers, err := s.store.GetAllDrivers()
	if err != nil {
		return nil, err
	}

	out := make([]DriverOverview, 0, len(drivers))
	for _, d := range drivers {
		trips, err := s.store.CountTransactionsByDriver(d.ID, nil)
		if err != nil {
			return nil, err
		}
		revenue, err := s.store.SumTransactionsByDriver(d.ID, nil)
		if err != nil {
			return nil, err
		}
		passengers, err := s.store.CountDistinctPassengersByDriver(d.ID)
		if err != nil {
			return nil, err
		}

		// Seven trailing daily buckets, oldest first.
		weekly := make([]int, 0, 7)
		for i := 6; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
			n, err := s.store.CountTransactionsByDriverBetween(d.ID, dayStart, dayStart.AddDate(0, 0, 1))
			if err != nil {
				return nil, err
			}
			weekly = append(weekly, n)
		}

		baName := ""
		var baID uint
		if d.Ambassador != nil {
			baName = d.Ambassador.FullName()
			baID = d.Ambassador.ID
		}

		vehicle := d.VehicleMake
		if vehicle == "" {
			vehicle = "Taxi"
		}

		lastActive := "-"
		if !d.UpdatedAt.IsZero() {
			lastActive = d.UpdatedAt.Format("2006-01-02")
		}

		avgTrip := revenue
		if trips > 0 {
			avgTrip = revenue / float64(trips)
		}

		out = append(out, DriverOverview{
			ID:          d.ID,
			Name:        d.FullName(),
			Phone:       d.Phone,
			City:        d.City(),
			Plate:       d.Plate,
			Vehicle:     vehicle,
			BA:          baName,
			BAID:        baID,
			Status:      normalizeDriverStatus(d.Status),
			Passengers:  passengers,
			Trips:       trips,
			Revenue:     revenue,
			Rating:      d.Rating,
			LastActive:  lastActive,
			Enrolled:    d.CreatedAt.Format("2006-01-02"),
			AvgTrip:     avgTrip,
			WeeklyTrips: weekly,
		})
	}

	return out, nil
}

// Territories groups ambassadors by their first driver's city and
// sums recruits, actives and commission per city, largest commission
// first. Ambassadors without a city are left out entirely.
func (s *ManagerService) Territories(ambassadors []AmbassadorOverview) []TerritoryStats {
	type bucket struct {
		bas        map[uint]bool
		recruits   int
		active     int
		commission float64
		thisWeek   int
		lastWeek   int
	}
	cities := make(map[string]*bucket)
	var order []string

	for _, ba := range ambassadors {
		if ba.City == "" {
			continue
		}
		b, ok := cities[ba.City]
		if !ok {
			b = &bucket{bas: make(map[uint]bool)}
			cities[ba.City] = b
			order = append(order, ba.City)
		}
		b.bas[ba.ID] = true
		b.recruits += ba.Recruits
		b.active += ba.Active
		b.commission += ba.Commission
		b.thisWeek += ba.ThisWeekRecruits
		b.lastWeek += ba.LastWeekRecruits
	}

	out := make([]TerritoryStats, 0, len(order))
	for _, name := range order {
		b := cities[name]
		out = append(out, TerritoryStats{
			Name:       name,
			BAs:        len(b.bas),
			Recruits:   b.recruits,
			Commission: b.commission,
			Active:     b.active,
			Growth:     Trend(b.thisWeek, b.lastWeek),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Commission > out[j].Commission })
	return out
}

// WeeklyEnrollments returns enrollment and activation counts for the
// seven trailing days, oldest first.
func (s *ManagerService) WeeklyEnrollments() (enrollments, activations []int, err error) {
	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		drivers, err := s.store.CountDriversCreatedBetween(dayStart, dayEnd)
		if err != nil {
			return nil, nil, err
		}
		passengers, err := s.store.CountPassengersCreatedBetween(dayStart, dayEnd)
		if err != nil {
			return nil, nil, err
		}
		activated, err := s.store.CountDriverActivationsBetween(dayStart, dayEnd)
		if err != nil {
			return nil, nil, err
		}

		enrollments = append(enrollments, drivers+passengers)
		activations = append(activations, activated)
	}
	return enrollments, activations, nil
}

// MonthlyRevenue returns commission revenue for the four trailing
// calendar months, oldest first. The current month runs to now.
func (s *ManagerService) MonthlyRevenue() ([]float64, error) {
	now := time.Now()
	out := make([]float64, 0, 4)

	for i := 3; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		var end time.Time
		if i > 0 {
			end = start.AddDate(0, 1, 0)
		} else {
			end = now
		}
		revenue, err := s.store.SumCommissionsBetween(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, revenue)
	}
	return out, nil
}

// ActivityItem is one entry of the manager activity feed.
type ActivityItem struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Time  string `json:"time"`
	Color string `json:"color"`

	timestamp time.Time
}

// ActivityFeed merges recent enrollments, commissions and activations
// into one feed, newest first, capped at limit.
func (s *ManagerService) ActivityFeed(limit int) ([]ActivityItem, error) {
	now := time.Now()
	var items []ActivityItem

	recentDrivers, err := s.store.ListRecentDrivers(5)
	if err != nil {
		return nil, err
	}
	for _, d := range recentDrivers {
		baName := "—"
		if d.Ambassador != nil {
			baName = d.Ambassador.FullName()
		}
		items = append(items, ActivityItem{
			Type:      "enrol",
			Text:      fmt.Sprintf("<strong>%s</strong> a enrôlé <strong>%s</strong>", baName, d.FullName()),
			Time:      timeAgo(d.CreatedAt, now),
			Color:     "var(--green)",
			timestamp: d.CreatedAt,
		})
	}

	recentCommissions, err := s.store.ListRecentCommissions(5)
	if err != nil {
		return nil, err
	}
	for _, c := range recentCommissions {
		baName := "—"
		if c.Ambassador != nil {
			baName = c.Ambassador.FullName()
		}
		items = append(items, ActivityItem{
			Type:      "commission",
			Text:      fmt.Sprintf("Commission de <strong>%s</strong> pour <strong>%s</strong>", formatXAF(c.Amount), baName),
			Time:      timeAgo(c.CreatedAt, now),
			Color:     "var(--amber)",
			timestamp: c.CreatedAt,
		})
	}

	activated, err := s.store.ListRecentActivatedDrivers(3)
	if err != nil {
		return nil, err
	}
	for _, d := range activated {
		baName := "—"
		if d.Ambassador != nil {
			baName = d.Ambassador.FullName()
		}
		items = append(items, ActivityItem{
			Type:      "activation",
			Text:      fmt.Sprintf("<strong>%s</strong> activé par <strong>%s</strong>", d.FullName(), baName),
			Time:      timeAgo(*d.ActivatedAt, now),
			Color:     "var(--blue)",
			timestamp: *d.ActivatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].timestamp.After(items[j].timestamp) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// BAGlobalConfig and DriverGlobalConfig mirror the frontend config
// panel shape.
type BAGlobalConfig struct {
	RecruitsTarget       int    `json:"recruitsTarget"`
	ActivationTarget     int    `json:"activationTarget"`
	MinPassengers        int    `json:"minPassengers"`
	CommissionPerRecruit int    `json:"commissionPerRecruit"`
	BonusStreak3         int    `json:"bonusStreak3"`
	BonusStreak7         int    `json:"bonusStreak7"`
	BonusTop             int    `json:"bonusTop"`
	Period               string `json:"period"`
}

type DriverGlobalConfig struct {
	MinTripsWeek      int     `json:"minTripsWeek"`
	MinRating         float64 `json:"minRating"`
	MaxCancelRate     int     `json:"maxCancelRate"`
	MinOnTimeRate     int     `json:"minOnTimeRate"`
	MinPassengersWeek int     `json:"minPassengersWeek"`
	BonusActive       int     `json:"bonusActive"`
	Period            string  `json:"period"`
}

// ObjectivePayload is the objective config as the dashboard consumes
// it.
type ObjectivePayload struct {
	BAGlobal     BAGlobalConfig          `json:"baGlobal"`
	DriverGlobal DriverGlobalConfig      `json:"driverGlobal"`
	Tiers        []models.CommissionTier `json:"tiers"`
}

// ObjectiveConfig returns the singleton config in frontend shape.
func (s *ManagerService) ObjectiveConfig() (*ObjectivePayload, error) {
	cfg, err := s.store.GetObjectiveConfig()
	if err != nil {
		return nil, err
	}
	return &ObjectivePayload{
		BAGlobal: BAGlobalConfig{
			RecruitsTarget:       cfg.BARecruitsTarget,
			ActivationTarget:     cfg.BAActivationTarget,
			MinPassengers:        cfg.BAMinPassengers,
			CommissionPerRecruit: cfg.BACommissionRecruit,
			BonusStreak3:         cfg.BABonusStreak3,
			BonusStreak7:         cfg.BABonusStreak7,
			BonusTop:             cfg.BABonusTop,
			Period:               cfg.BAPeriod,
		},
		DriverGlobal: DriverGlobalConfig{
			MinTripsWeek:      cfg.DrvMinTripsWeek,
			MinRating:         cfg.DrvMinRating,
			MaxCancelRate:     cfg.DrvMaxCancelRate,
			MinOnTimeRate:     cfg.DrvMinOnTimeRate,
			MinPassengersWeek: cfg.DrvMinPassengersWeek,
			BonusActive:       cfg.DrvBonusActive,
			Period:            cfg.DrvPeriod,
		},
		Tiers: cfg.TierList(),
	}, nil
}

// ConfigUpdate is a partial objective-config update; nil sections and
// fields keep their current values.
type ConfigUpdate struct {
	BAGlobal *struct {
		RecruitsTarget       *int    `json:"recruitsTarget"`
		ActivationTarget     *int    `json:"activationTarget"`
		MinPassengers        *int    `json:"minPassengers"`
		CommissionPerRecruit *int    `json:"commissionPerRecruit"`
		BonusStreak3         *int    `json:"bonusStreak3"`
		BonusStreak7         *int    `json:"bonusStreak7"`
		BonusTop             *int    `json:"bonusTop"`
	} `json:"baGlobal"`
	DriverGlobal *struct {
		MinTripsWeek      *int     `json:"minTripsWeek"`
		MinRating         *float64 `json:"minRating"`
		MaxCancelRate     *int     `json:"maxCancelRate"`
		MinOnTimeRate     *int     `json:"minOnTimeRate"`
		MinPassengersWeek *int     `json:"minPassengersWeek"`
		BonusActive       *int     `json:"bonusActive"`
	} `json:"driverGlobal"`
	Tiers []models.CommissionTier `json:"tiers"`
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// UpdateObjectiveConfig applies a partial update to the singleton.
func (s *ManagerService) UpdateObjectiveConfig(update *ConfigUpdate) error {
	cfg, err := s.store.GetObjectiveConfig()
	if err != nil {
		return err
	}

	if bg := update.BAGlobal; bg != nil {
		setInt(&cfg.BARecruitsTarget, bg.RecruitsTarget)
		setInt(&cfg.BAActivationTarget, bg.ActivationTarget)
		setInt(&cfg.BAMinPassengers, bg.MinPassengers)
		setInt(&cfg.BACommissionRecruit, bg.CommissionPerRecruit)
		setInt(&cfg.BABonusStreak3, bg.BonusStreak3)
		setInt(&cfg.BABonusStreak7, bg.BonusStreak7)
		setInt(&cfg.BABonusTop, bg.BonusTop)
	}
	if dg := update.DriverGlobal; dg != nil {
		setInt(&cfg.DrvMinTripsWeek, dg.MinTripsWeek)
		if dg.MinRating != nil {
			cfg.DrvMinRating = *dg.MinRating
		}
		setInt(&cfg.DrvMaxCancelRate, dg.MaxCancelRate)
		setInt(&cfg.DrvMinOnTimeRate, dg.MinOnTimeRate)
		setInt(&cfg.DrvMinPassengersWeek, dg.MinPassengersWeek)
		setInt(&cfg.DrvBonusActive, dg.BonusActive)
	}
	if update.Tiers != nil {
		if err := cfg.SetTiers(update.Tiers); err != nil {
			return err
		}
	}

	return s.store.SaveObjectiveConfig(cfg)
}

// FullDashboard is the complete manager dashboard payload.
type FullDashboard struct {
	Ambassadors       []AmbassadorOverview `json:"ambassadors"`
	Drivers           []DriverOverview     `json:"drivers"`
	Territories       []TerritoryStats     `json:"territories"`
	WeeklyEnrolments  []int                `json:"weeklyEnrolments"`
	WeeklyActivations []int                `json:"weeklyActivations"`
	MonthlyRevenue    []float64            `json:"monthlyRevenue"`
	Activity          []ActivityItem       `json:"activity"`
	Alerts            []Alert              `json:"alerts"`
	ObjConfig         *ObjectivePayload    `json:"objConfig"`
}

// Dashboard assembles everything the manager front end needs.
func (s *ManagerService) Dashboard() (*FullDashboard, error) {
	ambassadors, err := s.AllAmbassadors()
	if err != nil {
		return nil, err
	}
	drivers, err := s.AllDrivers()
	if err != nil {
		return nil, err
	}
	enrollments, activations, err := s.WeeklyEnrollments()
	if err != nil {
		return nil, err
	}
	revenue, err := s.MonthlyRevenue()
	if err != nil {
		return nil, err
	}
	activity, err := s.ActivityFeed(10)
	if err != nil {
		return nil, err
	}
	objConfig, err := s.ObjectiveConfig()
	if err != nil {
		return nil, err
	}

	return &FullDashboard{
		Ambassadors:       ambassadors,
		Drivers:           drivers,
		Territories:       s.Territories(ambassadors),
		WeeklyEnrolments:  enrollments,
		WeeklyActivations: activations,
		MonthlyRevenue:    revenue,
		Activity:          activity,
		Alerts:            DeriveAlerts(ambassadors),
		ObjConfig:         objConfig,
	}, nil
}
