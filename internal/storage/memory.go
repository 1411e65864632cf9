package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
)

// MemoryStore holds all data in memory. It backs local development
// (USE_MEMORY_STORE=true) and the test suite. Uniqueness constraints
// and the composite enrollment transactions behave like the database
// store: a failed composite op leaves nothing behind.
type MemoryStore struct {
	mu sync.RWMutex

	ambassadors    []*models.Ambassador
	drivers        []*models.Driver
	passengers     []*models.Passenger
	stations       []*models.Station
	commissions    []*models.Commission
	transactions   []*models.Transaction
	withdrawals    []*models.WithdrawalRequest
	enrollments    []*models.TaxiEnrollment
	accounts       []*models.Account
	challenges     []*models.Challenge
	participations []*models.ChallengeParticipation
	objective      *models.ObjectiveConfig

	nextID map[string]uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: make(map[string]uint)}
}

func (m *MemoryStore) allocID(kind string) uint {
	m.nextID[kind]++
	return m.nextID[kind]
}

func stampNew(createdAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}

func inWindow(t time.Time, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func matchesStatus(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// Ambassador operations

func (m *MemoryStore) CreateAmbassador(a *models.Ambassador) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createAmbassadorLocked(a)
}

func (m *MemoryStore) createAmbassadorLocked(a *models.Ambassador) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	for _, other := range m.ambassadors {
		if other.Email == a.Email || other.Phone == a.Phone {
			return ErrDuplicateKey
		}
	}
	if a.ID == 0 {
		a.ID = m.allocID("ambassador")
	}
	stampNew(&a.CreatedAt)
	if a.Level == "" {
		a.Level = "Brand Ambassador"
	}
	if a.Status == "" {
		a.Status = "ACTIF"
	}
	m.ambassadors = append(m.ambassadors, a)
	return nil
}

func (m *MemoryStore) GetAmbassadorByID(id uint) (*models.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.ambassadors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAmbassadorByEmail(email string) (*models.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range m.ambassadors {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllAmbassadors() ([]*models.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Ambassador, len(m.ambassadors))
	copy(out, m.ambassadors)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Driver operations

func (m *MemoryStore) CreateDriver(d *models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createDriverLocked(d)
}

func (m *MemoryStore) createDriverLocked(d *models.Driver) error {
	for _, other := range m.drivers {
		if other.Phone == d.Phone || other.Plate == d.Plate {
			return ErrDuplicateKey
		}
	}
	if d.ID == 0 {
		d.ID = m.allocID("driver")
	}
	stampNew(&d.CreatedAt)
	if d.Status == "" {
		d.Status = models.DriverStatusEnrolled
	}
	m.drivers = append(m.drivers, d)
	return nil
}

func (m *MemoryStore) resolveDriverLinks(d *models.Driver) *models.Driver {
	if d.Ambassador == nil {
		for _, a := range m.ambassadors {
			if a.ID == d.AmbassadorID {
				d.Ambassador = a
				break
			}
		}
	}
	if d.Station == nil && d.StationID != nil {
		for _, st := range m.stations {
			if st.ID == *d.StationID {
				d.Station = st
				break
			}
		}
	}
	return d
}

func (m *MemoryStore) GetDriverByID(id uint) (*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.ID == id {
			return m.resolveDriverLinks(d), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllDrivers() ([]*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		out = append(out, m.resolveDriverLinks(d))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) FirstDriverByAmbassador(ambassadorID uint) (*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var first *models.Driver
	for _, d := range m.drivers {
		if d.AmbassadorID != ambassadorID {
			continue
		}
		if first == nil || d.CreatedAt.Before(first.CreatedAt) {
			first = d
		}
	}
	if first == nil {
		return nil, ErrNotFound
	}
	return m.resolveDriverLinks(first), nil
}

func (m *MemoryStore) ListRecentDriversByAmbassador(ambassadorID uint, limit int) ([]*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Driver
	for _, d := range m.drivers {
		if d.AmbassadorID == ambassadorID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListRecentDrivers(limit int) ([]*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		out = append(out, m.resolveDriverLinks(d))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListRecentActivatedDrivers(limit int) ([]*models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Driver
	for _, d := range m.drivers {
		if d.ActivatedAt != nil {
			out = append(out, m.resolveDriverLinks(d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ActivatedAt.After(*out[j].ActivatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountDriversByAmbassador(ambassadorID uint, since *time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.drivers {
		if d.AmbassadorID == ambassadorID && (since == nil || !d.CreatedAt.Before(*since)) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountActiveDriversByAmbassador(ambassadorID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.drivers {
		if d.AmbassadorID == ambassadorID && d.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountDriversByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.drivers {
		if d.AmbassadorID == ambassadorID && inWindow(d.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountDriversCreatedBetween(start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.drivers {
		if inWindow(d.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountDriverActivationsBetween(start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.drivers {
		if d.ActivatedAt != nil && inWindow(*d.ActivatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

// Passenger operations

func (m *MemoryStore) createPassengerLocked(p *models.Passenger) error {
	for _, other := range m.passengers {
		if other.Phone == p.Phone {
			return ErrDuplicateKey
		}
	}
	if p.ID == 0 {
		p.ID = m.allocID("passenger")
	}
	stampNew(&p.CreatedAt)
	if p.Status == "" {
		p.Status = "INSCRIT"
	}
	m.passengers = append(m.passengers, p)
	return nil
}

func (m *MemoryStore) FindPassengerByPhone(phone string) (*models.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.passengers {
		if p.Phone == phone {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListRecentPassengersByAmbassador(ambassadorID uint, limit int) ([]*models.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Passenger
	for _, p := range m.passengers {
		if p.AmbassadorID == ambassadorID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountPassengersByAmbassador(ambassadorID uint, since *time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.passengers {
		if p.AmbassadorID == ambassadorID && (since == nil || !p.CreatedAt.Before(*since)) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountPassengersByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.passengers {
		if p.AmbassadorID == ambassadorID && inWindow(p.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountPassengersCreatedBetween(start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.passengers {
		if inWindow(p.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

// Station operations

func (m *MemoryStore) GetOrCreateStation(name, city string) (*models.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.stations {
		if st.Name == name {
			return st, nil
		}
	}
	st := &models.Station{Name: name, City: city, Active: true}
	st.ID = m.allocID("station")
	stampNew(&st.CreatedAt)
	m.stations = append(m.stations, st)
	return st, nil
}

func (m *MemoryStore) ListStations() ([]*models.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Station, len(m.stations))
	copy(out, m.stations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Commission operations

func (m *MemoryStore) createCommissionLocked(c *models.Commission) error {
	if c.ID == 0 {
		c.ID = m.allocID("commission")
	}
	stampNew(&c.CreatedAt)
	if c.Status == "" {
		c.Status = models.CommissionStatusPending
	}
	m.commissions = append(m.commissions, c)
	return nil
}

// CreateCommission exists for seeding and tests; production code only
// creates commissions through the composite enrollment operations.
func (m *MemoryStore) CreateCommission(c *models.Commission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCommissionLocked(c)
}

func (m *MemoryStore) SumCommissionsByAmbassador(ambassadorID uint, statuses []string, since *time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0.0
	for _, c := range m.commissions {
		if c.AmbassadorID != ambassadorID {
			continue
		}
		if !matchesStatus(c.Status, statuses) {
			continue
		}
		if since != nil && c.CreatedAt.Before(*since) {
			continue
		}
		total += c.Amount
	}
	return total, nil
}

func (m *MemoryStore) SumCommissionsBetween(start, end time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0.0
	for _, c := range m.commissions {
		if inWindow(c.CreatedAt, start, end) {
			total += c.Amount
		}
	}
	return total, nil
}

func (m *MemoryStore) ListRecentCommissions(limit int) ([]*models.Commission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Commission, len(m.commissions))
	copy(out, m.commissions)
	for _, c := range out {
		if c.Ambassador == nil {
			for _, a := range m.ambassadors {
				if a.ID == c.AmbassadorID {
					c.Ambassador = a
					break
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.transactions {
		if other.Reference == t.Reference {
			return ErrDuplicateKey
		}
	}
	if t.ID == 0 {
		t.ID = m.allocID("transaction")
	}
	stampNew(&t.CreatedAt)
	if t.CommissionRate == 0 {
		t.CommissionRate = models.DefaultCommissionRate
	}
	if t.CommissionAmount == 0 {
		t.CommissionAmount = t.Amount * t.CommissionRate / 100
	}
	if t.Status == "" {
		t.Status = "PENDING"
	}
	m.transactions = append(m.transactions, t)
	return nil
}

func (m *MemoryStore) CountTransactionsByDriver(driverID uint, since *time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, t := range m.transactions {
		if t.DriverID == driverID && (since == nil || !t.CreatedAt.Before(*since)) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountTransactionsByDriverBetween(driverID uint, start, end time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, t := range m.transactions {
		if t.DriverID == driverID && inWindow(t.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) SumTransactionsByDriver(driverID uint, since *time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0.0
	for _, t := range m.transactions {
		if t.DriverID == driverID && (since == nil || !t.CreatedAt.Before(*since)) {
			total += t.Amount
		}
	}
	return total, nil
}

func (m *MemoryStore) CountDistinctPassengersByDriver(driverID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[uint]bool)
	for _, t := range m.transactions {
		if t.DriverID == driverID && t.PassengerID != nil {
			seen[*t.PassengerID] = true
		}
	}
	return len(seen), nil
}

func (m *MemoryStore) ListRecentTransactionsByDriver(driverID uint, limit int) ([]*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Transaction
	for _, t := range m.transactions {
		if t.DriverID != driverID {
			continue
		}
		if t.Passenger == nil && t.PassengerID != nil {
			for _, p := range m.passengers {
				if p.ID == *t.PassengerID {
					t.Passenger = p
					break
				}
			}
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Withdrawal operations

func (m *MemoryStore) CreateWithdrawal(w *models.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.withdrawals {
		if other.Reference == w.Reference {
			return ErrDuplicateKey
		}
	}
	if w.ID == 0 {
		w.ID = m.allocID("withdrawal")
	}
	stampNew(&w.CreatedAt)
	if w.Status == "" {
		w.Status = models.WithdrawalStatusPending
	}
	m.withdrawals = append(m.withdrawals, w)
	return nil
}

func (m *MemoryStore) SumWithdrawalsByEmail(email string, statuses []string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0.0
	for _, w := range m.withdrawals {
		if w.AmbassadorEmail == email && matchesStatus(w.Status, statuses) {
			total += w.Amount
		}
	}
	return total, nil
}

func (m *MemoryStore) ListWithdrawalsByEmail(email string, limit int) ([]*models.WithdrawalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.WithdrawalRequest
	for _, w := range m.withdrawals {
		if w.AmbassadorEmail == email {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Taxi referral operations

func (m *MemoryStore) CountEnrollmentsByReferrer(driverID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.enrollments {
		if e.ReferrerDriverID == driverID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) ListEnrollmentsByReferrer(driverID uint, limit int) ([]*models.TaxiEnrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.TaxiEnrollment
	for _, e := range m.enrollments {
		if e.ReferrerDriverID != driverID {
			continue
		}
		if e.Recruit == nil {
			for _, d := range m.drivers {
				if d.ID == e.RecruitDriverID {
					e.Recruit = d
					break
				}
			}
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Composite enrollment operations

func (m *MemoryStore) CreateDriverWithCommission(d *models.Driver, c *models.Commission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createDriverLocked(d); err != nil {
		return err
	}
	c.RecruitID = d.ID
	if err := m.createCommissionLocked(c); err != nil {
		// Roll the driver back so the pair commits together or not at all.
		m.drivers = m.drivers[:len(m.drivers)-1]
		return err
	}
	return nil
}

func (m *MemoryStore) CreatePassengerWithCommission(p *models.Passenger, c *models.Commission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createPassengerLocked(p); err != nil {
		return err
	}
	c.RecruitID = p.ID
	if err := m.createCommissionLocked(c); err != nil {
		m.passengers = m.passengers[:len(m.passengers)-1]
		return err
	}
	return nil
}

func (m *MemoryStore) CreateDriverWithEnrollment(d *models.Driver, referrerDriverID uint, c *models.Commission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.enrollments {
		if e.ReferrerDriverID == referrerDriverID && e.RecruitDriverID == d.ID {
			return ErrDuplicateKey
		}
	}
	if err := m.createDriverLocked(d); err != nil {
		return err
	}
	e := &models.TaxiEnrollment{ReferrerDriverID: referrerDriverID, RecruitDriverID: d.ID}
	e.ID = m.allocID("enrollment")
	stampNew(&e.CreatedAt)
	m.enrollments = append(m.enrollments, e)
	if c != nil {
		c.RecruitID = d.ID
		if err := m.createCommissionLocked(c); err != nil {
			m.enrollments = m.enrollments[:len(m.enrollments)-1]
			m.drivers = m.drivers[:len(m.drivers)-1]
			return err
		}
	}
	return nil
}

// Challenge operations

func (m *MemoryStore) CreateChallenge(c *models.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.allocID("challenge")
	}
	stampNew(&c.CreatedAt)
	m.challenges = append(m.challenges, c)
	return nil
}

func (m *MemoryStore) ListActiveChallenges(now time.Time) ([]*models.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Challenge
	for _, c := range m.challenges {
		if c.Active && !c.StartsAt.After(now) && !c.EndsAt.Before(now) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndsAt.Before(out[j].EndsAt) })
	return out, nil
}

func (m *MemoryStore) CreateParticipation(p *models.ChallengeParticipation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.participations {
		if other.AmbassadorID == p.AmbassadorID && other.ChallengeID == p.ChallengeID {
			return ErrDuplicateKey
		}
	}
	if p.ID == 0 {
		p.ID = m.allocID("participation")
	}
	stampNew(&p.CreatedAt)
	m.participations = append(m.participations, p)
	return nil
}

func (m *MemoryStore) ListParticipationsByAmbassador(ambassadorID uint) ([]*models.ChallengeParticipation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.ChallengeParticipation
	for _, p := range m.participations {
		if p.AmbassadorID == ambassadorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Objective config

func (m *MemoryStore) GetObjectiveConfig() (*models.ObjectiveConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objective == nil {
		cfg := &models.ObjectiveConfig{
			BARecruitsTarget:     12,
			BAActivationTarget:   60,
			BAMinPassengers:      10,
			BACommissionRecruit:  5000,
			BABonusStreak3:       3000,
			BABonusStreak7:       8000,
			BABonusTop:           15000,
			BAPeriod:             "mensuel",
			DrvMinTripsWeek:      15,
			DrvMinRating:         4.0,
			DrvMaxCancelRate:     10,
			DrvMinOnTimeRate:     85,
			DrvMinPassengersWeek: 5,
			DrvBonusActive:       2000,
			DrvPeriod:            "hebdomadaire",
		}
		cfg.ID = 1
		stampNew(&cfg.CreatedAt)
		if err := cfg.SetTiers(models.DefaultTiers()); err != nil {
			return nil, err
		}
		m.objective = cfg
	}
	return m.objective, nil
}

func (m *MemoryStore) SaveObjectiveConfig(cfg *models.ObjectiveConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objective = cfg
	return nil
}

// Account operations

func (m *MemoryStore) CreateAccount(a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	for _, other := range m.accounts {
		if other.Email == a.Email {
			return ErrDuplicateKey
		}
	}
	if a.ID == 0 {
		a.ID = m.allocID("account")
	}
	stampNew(&a.CreatedAt)
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *MemoryStore) GetAccountByEmail(email string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateAccount(a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.accounts {
		if other.ID == a.ID {
			m.accounts[i] = a
			return nil
		}
	}
	return ErrNotFound
}
