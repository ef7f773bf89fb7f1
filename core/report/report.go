// Package report derives read-only aggregates (fee summaries, dashboard figures,
// class rollups, activity feed) from full store snapshots. Nothing is cached:
// every call reads the store again.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const (
	activityWindow = 7 * 24 * time.Hour

	maxRecentPayments   = 5
	maxRecentAdmissions = 3
	maxRecentExpenses   = 3
)

// Activity types
const (
	ActivityPayment   = "payment"
	ActivityAdmission = "admission"
	ActivityExpense   = "expense"
)

type (
	// StudentWithFees is a Student with its fee totals and average exam score.
	StudentWithFees struct {
		school.Student
		TotalFees          core.Decimal `json:"totalFees"`
		PaidFees           core.Decimal `json:"paidFees"`
		PendingFees        core.Decimal `json:"pendingFees"`
		FeeStatus          string       `json:"feeStatus"` // paid, pending or overdue
		AveragePerformance int          `json:"averagePerformance"`
	}

	DashboardStats struct {
		TotalStudents      int          `json:"totalStudents"`
		TotalFeeCollection core.Decimal `json:"totalFeeCollection"`
		PendingFees        core.Decimal `json:"pendingFees"`
		MonthlyExpenses    core.Decimal `json:"monthlyExpenses"`
		OverdueStudents    int          `json:"overdueStudents"`
		AveragePerformance int          `json:"averagePerformance"`
	}

	ClassPerformance struct {
		ClassName          string `json:"className"`
		StudentCount       int    `json:"studentCount"`
		AveragePerformance int    `json:"averagePerformance"`
		Above90Count       int    `json:"above90Count"`
		Below60Count       int    `json:"below60Count"`
	}

	Activity struct {
		Type      string        `json:"type"`
		Message   string        `json:"message"`
		Amount    *core.Decimal `json:"amount,omitempty"`
		Details   string        `json:"details,omitempty"`
		Timestamp time.Time     `json:"timestamp"`
	}
)

// Engine computes aggregates over a school.Store.
type Engine struct {
	store school.Store
	now   func() time.Time
}

func NewEngine(store school.Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// NewEngineWithClock is NewEngine with a fixed clock, for tests.
func NewEngineWithClock(store school.Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// StudentsWithFees returns every student (ascending id) with its fee totals.
func (e *Engine) StudentsWithFees(ctx context.Context) ([]StudentWithFees, error) {
	students, err := e.store.ListStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	fees, err := e.store.ListFees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing fees")
	}
	perfs, err := e.store.ListPerformances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing performances")
	}

	now := e.now()
	feesByStudent := make(map[int][]school.Fee)
	for _, f := range fees {
		feesByStudent[f.StudentID] = append(feesByStudent[f.StudentID], f)
	}
	perfsByStudent := groupPerformances(perfs)

	view := make([]StudentWithFees, 0, len(students))
	for _, s := range students {
		view = append(view, withFees(s, feesByStudent[s.ID], perfsByStudent[s.ID], now))
	}
	return view, nil
}

func withFees(s school.Student, fees []school.Fee, perfs []school.Performance, now time.Time) StudentWithFees {
	sf := StudentWithFees{Student: s, FeeStatus: school.FeePaid}
	overdue := false
	for _, f := range fees {
		sf.TotalFees = sf.TotalFees.Add(f.Amount)
		sf.PaidFees = sf.PaidFees.Add(f.PaidAmount)
		if f.IsOverdue(now) {
			overdue = true
		}
	}
	sf.PendingFees = sf.TotalFees.Sub(sf.PaidFees)
	if sf.PendingFees.IsPositive() {
		sf.FeeStatus = school.FeePending
		if overdue {
			sf.FeeStatus = school.FeeOverdue
		}
	}
	if avg, ok := meanPercentage(perfs); ok {
		sf.AveragePerformance = roundInt(avg)
	}
	return sf
}

// SearchStudents matches q, case-insensitively, as a substring of the first name, last name,
// email, registry number or class.
func (e *Engine) SearchStudents(ctx context.Context, q string) ([]StudentWithFees, error) {
	view, err := e.StudentsWithFees(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	found := make([]StudentWithFees, 0)
	for _, sf := range view {
		for _, field := range []string{sf.FirstName, sf.LastName, sf.Email, sf.RegistryNo, sf.Class} {
			if strings.Contains(strings.ToLower(field), q) {
				found = append(found, sf)
				break
			}
		}
	}
	return found, nil
}

// StudentsByClass returns the students whose class is exactly className.
func (e *Engine) StudentsByClass(ctx context.Context, className string) ([]StudentWithFees, error) {
	view, err := e.StudentsWithFees(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]StudentWithFees, 0)
	for _, sf := range view {
		if sf.Class == className {
			found = append(found, sf)
		}
	}
	return found, nil
}

func (e *Engine) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	students, err := e.store.ListStudents(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "listing students")
	}
	fees, err := e.store.ListFees(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "listing fees")
	}
	expenses, err := e.store.ListExpenses(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "listing expenses")
	}
	perfs, err := e.store.ListPerformances(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "listing performances")
	}

	now := e.now()
	stats.TotalStudents = len(students)

	overdue := make(map[int]struct{})
	for _, f := range fees {
		stats.TotalFeeCollection = stats.TotalFeeCollection.Add(f.PaidAmount)
		stats.PendingFees = stats.PendingFees.Add(f.Outstanding())
		if f.IsOverdue(now) {
			overdue[f.StudentID] = struct{}{}
		}
	}
	stats.OverdueStudents = len(overdue)

	// the current month is taken in the clock's location
	year, month, _ := now.Date()
	for _, exp := range expenses {
		y, m, _ := exp.Date.In(now.Location()).Date()
		if y == year && m == month {
			stats.MonthlyExpenses = stats.MonthlyExpenses.Add(exp.Amount)
		}
	}

	if avg, ok := meanPercentage(perfs); ok {
		stats.AveragePerformance = roundInt(avg)
	}
	return stats, nil
}

// ClassPerformances returns one rollup per class, in class id order.
// The class average divides the sum of per-student averages by the number of students
// in the class: students without any exam record count as 0 but are left out of the
// above-90 / below-60 tallies.
func (e *Engine) ClassPerformances(ctx context.Context) ([]ClassPerformance, error) {
	classes, err := e.store.ListClasses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing classes")
	}
	students, err := e.store.ListStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	perfs, err := e.store.ListPerformances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing performances")
	}

	perfsByStudent := groupPerformances(perfs)
	studentsByClass := make(map[string][]school.Student)
	for _, s := range students {
		studentsByClass[s.Class] = append(studentsByClass[s.Class], s)
	}

	ninety, sixty := decimal.NewFromInt(90), decimal.NewFromInt(60)
	rollups := make([]ClassPerformance, 0, len(classes))
	for _, c := range classes {
		members := studentsByClass[c.Name]
		cp := ClassPerformance{ClassName: c.Name, StudentCount: len(members)}
		if cp.StudentCount == 0 {
			rollups = append(rollups, cp)
			continue
		}

		total := decimal.Zero
		for _, s := range members {
			avg, ok := meanPercentage(perfsByStudent[s.ID])
			if !ok {
				continue
			}
			total = total.Add(avg)
			if avg.GreaterThanOrEqual(ninety) {
				cp.Above90Count++
			}
			if avg.LessThan(sixty) {
				cp.Below60Count++
			}
		}
		cp.AveragePerformance = roundInt(total.Div(decimal.NewFromInt(int64(cp.StudentCount))))
		rollups = append(rollups, cp)
	}
	return rollups, nil
}

// RecentActivities merges the latest fee payments, admissions and expenses of the last
// seven days, most recent first.
func (e *Engine) RecentActivities(ctx context.Context) ([]Activity, error) {
	students, err := e.store.ListStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	fees, err := e.store.ListFees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing fees")
	}
	expenses, err := e.store.ListExpenses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing expenses")
	}

	now := e.now()
	since := now.Add(-activityWindow)
	// recent means within (since, now]: future-dated records are not activity yet
	recent := func(t time.Time) bool { return t.After(since) && !t.After(now) }
	byID := make(map[int]school.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	payments := make([]Activity, 0)
	for _, f := range fees {
		s, ok := byID[f.StudentID]
		if !ok || !f.PaidDate.Valid || !recent(f.PaidDate.Time) {
			continue
		}
		amount := f.PaidAmount
		payments = append(payments, Activity{
			Type:      ActivityPayment,
			Message:   "Fee payment received from " + s.FullName(),
			Amount:    &amount,
			Timestamp: f.PaidDate.Time,
		})
	}

	admissions := make([]Activity, 0)
	for _, s := range students {
		if !recent(s.AdmissionDate) {
			continue
		}
		admissions = append(admissions, Activity{
			Type:      ActivityAdmission,
			Message:   "New student enrolled: " + s.FullName(),
			Details:   s.Class,
			Timestamp: s.AdmissionDate,
		})
	}

	spent := make([]Activity, 0)
	for _, exp := range expenses {
		if !recent(exp.Date) {
			continue
		}
		amount := exp.Amount
		spent = append(spent, Activity{
			Type:      ActivityExpense,
			Message:   "Expense recorded: " + exp.Description,
			Amount:    &amount,
			Timestamp: exp.Date,
		})
	}

	activities := make([]Activity, 0, maxRecentPayments+maxRecentAdmissions+maxRecentExpenses)
	activities = append(activities, latest(payments, maxRecentPayments)...)
	activities = append(activities, latest(admissions, maxRecentAdmissions)...)
	activities = append(activities, latest(spent, maxRecentExpenses)...)
	sortByTimestampDesc(activities)
	return activities, nil
}

// latest returns the n most recent activities.
func latest(activities []Activity, n int) []Activity {
	sortByTimestampDesc(activities)
	if len(activities) > n {
		return activities[:n]
	}
	return activities
}

func sortByTimestampDesc(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
}

func groupPerformances(perfs []school.Performance) map[int][]school.Performance {
	grouped := make(map[int][]school.Performance)
	for _, p := range perfs {
		grouped[p.StudentID] = append(grouped[p.StudentID], p)
	}
	return grouped
}

// meanPercentage returns the unrounded mean percentage; ok is false when perfs is empty.
func meanPercentage(perfs []school.Performance) (mean decimal.Decimal, ok bool) {
	if len(perfs) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, p := range perfs {
		sum = sum.Add(p.Percentage.Decimal)
	}
	return sum.Div(decimal.NewFromInt(int64(len(perfs)))), true
}

// roundInt rounds half away from zero to an integer (averages are never negative).
func roundInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
