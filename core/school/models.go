package school

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// Student statuses
const (
	StudentActive    = "active"
	StudentInactive  = "inactive"
	StudentGraduated = "graduated"
)

// Fee statuses.
// FeeOverdue is never stored: a fee is overdue when it is still pending past its due date.
const (
	FeePending = "pending"
	FeePaid    = "paid"
	FeeOverdue = "overdue"
	FeePartial = "partial"
)

const DefaultClassCapacity = 40

type Student struct {
	ID            int         `json:"id" db:"id"`
	RegistryNo    string      `json:"registryNo" db:"registry_no"`
	FirstName     string      `json:"firstName" db:"first_name"`
	LastName      string      `json:"lastName" db:"last_name"`
	Email         string      `json:"email" db:"email"`
	Phone         null.String `json:"phone" db:"phone"`
	DateOfBirth   null.Time   `json:"dateOfBirth" db:"date_of_birth"`
	Address       null.String `json:"address" db:"address"`
	Class         string      `json:"class" db:"class"` // Class.Name; not a foreign key
	Section       null.String `json:"section" db:"section"`
	AdmissionDate time.Time   `json:"admissionDate" db:"admission_date"` // UTC
	GuardianName  null.String `json:"guardianName" db:"guardian_name"`
	GuardianPhone null.String `json:"guardianPhone" db:"guardian_phone"`
	Status        string      `json:"status" db:"status"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type Fee struct {
	ID            int          `json:"id" db:"id"`
	StudentID     int          `json:"studentId" db:"student_id"`
	AcademicYear  string       `json:"academicYear" db:"academic_year"`
	FeeType       string       `json:"feeType" db:"fee_type"`
	Amount        core.Decimal `json:"amount" db:"amount"`
	DueDate       time.Time    `json:"dueDate" db:"due_date"`
	PaidDate      null.Time    `json:"paidDate" db:"paid_date"`
	PaidAmount    core.Decimal `json:"paidAmount" db:"paid_amount"`
	Status        string       `json:"status" db:"status"`
	PaymentMethod null.String  `json:"paymentMethod" db:"payment_method"`
	TransactionID null.String  `json:"transactionId" db:"transaction_id"`
	Remarks       null.String  `json:"remarks" db:"remarks"`
}

// IsOverdue reports whether the fee is still pending past its due date.
func (f Fee) IsOverdue(now time.Time) bool {
	return f.Status == FeePending && f.DueDate.Before(now)
}

// Outstanding returns amount - paidAmount, floored at 0.
func (f Fee) Outstanding() core.Decimal {
	out := f.Amount.Sub(f.PaidAmount)
	if out.IsNegative() {
		return core.Decimal{}
	}
	return out
}

type Expense struct {
	ID            int          `json:"id" db:"id"`
	Category      string       `json:"category" db:"category"`
	Description   string       `json:"description" db:"description"`
	Amount        core.Decimal `json:"amount" db:"amount"`
	Date          time.Time    `json:"date" db:"date"`
	PaymentMethod null.String  `json:"paymentMethod" db:"payment_method"`
	Vendor        null.String  `json:"vendor" db:"vendor"`
	InvoiceNumber null.String  `json:"invoiceNumber" db:"invoice_number"`
	ApprovedBy    null.String  `json:"approvedBy" db:"approved_by"`
	Remarks       null.String  `json:"remarks" db:"remarks"`
}

type Performance struct {
	ID            int          `json:"id" db:"id"`
	StudentID     int          `json:"studentId" db:"student_id"`
	Subject       string       `json:"subject" db:"subject"`
	ExamType      string       `json:"examType" db:"exam_type"`
	AcademicYear  string       `json:"academicYear" db:"academic_year"`
	Term          string       `json:"term" db:"term"`
	MaxMarks      int          `json:"maxMarks" db:"max_marks"`
	ObtainedMarks int          `json:"obtainedMarks" db:"obtained_marks"`
	Grade         null.String  `json:"grade" db:"grade"`
	Percentage    core.Decimal `json:"percentage" db:"percentage"`
	ExamDate      null.Time    `json:"examDate" db:"exam_date"`
	Remarks       null.String  `json:"remarks" db:"remarks"`
}

// computePercentage sets Percentage = round2(ObtainedMarks / MaxMarks × 100).
func (p *Performance) computePercentage() {
	p.Percentage = core.Percent(int64(p.ObtainedMarks), int64(p.MaxMarks))
}

type Class struct {
	ID           int         `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"` // e.g. 10-A
	Standard     int         `json:"standard" db:"standard"`
	Section      string      `json:"section" db:"section"`
	ClassTeacher null.String `json:"classTeacher" db:"class_teacher"`
	Room         null.String `json:"room" db:"room"`
	Capacity     int         `json:"capacity" db:"capacity"`
}

// optString maps "" to NULL.
func optString(s string) null.String {
	s = core.CleanString(s)
	return null.NewString(s, s != "")
}

// optDate parses s into a nullable date; "" maps to NULL. s must have been validated.
func optDate(s string) null.Time {
	if core.CleanString(s) == "" {
		return null.Time{}
	}
	t, err := core.ParseDate(s)
	return null.NewTime(t, err == nil)
}

func mustDate(s string) time.Time {
	t, _ := core.ParseDate(s)
	return t
}

func mustAmount(s string) core.Decimal {
	d, _ := core.ParseDecimal(s)
	return d
}
