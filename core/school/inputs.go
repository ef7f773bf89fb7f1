package school

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

func cleanPtr(s *string, lower ...bool) {
	if s != nil {
		*s = core.CleanString(*s, lower...)
	}
}

// Student inputs

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	RegistryNo    string `json:"registryNo" validate:"required,max=20"`
	FirstName     string `json:"firstName" validate:"required,max=50"`
	LastName      string `json:"lastName" validate:"required,max=50"`
	Email         string `json:"email" validate:"required,email,max=100"`
	Phone         string `json:"phone" validate:"max=15"`
	DateOfBirth   string `json:"dateOfBirth" validate:"omitempty,isodate"`
	Address       string `json:"address"`
	Class         string `json:"class" validate:"required,max=20"`
	Section       string `json:"section" validate:"max=10"`
	GuardianName  string `json:"guardianName" validate:"max=100"`
	GuardianPhone string `json:"guardianPhone" validate:"max=15"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive graduated"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.RegistryNo = core.CleanString(ns.RegistryNo)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Class = core.CleanString(ns.Class)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
	return validate.Struct(ns)
}

func (ns NewStudent) student(admittedAt time.Time) Student {
	s := Student{
		RegistryNo:    ns.RegistryNo,
		FirstName:     ns.FirstName,
		LastName:      ns.LastName,
		Email:         ns.Email,
		Phone:         optString(ns.Phone),
		DateOfBirth:   optDate(ns.DateOfBirth),
		Address:       optString(ns.Address),
		Class:         ns.Class,
		Section:       optString(ns.Section),
		AdmissionDate: core.NormalizeTime(admittedAt),
		GuardianName:  optString(ns.GuardianName),
		GuardianPhone: optString(ns.GuardianPhone),
		Status:        ns.Status,
	}
	if s.Status == "" {
		s.Status = StudentActive
	}
	return s
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left unchanged.
type UpdateStudent struct {
	RegistryNo    *string `json:"registryNo" validate:"omitempty,min=1,max=20"`
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Email         *string `json:"email" validate:"omitempty,email,max=100"`
	Phone         *string `json:"phone" validate:"omitempty,max=15"`
	DateOfBirth   *string `json:"dateOfBirth" validate:"omitempty,isodate"`
	Address       *string `json:"address"`
	Class         *string `json:"class" validate:"omitempty,min=1,max=20"`
	Section       *string `json:"section" validate:"omitempty,max=10"`
	GuardianName  *string `json:"guardianName" validate:"omitempty,max=100"`
	GuardianPhone *string `json:"guardianPhone" validate:"omitempty,max=15"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive graduated"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	cleanPtr(us.RegistryNo)
	cleanPtr(us.FirstName)
	cleanPtr(us.LastName)
	cleanPtr(us.Email, true /* lower */)
	cleanPtr(us.Class)
	cleanPtr(us.Status, true /* lower */)
	return validate.Struct(us)
}

func (us UpdateStudent) apply(s *Student) {
	if us.RegistryNo != nil {
		s.RegistryNo = *us.RegistryNo
	}
	if us.FirstName != nil {
		s.FirstName = *us.FirstName
	}
	if us.LastName != nil {
		s.LastName = *us.LastName
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	if us.Phone != nil {
		s.Phone = optString(*us.Phone)
	}
	if us.DateOfBirth != nil {
		s.DateOfBirth = optDate(*us.DateOfBirth)
	}
	if us.Address != nil {
		s.Address = optString(*us.Address)
	}
	if us.Class != nil {
		s.Class = *us.Class
	}
	if us.Section != nil {
		s.Section = optString(*us.Section)
	}
	if us.GuardianName != nil {
		s.GuardianName = optString(*us.GuardianName)
	}
	if us.GuardianPhone != nil {
		s.GuardianPhone = optString(*us.GuardianPhone)
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
}

// Fee inputs

// NewFee contains information needed to create a new Fee.
// Amounts may be sent as JSON strings or numbers.
type NewFee struct {
	StudentID     int         `json:"studentId" validate:"required,min=1,max=2147483647"`
	AcademicYear  string      `json:"academicYear" validate:"required,max=10"`
	FeeType       string      `json:"feeType" validate:"required,max=50"`
	Amount        json.Number `json:"amount" validate:"required,amount"`
	DueDate       string      `json:"dueDate" validate:"required,isodate"`
	PaidDate      string      `json:"paidDate" validate:"omitempty,isodate"`
	PaidAmount    json.Number `json:"paidAmount" validate:"omitempty,amount"`
	Status        string      `json:"status" validate:"omitempty,oneof=pending paid overdue partial"`
	PaymentMethod string      `json:"paymentMethod" validate:"max=30"`
	TransactionID string      `json:"transactionId" validate:"max=100"`
	Remarks       string      `json:"remarks"`
}

func (nf *NewFee) Validate(validate *validator.Validate) error {
	nf.AcademicYear = core.CleanString(nf.AcademicYear)
	nf.FeeType = core.CleanString(nf.FeeType)
	nf.Status = core.CleanString(nf.Status, true /* lower */)
	return validate.Struct(nf)
}

func (nf NewFee) fee() Fee {
	f := Fee{
		StudentID:     nf.StudentID,
		AcademicYear:  nf.AcademicYear,
		FeeType:       nf.FeeType,
		Amount:        mustAmount(nf.Amount.String()),
		DueDate:       mustDate(nf.DueDate),
		PaidDate:      optDate(nf.PaidDate),
		Status:        storedFeeStatus(nf.Status),
		PaymentMethod: optString(nf.PaymentMethod),
		TransactionID: optString(nf.TransactionID),
		Remarks:       optString(nf.Remarks),
	}
	if nf.PaidAmount != "" {
		f.PaidAmount = mustAmount(nf.PaidAmount.String())
	}
	return f
}

// storedFeeStatus defaults to pending and folds "overdue" into pending:
// overdue is derived from the due date at read time and never stored.
func storedFeeStatus(status string) string {
	if status == "" || status == FeeOverdue {
		return FeePending
	}
	return status
}

// UpdateFee defines what information may be provided to modify an existing Fee.
type UpdateFee struct {
	StudentID     *int         `json:"studentId" validate:"omitempty,min=1,max=2147483647"`
	AcademicYear  *string      `json:"academicYear" validate:"omitempty,min=1,max=10"`
	FeeType       *string      `json:"feeType" validate:"omitempty,min=1,max=50"`
	Amount        *json.Number `json:"amount" validate:"omitempty,amount"`
	DueDate       *string      `json:"dueDate" validate:"omitempty,isodate"`
	PaidDate      *string      `json:"paidDate" validate:"omitempty,isodate"`
	PaidAmount    *json.Number `json:"paidAmount" validate:"omitempty,amount"`
	Status        *string      `json:"status" validate:"omitempty,oneof=pending paid overdue partial"`
	PaymentMethod *string      `json:"paymentMethod" validate:"omitempty,max=30"`
	TransactionID *string      `json:"transactionId" validate:"omitempty,max=100"`
	Remarks       *string      `json:"remarks"`
}

func (uf *UpdateFee) Validate(validate *validator.Validate) error {
	cleanPtr(uf.AcademicYear)
	cleanPtr(uf.FeeType)
	cleanPtr(uf.Status, true /* lower */)
	return validate.Struct(uf)
}

func (uf UpdateFee) apply(f *Fee) {
	if uf.StudentID != nil {
		f.StudentID = *uf.StudentID
	}
	if uf.AcademicYear != nil {
		f.AcademicYear = *uf.AcademicYear
	}
	if uf.FeeType != nil {
		f.FeeType = *uf.FeeType
	}
	if uf.Amount != nil {
		f.Amount = mustAmount(uf.Amount.String())
	}
	if uf.DueDate != nil {
		f.DueDate = mustDate(*uf.DueDate)
	}
	if uf.PaidDate != nil {
		f.PaidDate = optDate(*uf.PaidDate)
	}
	if uf.PaidAmount != nil {
		f.PaidAmount = mustAmount(uf.PaidAmount.String())
	}
	if uf.Status != nil {
		f.Status = storedFeeStatus(*uf.Status)
	}
	if uf.PaymentMethod != nil {
		f.PaymentMethod = optString(*uf.PaymentMethod)
	}
	if uf.TransactionID != nil {
		f.TransactionID = optString(*uf.TransactionID)
	}
	if uf.Remarks != nil {
		f.Remarks = optString(*uf.Remarks)
	}
}

// Expense inputs

// NewExpense contains information needed to record a new Expense.
type NewExpense struct {
	Category      string      `json:"category" validate:"required,max=50"`
	Description   string      `json:"description" validate:"required"`
	Amount        json.Number `json:"amount" validate:"required,amount"`
	Date          string      `json:"date" validate:"required,isodate"`
	PaymentMethod string      `json:"paymentMethod" validate:"max=30"`
	Vendor        string      `json:"vendor" validate:"max=100"`
	InvoiceNumber string      `json:"invoiceNumber" validate:"max=50"`
	ApprovedBy    string      `json:"approvedBy" validate:"max=100"`
	Remarks       string      `json:"remarks"`
}

func (ne *NewExpense) Validate(validate *validator.Validate) error {
	ne.Category = core.CleanString(ne.Category)
	ne.Description = core.CleanString(ne.Description)
	return validate.Struct(ne)
}

func (ne NewExpense) expense() Expense {
	return Expense{
		Category:      ne.Category,
		Description:   ne.Description,
		Amount:        mustAmount(ne.Amount.String()),
		Date:          mustDate(ne.Date),
		PaymentMethod: optString(ne.PaymentMethod),
		Vendor:        optString(ne.Vendor),
		InvoiceNumber: optString(ne.InvoiceNumber),
		ApprovedBy:    optString(ne.ApprovedBy),
		Remarks:       optString(ne.Remarks),
	}
}

// UpdateExpense defines what information may be provided to modify an existing Expense.
type UpdateExpense struct {
	Category      *string      `json:"category" validate:"omitempty,min=1,max=50"`
	Description   *string      `json:"description" validate:"omitempty,min=1"`
	Amount        *json.Number `json:"amount" validate:"omitempty,amount"`
	Date          *string      `json:"date" validate:"omitempty,isodate"`
	PaymentMethod *string      `json:"paymentMethod" validate:"omitempty,max=30"`
	Vendor        *string      `json:"vendor" validate:"omitempty,max=100"`
	InvoiceNumber *string      `json:"invoiceNumber" validate:"omitempty,max=50"`
	ApprovedBy    *string      `json:"approvedBy" validate:"omitempty,max=100"`
	Remarks       *string      `json:"remarks"`
}

func (ue *UpdateExpense) Validate(validate *validator.Validate) error {
	cleanPtr(ue.Category)
	cleanPtr(ue.Description)
	return validate.Struct(ue)
}

func (ue UpdateExpense) apply(e *Expense) {
	if ue.Category != nil {
		e.Category = *ue.Category
	}
	if ue.Description != nil {
		e.Description = *ue.Description
	}
	if ue.Amount != nil {
		e.Amount = mustAmount(ue.Amount.String())
	}
	if ue.Date != nil {
		e.Date = mustDate(*ue.Date)
	}
	if ue.PaymentMethod != nil {
		e.PaymentMethod = optString(*ue.PaymentMethod)
	}
	if ue.Vendor != nil {
		e.Vendor = optString(*ue.Vendor)
	}
	if ue.InvoiceNumber != nil {
		e.InvoiceNumber = optString(*ue.InvoiceNumber)
	}
	if ue.ApprovedBy != nil {
		e.ApprovedBy = optString(*ue.ApprovedBy)
	}
	if ue.Remarks != nil {
		e.Remarks = optString(*ue.Remarks)
	}
}

// Performance inputs

// NewPerformance contains information needed to record a new exam Performance.
type NewPerformance struct {
	StudentID     int    `json:"studentId" validate:"required,min=1,max=2147483647"`
	Subject       string `json:"subject" validate:"required,max=50"`
	ExamType      string `json:"examType" validate:"required,max=30"`
	AcademicYear  string `json:"academicYear" validate:"required,max=10"`
	Term          string `json:"term" validate:"required,max=20"`
	MaxMarks      int    `json:"maxMarks" validate:"required,min=1,max=2147483647"`
	ObtainedMarks *int   `json:"obtainedMarks" validate:"required,min=0,max=2147483647"`
	Grade         string `json:"grade" validate:"max=5"`
	ExamDate      string `json:"examDate" validate:"omitempty,isodate"`
	Remarks       string `json:"remarks"`
}

func (np *NewPerformance) Validate(validate *validator.Validate) error {
	np.Subject = core.CleanString(np.Subject)
	np.ExamType = core.CleanString(np.ExamType)
	np.AcademicYear = core.CleanString(np.AcademicYear)
	np.Term = core.CleanString(np.Term)
	np.Grade = core.CleanString(np.Grade)
	return validate.Struct(np)
}

func (np NewPerformance) performance() Performance {
	p := Performance{
		StudentID:    np.StudentID,
		Subject:      np.Subject,
		ExamType:     np.ExamType,
		AcademicYear: np.AcademicYear,
		Term:         np.Term,
		MaxMarks:     np.MaxMarks,
		Grade:        optString(np.Grade),
		ExamDate:     optDate(np.ExamDate),
		Remarks:      optString(np.Remarks),
	}
	if np.ObtainedMarks != nil {
		p.ObtainedMarks = *np.ObtainedMarks
	}
	p.computePercentage()
	return p
}

// UpdatePerformance defines what information may be provided to modify an existing Performance.
type UpdatePerformance struct {
	StudentID     *int    `json:"studentId" validate:"omitempty,min=1,max=2147483647"`
	Subject       *string `json:"subject" validate:"omitempty,min=1,max=50"`
	ExamType      *string `json:"examType" validate:"omitempty,min=1,max=30"`
	AcademicYear  *string `json:"academicYear" validate:"omitempty,min=1,max=10"`
	Term          *string `json:"term" validate:"omitempty,min=1,max=20"`
	MaxMarks      *int    `json:"maxMarks" validate:"omitempty,min=1,max=2147483647"`
	ObtainedMarks *int    `json:"obtainedMarks" validate:"omitempty,min=0,max=2147483647"`
	Grade         *string `json:"grade" validate:"omitempty,max=5"`
	ExamDate      *string `json:"examDate" validate:"omitempty,isodate"`
	Remarks       *string `json:"remarks"`
}

func (up *UpdatePerformance) Validate(validate *validator.Validate) error {
	cleanPtr(up.Subject)
	cleanPtr(up.ExamType)
	cleanPtr(up.AcademicYear)
	cleanPtr(up.Term)
	cleanPtr(up.Grade)
	return validate.Struct(up)
}

// apply merges the set fields into p; the percentage is recomputed only when a mark changes.
func (up UpdatePerformance) apply(p *Performance) {
	if up.StudentID != nil {
		p.StudentID = *up.StudentID
	}
	if up.Subject != nil {
		p.Subject = *up.Subject
	}
	if up.ExamType != nil {
		p.ExamType = *up.ExamType
	}
	if up.AcademicYear != nil {
		p.AcademicYear = *up.AcademicYear
	}
	if up.Term != nil {
		p.Term = *up.Term
	}
	if up.Grade != nil {
		p.Grade = optString(*up.Grade)
	}
	if up.ExamDate != nil {
		p.ExamDate = optDate(*up.ExamDate)
	}
	if up.Remarks != nil {
		p.Remarks = optString(*up.Remarks)
	}
	if up.MaxMarks != nil || up.ObtainedMarks != nil {
		if up.MaxMarks != nil {
			p.MaxMarks = *up.MaxMarks
		}
		if up.ObtainedMarks != nil {
			p.ObtainedMarks = *up.ObtainedMarks
		}
		p.computePercentage()
	}
}

// Class inputs

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name         string `json:"name" validate:"required,max=20"`
	Standard     int    `json:"standard" validate:"required,min=1,max=2147483647"`
	Section      string `json:"section" validate:"required,max=10"`
	ClassTeacher string `json:"classTeacher" validate:"max=100"`
	Room         string `json:"room" validate:"max=20"`
	Capacity     int    `json:"capacity" validate:"omitempty,min=1,max=2147483647"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Section = core.CleanString(nc.Section)
	return validate.Struct(nc)
}

func (nc NewClass) class() Class {
	c := Class{
		Name:         nc.Name,
		Standard:     nc.Standard,
		Section:      nc.Section,
		ClassTeacher: optString(nc.ClassTeacher),
		Room:         optString(nc.Room),
		Capacity:     nc.Capacity,
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultClassCapacity
	}
	return c
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=20"`
	Standard     *int    `json:"standard" validate:"omitempty,min=1,max=2147483647"`
	Section      *string `json:"section" validate:"omitempty,min=1,max=10"`
	ClassTeacher *string `json:"classTeacher" validate:"omitempty,max=100"`
	Room         *string `json:"room" validate:"omitempty,max=20"`
	Capacity     *int    `json:"capacity" validate:"omitempty,min=1,max=2147483647"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	cleanPtr(uc.Name)
	cleanPtr(uc.Section)
	return validate.Struct(uc)
}

func (uc UpdateClass) apply(c *Class) {
	if uc.Name != nil {
		c.Name = *uc.Name
	}
	if uc.Standard != nil {
		c.Standard = *uc.Standard
	}
	if uc.Section != nil {
		c.Section = *uc.Section
	}
	if uc.ClassTeacher != nil {
		c.ClassTeacher = optString(*uc.ClassTeacher)
	}
	if uc.Room != nil {
		c.Room = optString(*uc.Room)
	}
	if uc.Capacity != nil {
		c.Capacity = *uc.Capacity
	}
}
