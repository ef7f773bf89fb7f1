package school

import (
	"context"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

const reminderSubject = "Fee payment reminder"

var (
	reminderText = texttmpl.Must(texttmpl.New("reminder.txt").Parse(
		`Dear {{ .GuardianName }},

This is a reminder that the following fees for {{ .Student.FullName }} ({{ .Student.RegistryNo }}) are overdue:
{{ range .Fees }}
  - {{ .FeeType }} ({{ .AcademicYear }}): {{ .Outstanding }} due on {{ .DueDate.Format "2006-01-02" }}{{ end }}

Total outstanding: {{ .Total }}
`))

	reminderHTML = htmltmpl.Must(htmltmpl.New("reminder.html").Parse(
		`<p>Dear {{ .GuardianName }},</p>
<p>This is a reminder that the following fees for <strong>{{ .Student.FullName }}</strong> ({{ .Student.RegistryNo }}) are overdue:</p>
<ul>{{ range .Fees }}
  <li>{{ .FeeType }} ({{ .AcademicYear }}): {{ .Outstanding }} due on {{ .DueDate.Format "2006-01-02" }}</li>{{ end }}
</ul>
<p>Total outstanding: <strong>{{ .Total }}</strong></p>
`))
)

type reminderData struct {
	Student      Student
	GuardianName string
	Fees         []Fee
	Total        core.Decimal
}

// OverdueReminders builds one email per student with overdue fees, addressed to the student's email.
// Fees whose student no longer exists are skipped.
func (svc *Service) OverdueReminders(ctx context.Context) ([]*core.EmailMessage, error) {
	fees, err := svc.OverdueFees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing overdue fees")
	}

	byStudent := make(map[int][]Fee)
	order := make([]int, 0)
	for _, f := range fees {
		if _, seen := byStudent[f.StudentID]; !seen {
			order = append(order, f.StudentID)
		}
		byStudent[f.StudentID] = append(byStudent[f.StudentID], f)
	}

	messages := make([]*core.EmailMessage, 0, len(order))
	for _, id := range order {
		s, ok, err := svc.store.GetStudent(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "getting student")
		}
		if !ok {
			continue
		}

		data := reminderData{Student: s, GuardianName: s.GuardianName.String, Fees: byStudent[id]}
		if data.GuardianName == "" {
			data.GuardianName = "Parent/Guardian"
		}
		for _, f := range data.Fees {
			data.Total = data.Total.Add(f.Outstanding())
		}

		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{{Name: s.FullName(), Address: s.Email}},
			Subject:      reminderSubject,
			TextTemplate: reminderText,
			HTMLTemplate: reminderHTML,
			TemplateData: data,
		})
	}
	return messages, nil
}
