package mailer

import (
	"fmt"
	"strings"
	"time"

	"andhara-backend/internal/models"
	"andhara-backend/internal/timeutil"
)

// ReminderSubject is the subject line of the daily follow-up email for the
// given day.
func ReminderSubject(day time.Time) string {
	return fmt.Sprintf("Gestión diaria de clientes - %s", day.Format(timeutil.DateLayout))
}

// ReminderBody renders the HTML table of customers whose follow-up falls
// today. An empty list still produces a valid body saying there is nothing
// to do.
func ReminderBody(due []*models.DueFollowUp) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>Seguimiento de clientes — %s</h2>", timeutil.Today().Format(timeutil.DateLayout)))

	if len(due) == 0 {
		b.WriteString("<p>No hay clientes para contactar hoy.</p>")
		b.WriteString("</body></html>")
		return b.String()
	}

	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Cliente</th><th>Teléfono</th><th>Última compra</th><th>Frecuencia (días)</th></tr>")
	for _, f := range due {
		b.WriteString("<tr>")
		b.WriteString(fmt.Sprintf("<td>%s</td>", f.CustomerName))
		b.WriteString(fmt.Sprintf("<td>%s</td>", f.Phone))
		b.WriteString(fmt.Sprintf("<td>%s</td>", f.PurchaseDate.Format(timeutil.DateLayout)))
		b.WriteString(fmt.Sprintf("<td>%d</td>", f.PurchaseDuration))
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	b.WriteString("</body></html>")
	return b.String()
}
