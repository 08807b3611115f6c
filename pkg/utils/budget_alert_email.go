package utils

import (
	"fmt"
	"strings"

	"finly/internal/models"
)

// SendBudgetAlertEmail delivers the daily digest of budgets sitting at or
// above their warning threshold.
func SendBudgetAlertEmail(to, username string, alerts []models.Alert) error {
	subject := fmt.Sprintf("⚠️ Budget alert: %d categor%s need attention", len(alerts), pluralSuffix(len(alerts)))

	var rows strings.Builder
	for _, a := range alerts {
		color := "#e6a700"
		if a.Status == models.AlertStatusExceeded {
			color = "#cc3300"
		}
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 10px 14px; border-bottom: 1px solid #eeeeee;">%s</td>
				<td style="padding: 10px 14px; border-bottom: 1px solid #eeeeee;">%s of %s</td>
				<td style="padding: 10px 14px; border-bottom: 1px solid #eeeeee; color: %s; font-weight: 600;">%s%% — %s</td>
			</tr>`,
			a.Category, a.Spent.StringFixed(2), a.Limit.StringFixed(2), color, a.Percentage.StringFixed(1), a.Status))
	}

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<style>
			body { font-family: 'Poppins', sans-serif; background-color: #f9fbfa; margin: 0; padding: 0; }
			.container { max-width: 650px; margin: 40px auto; background: #ffffff; border-radius: 18px;
				box-shadow: 0 10px 30px rgba(0, 0, 0, 0.08); overflow: hidden; border-top: 6px solid #e6a700; }
			.header { background-color: #e6a700; color: #ffffff; text-align: center; padding: 30px 20px; }
			.content { padding: 30px 40px; color: #333333; }
			table { width: 100%%; border-collapse: collapse; }
			.footer { text-align: center; font-size: 12px; color: #999999; padding: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Budget Alerts</h1></div>
			<div class="content">
				<p>Hi %s,</p>
				<p>Spending in the following categories has crossed the warning threshold
				for the current period:</p>
				<table>
					<tr>
						<th style="text-align:left; padding: 10px 14px;">Category</th>
						<th style="text-align:left; padding: 10px 14px;">Spent</th>
						<th style="text-align:left; padding: 10px 14px;">Status</th>
					</tr>
					%s
				</table>
				<p>Log in to review your budgets.</p>
			</div>
			<div class="footer">Daily digest from Finly. Delete your budgets to stop these alerts.</div>
		</div>
	</body>
	</html>`, username, rows.String())

	return SendEmail(to, subject, body)
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
