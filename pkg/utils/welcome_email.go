package utils

import "fmt"

func SendWelcomeEmail(to, username string) error {
	subject := fmt.Sprintf("🎉 Welcome to Finly, %s!", username)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<style>
			body { font-family: 'Poppins', sans-serif; background-color: #f9fbfa; margin: 0; padding: 0; }
			.container { max-width: 650px; margin: 40px auto; background: #ffffff; border-radius: 18px;
				box-shadow: 0 10px 30px rgba(0, 0, 0, 0.08); overflow: hidden; border-top: 6px solid #00795f; }
			.header { background-color: #00795f; color: #ffffff; text-align: center; padding: 40px 20px 20px; }
			.header h1 { margin: 0; font-size: 26px; font-weight: 700; }
			.content { padding: 35px 40px; color: #333333; }
			.footer { text-align: center; font-size: 12px; color: #999999; padding: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Welcome to Finly</h1></div>
			<div class="content">
				<p>Hi %s,</p>
				<p>Your account is ready. Record your income and expenses, set category
				budgets, and start funding your savings goals — Finly keeps your balance
				consistent every step of the way.</p>
				<p>Happy saving!<br/>The Finly Team</p>
			</div>
			<div class="footer">You received this email because you signed up for Finly.</div>
		</div>
	</body>
	</html>`, username)

	return SendEmail(to, subject, body)
}
