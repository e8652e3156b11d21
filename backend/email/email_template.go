package email

import "fmt"

func getResetText(resetURL string) string {
	return fmt.Sprintf(`You asked to reset your Reported password.

Open this link to choose a new one:
%s

If you didn't ask for this, you can ignore this message.
`, resetURL)
}

func getResetHtml(resetURL string) string {
	return fmt.Sprintf(`<html>
<body>
<p>You asked to reset your Reported password.</p>
<p><a href="%s">Choose a new password</a></p>
<p>If you didn't ask for this, you can ignore this message.</p>
</body>
</html>`, resetURL)
}
