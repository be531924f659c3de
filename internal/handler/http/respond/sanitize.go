package respond

import "regexp"

var (
	dbPasswordPattern   = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
	slackWebhookPattern = regexp.MustCompile(`hooks\.slack\.com/services/[A-Za-z0-9/_-]+`)
	bearerPattern       = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)
)

// SanitizeError masks credentials that can leak into error strings:
// DSN passwords, Slack webhook paths and bearer tokens.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = slackWebhookPattern.ReplaceAllString(msg, "hooks.slack.com/services/****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
