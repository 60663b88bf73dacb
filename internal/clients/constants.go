package clients

const (
	USER_AGENT = "feedback-sentiment/1.0 (+https://github.com/spacesedan/feedback-sentiment)"
	APP_TITLE  = "feedback-sentiment"
)
