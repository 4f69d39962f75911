package files

// User-facing notification texts.
const (
	MsgNoSubscriptions = "Could not find any files subscribed in this room"
	MsgNoFilesForRoom  = "Could not find any file subscribed in this room"
	MsgFetchError      = "There was an error"
	MsgReportIssue     = "Error in fetching files. Please Report this issue"
)
