package models

// FilteredMessage is the result of running a child-to-child message through
// the safety filter pipeline. Content is the masked text when the message was
// flagged, otherwise the original text unchanged.
type FilteredMessage struct {
	Content            string  `json:"content"`
	IsFiltered         bool    `json:"is_filtered"`
	RiskType           *string `json:"risk_type"`
	RiskLevel          int     `json:"risk_level"`
	ShouldNotifyParent bool    `json:"should_notify_parent"`
}
