package entity

import "strings"

// RiskLevel is the vendor-reported risk classification of an address. The
// vendor may emit values outside the known set; anything that is not "low"
// is treated as non-compliant.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// String returns the raw vendor value.
func (r RiskLevel) String() string {
	return string(r)
}

// Compliant reports whether this risk level allows a purchase. Unknown
// levels fail closed.
func (r RiskLevel) Compliant() bool {
	return strings.EqualFold(string(r), string(RiskLevelLow))
}

// Risk is the risk block of a screening result.
type Risk struct {
	Level RiskLevel `json:"level"`
	Score *float64  `json:"score,omitempty"`
}

// ComplianceResult is one per-address screening outcome as reported by the
// vendor. It is never persisted; it lives only for the duration of a
// purchase-flow decision.
type ComplianceResult struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	Chain      string `json:"chain"`
	Risk       Risk   `json:"risk"`
	ScreenedAt string `json:"screenedAt"`
}

// Compliant reports whether the screened address passed.
func (c *ComplianceResult) Compliant() bool {
	return c != nil && c.Risk.Level.Compliant()
}

// ScreeningOutcome carries the result or the error of one side of a dual
// screening. Exactly one of Result and Err is set.
type ScreeningOutcome struct {
	Address string
	Result  *ComplianceResult
	Err     error
}

// ScreeningReport is the joined outcome of screening a seller and a buyer.
// A failure on one side never masks the other side's outcome.
type ScreeningReport struct {
	Seller ScreeningOutcome
	Buyer  ScreeningOutcome
}

// ScreeningAuditEvent is the shape published to the audit stream after a
// completed screening.
type ScreeningAuditEvent struct {
	Address    string   `json:"address"`
	Chain      string   `json:"chain"`
	RiskLevel  string   `json:"riskLevel"`
	RiskScore  *float64 `json:"riskScore,omitempty"`
	ScreenedAt string   `json:"screenedAt"`
}
