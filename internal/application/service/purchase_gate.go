package service

// GateState holds the purchase-eligibility flags for one session. It is
// never stored; a new page visit starts from all-false and re-screens.
type GateState struct {
	WalletConnected bool `json:"walletConnected"`
	SellerChecked   bool `json:"sellerChecked"`
	SellerCompliant bool `json:"sellerCompliant"`
	BuyerChecked    bool `json:"buyerChecked"`
	BuyerCompliant  bool `json:"buyerCompliant"`
}

// GatePrompt is the user-facing purchase button label.
type GatePrompt string

const (
	PromptConnectWallet GatePrompt = "Connect Wallet to Purchase"
	PromptCheckSeller   GatePrompt = "Check Seller Compliance First"
	PromptSellerFailed  GatePrompt = "Seller Failed Compliance"
	PromptCheckBuyer    GatePrompt = "Check Your Compliance First"
	PromptBuyerFailed   GatePrompt = "You Failed Compliance Check"
	PromptProceed       GatePrompt = "Proceed to Purchase"
)

// Evaluate maps the gate state to a prompt and the purchase decision.
// Fail-closed: the purchase is allowed only when every flag is true. The
// precedence is wallet, then seller checked, seller passed, buyer checked,
// buyer passed.
func (s GateState) Evaluate() (GatePrompt, bool) {
	switch {
	case !s.WalletConnected:
		return PromptConnectWallet, false
	case !s.SellerChecked:
		return PromptCheckSeller, false
	case !s.SellerCompliant:
		return PromptSellerFailed, false
	case !s.BuyerChecked:
		return PromptCheckBuyer, false
	case !s.BuyerCompliant:
		return PromptBuyerFailed, false
	default:
		return PromptProceed, true
	}
}
