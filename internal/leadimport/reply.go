package leadimport

// Auto-reply template identifiers. They resolve to reply_templates rows; the
// identifiers themselves are stable API for the outbound collaborator.
const (
	TemplateLeadWelcome    = "lead_welcome"
	TemplateLeadDuplicate  = "lead_already_registered"
	TemplateLeadMoreInfo   = "lead_more_info"
	TemplateLeadNeedEmail  = "lead_need_email"
	TemplateLeadNeedPhone  = "lead_need_phone"
	TemplateLeadAfterHours = "lead_after_hours"
)

// SelectReply maps an admission decision to an outbound template. It returns
// false when auto-reply is disabled or when the decision is an Error variant:
// internal failures never leak to the sender.
func SelectReply(s Settings, d Decision) (string, bool) {
	if !s.AutoReplyEnabled {
		return "", false
	}
	switch d.Kind {
	case DecisionImported:
		return TemplateLeadWelcome, true
	case DecisionDuplicate:
		return TemplateLeadDuplicate, true
	case DecisionLowConfidence:
		return TemplateLeadMoreInfo, true
	case DecisionMissingRequiredField:
		if d.Reason == "phone" {
			return TemplateLeadNeedPhone, true
		}
		return TemplateLeadNeedEmail, true
	case DecisionOutsideBusinessHours:
		return TemplateLeadAfterHours, true
	default:
		return "", false
	}
}
