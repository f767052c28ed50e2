package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback is the decoded payload of an inline-keyboard button press. The
// set of variants is closed: decoding anything outside it is an error, which
// turns stale or foreign payloads into a visible failure instead of a silent
// fallthrough.
type Callback struct {
	Action Action

	// Domain carries the domain slug for SelectDomain and SetupSetDomain.
	Domain string
	// Page carries the 1-based page number for LinksPage, and the
	// originating list page for the link-detail actions so Back returns
	// to where the user came from.
	Page int
	// LinkID carries the (short) link id for the link-detail actions.
	LinkID string
	// Step carries the wizard step for SetupNext.
	Step string
	// Style carries the slug style for SetupSetStyle.
	Style string
	// Enabled carries the boolean for the setup and settings toggles.
	Enabled bool
}

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionEdit    Action = "edit"
	ActionReject  Action = "reject"

	ActionSelectDomain Action = "select_domain"

	ActionLinksPage         Action = "links_page"
	ActionLinkDetails       Action = "link_details"
	ActionLinkEdit          Action = "link_edit"
	ActionLinkDelete        Action = "link_delete"
	ActionLinkDeleteConfirm Action = "link_delete_confirm"
	ActionCloseLinks        Action = "close_links"

	ActionSetupNext           Action = "setup_next"
	ActionSetupSetDomain      Action = "setup_set_domain"
	ActionSetupSetStyle       Action = "setup_set_style"
	ActionSetupSetAutoConfirm Action = "setup_set_auto_confirm"
	ActionSetupSetReasoning   Action = "setup_set_reasoning"
	ActionSetupSkip           Action = "setup_skip"
	ActionSetupCancel         Action = "setup_cancel"

	ActionSettingsSetStyle     Action = "settings_set_style"
	ActionSettingsToggleAuto   Action = "settings_toggle_auto"
	ActionSettingsToggleReason Action = "settings_toggle_reason"
	ActionSettingsRerunSetup   Action = "settings_rerun_setup"
	ActionSettingsShowDomains  Action = "settings_show_domains"
	ActionSettingsSetDomain    Action = "settings_set_domain"
	ActionSettingsReset        Action = "settings_reset"
	ActionSettingsClose        Action = "settings_close"
)

// Encode renders a callback as "action" or "action:data". Telegram caps the
// payload at 64 bytes, so link ids must already be shortened by the caller.
func (c Callback) Encode() string {
	switch c.Action {
	case ActionSelectDomain, ActionSetupSetDomain, ActionSettingsSetDomain:
		return string(c.Action) + ":" + c.Domain
	case ActionLinksPage:
		return string(c.Action) + ":" + strconv.Itoa(c.Page)
	case ActionLinkEdit, ActionLinkDeleteConfirm:
		return string(c.Action) + ":" + c.LinkID
	case ActionLinkDetails, ActionLinkDelete:
		if c.Page > 1 {
			return string(c.Action) + ":" + c.LinkID + ":" + strconv.Itoa(c.Page)
		}
		return string(c.Action) + ":" + c.LinkID
	case ActionSetupNext:
		return string(c.Action) + ":" + c.Step
	case ActionSetupSetStyle, ActionSettingsSetStyle:
		return string(c.Action) + ":" + c.Style
	case ActionSetupSetAutoConfirm, ActionSetupSetReasoning:
		return string(c.Action) + ":" + strconv.FormatBool(c.Enabled)
	default:
		return string(c.Action)
	}
}

// DecodeCallback parses a payload back into a Callback. Unknown actions and
// malformed data are errors.
func DecodeCallback(payload string) (Callback, error) {
	action, data, hasData := strings.Cut(payload, ":")

	c := Callback{Action: Action(action)}
	switch c.Action {
	case ActionConfirm, ActionEdit, ActionReject, ActionCloseLinks,
		ActionSetupSkip, ActionSetupCancel,
		ActionSettingsToggleAuto, ActionSettingsToggleReason, ActionSettingsRerunSetup,
		ActionSettingsShowDomains, ActionSettingsReset, ActionSettingsClose:
		if hasData {
			return Callback{}, fmt.Errorf("callback %q takes no data", action)
		}
		return c, nil

	case ActionSelectDomain, ActionSetupSetDomain, ActionSettingsSetDomain:
		if data == "" {
			return Callback{}, fmt.Errorf("callback %q requires a domain", action)
		}
		c.Domain = data
		return c, nil

	case ActionLinksPage:
		page, err := strconv.Atoi(data)
		if err != nil || page < 1 {
			return Callback{}, fmt.Errorf("callback %q has bad page %q", action, data)
		}
		c.Page = page
		return c, nil

	case ActionLinkEdit, ActionLinkDeleteConfirm:
		if data == "" {
			return Callback{}, fmt.Errorf("callback %q requires a link id", action)
		}
		c.LinkID = data
		return c, nil

	case ActionLinkDetails, ActionLinkDelete:
		id, pageData, hasPage := strings.Cut(data, ":")
		if id == "" {
			return Callback{}, fmt.Errorf("callback %q requires a link id", action)
		}
		c.LinkID = id
		c.Page = 1
		if hasPage {
			page, err := strconv.Atoi(pageData)
			if err != nil || page < 1 {
				return Callback{}, fmt.Errorf("callback %q has bad page %q", action, pageData)
			}
			c.Page = page
		}
		return c, nil

	case ActionSetupNext:
		if data == "" {
			return Callback{}, fmt.Errorf("callback %q requires a step", action)
		}
		c.Step = data
		return c, nil

	case ActionSetupSetStyle, ActionSettingsSetStyle:
		if data == "" {
			return Callback{}, fmt.Errorf("callback %q requires a style", action)
		}
		c.Style = data
		return c, nil

	case ActionSetupSetAutoConfirm, ActionSetupSetReasoning:
		enabled, err := strconv.ParseBool(data)
		if err != nil {
			return Callback{}, fmt.Errorf("callback %q has bad bool %q", action, data)
		}
		c.Enabled = enabled
		return c, nil

	default:
		return Callback{}, fmt.Errorf("unknown callback action %q", action)
	}
}
