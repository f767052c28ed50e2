package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cb   Callback
		want string
	}{
		{"confirm", Callback{Action: ActionConfirm}, "confirm"},
		{"edit", Callback{Action: ActionEdit}, "edit"},
		{"reject", Callback{Action: ActionReject}, "reject"},
		{"select domain", Callback{Action: ActionSelectDomain, Domain: "dub.sh"}, "select_domain:dub.sh"},
		{"links page", Callback{Action: ActionLinksPage, Page: 3}, "links_page:3"},
		{"link details", Callback{Action: ActionLinkDetails, LinkID: "1KXzHbCv", Page: 1}, "link_details:1KXzHbCv"},
		{"link details from later page", Callback{Action: ActionLinkDetails, LinkID: "1KXzHbCv", Page: 3}, "link_details:1KXzHbCv:3"},
		{"link delete from later page", Callback{Action: ActionLinkDelete, LinkID: "ab12", Page: 2}, "link_delete:ab12:2"},
		{"link delete confirm", Callback{Action: ActionLinkDeleteConfirm, LinkID: "ab12"}, "link_delete_confirm:ab12"},
		{"close links", Callback{Action: ActionCloseLinks}, "close_links"},
		{"setup next", Callback{Action: ActionSetupNext, Step: "slug_style"}, "setup_next:slug_style"},
		{"setup style", Callback{Action: ActionSetupSetStyle, Style: "short"}, "setup_set_style:short"},
		{"setup auto confirm", Callback{Action: ActionSetupSetAutoConfirm, Enabled: true}, "setup_set_auto_confirm:true"},
		{"setup reasoning off", Callback{Action: ActionSetupSetReasoning, Enabled: false}, "setup_set_reasoning:false"},
		{"setup skip", Callback{Action: ActionSetupSkip}, "setup_skip"},
		{"settings rerun", Callback{Action: ActionSettingsRerunSetup}, "settings_rerun_setup"},
		{"settings domains", Callback{Action: ActionSettingsShowDomains}, "settings_show_domains"},
		{"settings set domain", Callback{Action: ActionSettingsSetDomain, Domain: "go.example"}, "settings_set_domain:go.example"},
		{"settings reset", Callback{Action: ActionSettingsReset}, "settings_reset"},
		{"settings close", Callback{Action: ActionSettingsClose}, "settings_close"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.cb.Encode()
			assert.Equal(t, tt.want, encoded)

			decoded, err := DecodeCallback(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.cb, decoded)
		})
	}
}

func TestDecodeCallbackRejectsUnknownAction(t *testing.T) {
	_, err := DecodeCallback("rename_link:abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown callback action")
}

func TestDecodeCallbackRejectsMalformedData(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"page not a number", "links_page:abc"},
		{"page below one", "links_page:0"},
		{"missing link id", "link_details:"},
		{"link id missing before page", "link_details::2"},
		{"link page not a number", "link_details:abc:x"},
		{"link page below one", "link_delete:abc:0"},
		{"bare link action", "link_edit"},
		{"bad bool", "setup_set_auto_confirm:maybe"},
		{"data on bare action", "confirm:extra"},
		{"missing domain", "select_domain:"},
		{"empty payload", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCallback(tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestCallbackPayloadsFitTelegramLimit(t *testing.T) {
	longest := Callback{Action: ActionSetupSetAutoConfirm, Enabled: false}
	assert.LessOrEqual(t, len(longest.Encode()), 64)

	withID := Callback{Action: ActionLinkDeleteConfirm, LinkID: "12345678"}
	assert.LessOrEqual(t, len(withID.Encode()), 64)
}
