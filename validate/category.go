package validate

import "strings"

// typeToCategory maps an asset type string to its category label.
// Never user-supplied directly; unknown types fall through to "Other".
var typeToCategory = map[string]string{
	"laptop":  "Computing",
	"desktop": "Computing",
	"cpu":     "Computing",
	"server":  "Computing",

	"mobile": "Mobile",
	"tablet": "Mobile",
	"ipad":   "Mobile",
	"iphone": "Mobile",

	"router":        "Network",
	"switch":        "Network",
	"firewall":      "Network",
	"load_balancer": "Network",
	"access_point":  "Network",

	"monitor":    "Display",
	"television": "Display",
	"projector":  "Display",

	"speaker":    "Audio/Video",
	"microphone": "Audio/Video",
	"headset":    "Audio/Video",
	"camera":     "Audio/Video",

	"usb_drive":    "Storage",
	"external_hdd": "Storage",
	"external_ssd": "Storage",

	"keyboard": "Peripheral",
	"mouse":    "Peripheral",

	"hdmi_cable":      "Connector",
	"usb_c_cable":     "Connector",
	"lightning_cable": "Connector",
	"ethernet_cable":  "Connector",
}

// CategoryForType derives the asset category for an asset type.
func CategoryForType(assetType string) string {
	if c, ok := typeToCategory[strings.ToLower(assetType)]; ok {
		return c
	}
	return "Other"
}
