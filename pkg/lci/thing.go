package lci

import (
	"strings"

	"github.com/samber/lo"
)

// DeviceType is the kind of physical device a Thing represents.
type DeviceType int

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeGateway
	DeviceTypeTank
	DeviceTypeRgbLights
	DeviceTypeHvac
	DeviceTypeDimmer
	DeviceTypeGenerator
	DeviceTypeSwitch
)

// Gateway device type codes, as found in a Thing's configuration.
var deviceTypeCodes = map[float64]DeviceType{
	10: DeviceTypeTank,
	13: DeviceTypeRgbLights,
	16: DeviceTypeHvac,
	20: DeviceTypeDimmer,
	24: DeviceTypeGenerator,
	30: DeviceTypeSwitch,
}

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeUnknown:   "Unknown",
	DeviceTypeGateway:   "Gateway",
	DeviceTypeTank:      "Tank",
	DeviceTypeRgbLights: "RGB Lights",
	DeviceTypeHvac:      "HVAC",
	DeviceTypeDimmer:    "Dimmer",
	DeviceTypeGenerator: "Generator",
	DeviceTypeSwitch:    "Switch",
}

func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return deviceTypeNames[DeviceTypeUnknown]
}

// Code returns the gateway's numeric code for t. The gateway itself and
// unknown devices have none.
func (t DeviceType) Code() (int, bool) {
	for code, dt := range deviceTypeCodes {
		if dt == t {
			return int(code), true
		}
	}
	return 0, false
}

// Configuration is the device configuration attached to a Thing. A nil
// DeviceType means the Thing is the gateway itself.
type Configuration struct {
	DeviceType *float64 `json:"deviceType"`
	Capability *float64 `json:"capability"`
}

// Resolve maps the configuration's device type code to a DeviceType.
func (c Configuration) Resolve() DeviceType {
	if c.DeviceType == nil {
		return DeviceTypeGateway
	}
	if dt, ok := deviceTypeCodes[*c.DeviceType]; ok {
		return dt
	}
	return DeviceTypeUnknown
}

type Channel struct {
	UID            string `json:"uid"`
	ID             string `json:"id"`
	ChannelTypeUID string `json:"channelTypeUID"`
	ItemType       string `json:"itemType"`
}

type StatusInfo struct {
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
	Description  string `json:"description"`
}

// Thing is a device record discovered from /rest/things/.
type Thing struct {
	UID           string        `json:"UID"`
	Label         string        `json:"label"`
	ThingTypeUID  string        `json:"thingTypeUID"`
	BridgeUID     string        `json:"bridgeUID"`
	Configuration Configuration `json:"configuration"`
	Channels      []Channel     `json:"channels"`
	StatusInfo    StatusInfo    `json:"statusInfo"`
}

func (t Thing) Type() DeviceType {
	return t.Configuration.Resolve()
}

func (t Thing) HasChannel(id string) bool {
	return lo.ContainsBy(t.Channels, func(c Channel) bool { return c.ID == id })
}

// Clone returns a copy of t that shares no memory with it.
func (t Thing) Clone() Thing {
	out := t
	out.Channels = append([]Channel(nil), t.Channels...)
	if t.Configuration.DeviceType != nil {
		v := *t.Configuration.DeviceType
		out.Configuration.DeviceType = &v
	}
	if t.Configuration.Capability != nil {
		v := *t.Configuration.Capability
		out.Configuration.Capability = &v
	}
	return out
}

// FilterByType returns the things that resolve to dt, in order.
func FilterByType(things []Thing, dt DeviceType) []Thing {
	return lo.Filter(things, func(t Thing, _ int) bool {
		return t.Type() == dt
	})
}

// FindByLabel looks a thing up by label, ignoring case and surrounding space.
func FindByLabel(things []Thing, label string) (Thing, bool) {
	key := strings.TrimSpace(label)
	return lo.Find(things, func(t Thing) bool {
		return strings.EqualFold(strings.TrimSpace(t.Label), key)
	})
}

// SanitizeUID converts a Thing UID into the prefix of its item names.
func SanitizeUID(uid string) string {
	return strings.NewReplacer(":", "_", "-", "_").Replace(uid)
}

// ItemName is the REST item that holds field of the thing with the given UID.
func ItemName(uid, field string) string {
	return SanitizeUID(uid) + "_" + field
}
