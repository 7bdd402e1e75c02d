package protocol

import "fmt"

// Command identifies the semantic class of a message.
type Command uint8

// Command constants. The numeric values are fixed by the wire protocol
// and shared by every protocol version.
const (
	CommandPresentation Command = 0
	CommandSet          Command = 1
	CommandReq          Command = 2
	CommandInternal     Command = 3
	CommandStream       Command = 4
)

// String returns the protocol name of the command.
func (c Command) String() string {
	switch c {
	case CommandPresentation:
		return "presentation"
	case CommandSet:
		return "set"
	case CommandReq:
		return "req"
	case CommandInternal:
		return "internal"
	case CommandStream:
		return "stream"
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

// Presentation identifies the declared type of a child sensor.
type Presentation uint8

// Presentation types available since protocol 1.4.
const (
	PresentationDoor                Presentation = 0
	PresentationMotion              Presentation = 1
	PresentationSmoke               Presentation = 2
	PresentationBinary              Presentation = 3 // named S_LIGHT before 1.5
	PresentationDimmer              Presentation = 4
	PresentationCover               Presentation = 5
	PresentationTemp                Presentation = 6
	PresentationHum                 Presentation = 7
	PresentationBaro                Presentation = 8
	PresentationWind                Presentation = 9
	PresentationRain                Presentation = 10
	PresentationUV                  Presentation = 11
	PresentationWeight              Presentation = 12
	PresentationPower               Presentation = 13
	PresentationHeater              Presentation = 14
	PresentationDistance            Presentation = 15
	PresentationLightLevel          Presentation = 16
	PresentationArduinoNode         Presentation = 17
	PresentationArduinoRepeaterNode Presentation = 18
	PresentationLock                Presentation = 19
	PresentationIR                  Presentation = 20
	PresentationWater               Presentation = 21
	PresentationAirQuality          Presentation = 22
	PresentationCustom              Presentation = 23
	PresentationDust                Presentation = 24
	PresentationSceneController     Presentation = 25
)

// Presentation types added in protocol 1.5.
const (
	PresentationRGBLight    Presentation = 26
	PresentationRGBWLight   Presentation = 27
	PresentationColorSensor Presentation = 28
	PresentationHVAC        Presentation = 29
	PresentationMultimeter  Presentation = 30
	PresentationSprinkler   Presentation = 31
	PresentationWaterLeak   Presentation = 32
	PresentationSound       Presentation = 33
	PresentationVibration   Presentation = 34
	PresentationMoisture    Presentation = 35
)

// Presentation types added in protocol 2.0.
const (
	PresentationInfo         Presentation = 36
	PresentationGas          Presentation = 37
	PresentationGPS          Presentation = 38
	PresentationWaterQuality Presentation = 39
)

// presentationNames maps presentation types to their protocol names.
var presentationNames = map[Presentation]string{
	PresentationDoor:                "S_DOOR",
	PresentationMotion:              "S_MOTION",
	PresentationSmoke:               "S_SMOKE",
	PresentationBinary:              "S_BINARY",
	PresentationDimmer:              "S_DIMMER",
	PresentationCover:               "S_COVER",
	PresentationTemp:                "S_TEMP",
	PresentationHum:                 "S_HUM",
	PresentationBaro:                "S_BARO",
	PresentationWind:                "S_WIND",
	PresentationRain:                "S_RAIN",
	PresentationUV:                  "S_UV",
	PresentationWeight:              "S_WEIGHT",
	PresentationPower:               "S_POWER",
	PresentationHeater:              "S_HEATER",
	PresentationDistance:            "S_DISTANCE",
	PresentationLightLevel:          "S_LIGHT_LEVEL",
	PresentationArduinoNode:         "S_ARDUINO_NODE",
	PresentationArduinoRepeaterNode: "S_ARDUINO_REPEATER_NODE",
	PresentationLock:                "S_LOCK",
	PresentationIR:                  "S_IR",
	PresentationWater:               "S_WATER",
	PresentationAirQuality:          "S_AIR_QUALITY",
	PresentationCustom:              "S_CUSTOM",
	PresentationDust:                "S_DUST",
	PresentationSceneController:     "S_SCENE_CONTROLLER",
	PresentationRGBLight:            "S_RGB_LIGHT",
	PresentationRGBWLight:           "S_RGBW_LIGHT",
	PresentationColorSensor:         "S_COLOR_SENSOR",
	PresentationHVAC:                "S_HVAC",
	PresentationMultimeter:          "S_MULTIMETER",
	PresentationSprinkler:           "S_SPRINKLER",
	PresentationWaterLeak:           "S_WATER_LEAK",
	PresentationSound:               "S_SOUND",
	PresentationVibration:           "S_VIBRATION",
	PresentationMoisture:            "S_MOISTURE",
	PresentationInfo:                "S_INFO",
	PresentationGas:                 "S_GAS",
	PresentationGPS:                 "S_GPS",
	PresentationWaterQuality:        "S_WATER_QUALITY",
}

// String returns the protocol name of the presentation type.
func (p Presentation) String() string {
	if name, ok := presentationNames[p]; ok {
		return name
	}
	return fmt.Sprintf("presentation(%d)", uint8(p))
}

// SetReq identifies the value type carried by a set or req message.
type SetReq uint8

// Value types available since protocol 1.4.
const (
	SetReqTemp       SetReq = 0
	SetReqHum        SetReq = 1
	SetReqStatus     SetReq = 2 // named V_LIGHT before 1.5
	SetReqPercentage SetReq = 3 // named V_DIMMER before 1.5
	SetReqPressure   SetReq = 4
	SetReqForecast   SetReq = 5
	SetReqRain       SetReq = 6
	SetReqRainRate   SetReq = 7
	SetReqWind       SetReq = 8
	SetReqGust       SetReq = 9
	SetReqDirection  SetReq = 10
	SetReqUV         SetReq = 11
	SetReqWeight     SetReq = 12
	SetReqDistance   SetReq = 13
	SetReqImpedance  SetReq = 14
	SetReqArmed      SetReq = 15
	SetReqTripped    SetReq = 16
	SetReqWatt       SetReq = 17
	SetReqKWH        SetReq = 18
	SetReqSceneOn    SetReq = 19
	SetReqSceneOff   SetReq = 20
	// 21 and 22 were V_HEATER / V_HEATER_SW before 1.5.
	SetReqHVACFlowState SetReq = 21
	SetReqHVACSpeed     SetReq = 22
	SetReqLightLevel    SetReq = 23
	SetReqVar1          SetReq = 24
	SetReqVar2          SetReq = 25
	SetReqVar3          SetReq = 26
	SetReqVar4          SetReq = 27
	SetReqVar5          SetReq = 28
	SetReqUp            SetReq = 29
	SetReqDown          SetReq = 30
	SetReqStop          SetReq = 31
	SetReqIRSend        SetReq = 32
	SetReqIRReceive     SetReq = 33
	SetReqFlow          SetReq = 34
	SetReqVolume        SetReq = 35
	SetReqLockStatus    SetReq = 36
	SetReqLevel         SetReq = 37 // named V_DUST_LEVEL before 1.5
	SetReqVoltage       SetReq = 38
	SetReqCurrent       SetReq = 39
)

// Value types added in protocol 1.5.
const (
	SetReqRGB              SetReq = 40
	SetReqRGBW             SetReq = 41
	SetReqID               SetReq = 42
	SetReqUnitPrefix       SetReq = 43
	SetReqHVACSetPointCool SetReq = 44
	SetReqHVACSetPointHeat SetReq = 45
	SetReqHVACFlowMode     SetReq = 46
)

// Value types added in protocol 2.0.
const (
	SetReqText        SetReq = 47
	SetReqCustom      SetReq = 48
	SetReqPosition    SetReq = 49
	SetReqIRRecord    SetReq = 50
	SetReqPH          SetReq = 51
	SetReqORP         SetReq = 52
	SetReqEC          SetReq = 53
	SetReqVAR         SetReq = 54
	SetReqVA          SetReq = 55
	SetReqPowerFactor SetReq = 56
)

// setReqNames maps value types to their protocol names.
var setReqNames = map[SetReq]string{
	SetReqTemp:             "V_TEMP",
	SetReqHum:              "V_HUM",
	SetReqStatus:           "V_STATUS",
	SetReqPercentage:       "V_PERCENTAGE",
	SetReqPressure:         "V_PRESSURE",
	SetReqForecast:         "V_FORECAST",
	SetReqRain:             "V_RAIN",
	SetReqRainRate:         "V_RAINRATE",
	SetReqWind:             "V_WIND",
	SetReqGust:             "V_GUST",
	SetReqDirection:        "V_DIRECTION",
	SetReqUV:               "V_UV",
	SetReqWeight:           "V_WEIGHT",
	SetReqDistance:         "V_DISTANCE",
	SetReqImpedance:        "V_IMPEDANCE",
	SetReqArmed:            "V_ARMED",
	SetReqTripped:          "V_TRIPPED",
	SetReqWatt:             "V_WATT",
	SetReqKWH:              "V_KWH",
	SetReqSceneOn:          "V_SCENE_ON",
	SetReqSceneOff:         "V_SCENE_OFF",
	SetReqHVACFlowState:    "V_HVAC_FLOW_STATE",
	SetReqHVACSpeed:        "V_HVAC_SPEED",
	SetReqLightLevel:       "V_LIGHT_LEVEL",
	SetReqVar1:             "V_VAR1",
	SetReqVar2:             "V_VAR2",
	SetReqVar3:             "V_VAR3",
	SetReqVar4:             "V_VAR4",
	SetReqVar5:             "V_VAR5",
	SetReqUp:               "V_UP",
	SetReqDown:             "V_DOWN",
	SetReqStop:             "V_STOP",
	SetReqIRSend:           "V_IR_SEND",
	SetReqIRReceive:        "V_IR_RECEIVE",
	SetReqFlow:             "V_FLOW",
	SetReqVolume:           "V_VOLUME",
	SetReqLockStatus:       "V_LOCK_STATUS",
	SetReqLevel:            "V_LEVEL",
	SetReqVoltage:          "V_VOLTAGE",
	SetReqCurrent:          "V_CURRENT",
	SetReqRGB:              "V_RGB",
	SetReqRGBW:             "V_RGBW",
	SetReqID:               "V_ID",
	SetReqUnitPrefix:       "V_UNIT_PREFIX",
	SetReqHVACSetPointCool: "V_HVAC_SETPOINT_COOL",
	SetReqHVACSetPointHeat: "V_HVAC_SETPOINT_HEAT",
	SetReqHVACFlowMode:     "V_HVAC_FLOW_MODE",
	SetReqText:             "V_TEXT",
	SetReqCustom:           "V_CUSTOM",
	SetReqPosition:         "V_POSITION",
	SetReqIRRecord:         "V_IR_RECORD",
	SetReqPH:               "V_PH",
	SetReqORP:              "V_ORP",
	SetReqEC:               "V_EC",
	SetReqVAR:              "V_VAR",
	SetReqVA:               "V_VA",
	SetReqPowerFactor:      "V_POWER_FACTOR",
}

// String returns the protocol name of the value type.
func (v SetReq) String() string {
	if name, ok := setReqNames[v]; ok {
		return name
	}
	return fmt.Sprintf("setreq(%d)", uint8(v))
}

// Internal identifies the subtype of an internal message.
// Only the subtypes the core reacts to are enumerated here.
type Internal uint8

// Internal subtypes.
const (
	InternalBatteryLevel         Internal = 0
	InternalTime                 Internal = 1
	InternalVersion              Internal = 2
	InternalIDRequest            Internal = 3
	InternalIDResponse           Internal = 4
	InternalConfig               Internal = 6
	InternalSketchName           Internal = 11
	InternalSketchVersion        Internal = 12
	InternalReboot               Internal = 13
	InternalGatewayReady         Internal = 14
	InternalHeartbeatRequest     Internal = 18
	InternalPresentation         Internal = 19
	InternalDiscoverRequest      Internal = 20
	InternalDiscoverResponse     Internal = 21
	InternalHeartbeatResponse    Internal = 22
	InternalPreSleepNotification Internal = 32
	InternalPostSleepNotify      Internal = 33
)

// String returns the protocol name of the internal subtype.
func (i Internal) String() string {
	switch i {
	case InternalBatteryLevel:
		return "I_BATTERY_LEVEL"
	case InternalTime:
		return "I_TIME"
	case InternalVersion:
		return "I_VERSION"
	case InternalIDRequest:
		return "I_ID_REQUEST"
	case InternalIDResponse:
		return "I_ID_RESPONSE"
	case InternalConfig:
		return "I_CONFIG"
	case InternalSketchName:
		return "I_SKETCH_NAME"
	case InternalSketchVersion:
		return "I_SKETCH_VERSION"
	case InternalReboot:
		return "I_REBOOT"
	case InternalGatewayReady:
		return "I_GATEWAY_READY"
	case InternalHeartbeatRequest:
		return "I_HEARTBEAT_REQUEST"
	case InternalPresentation:
		return "I_PRESENTATION"
	case InternalDiscoverRequest:
		return "I_DISCOVER_REQUEST"
	case InternalDiscoverResponse:
		return "I_DISCOVER_RESPONSE"
	case InternalHeartbeatResponse:
		return "I_HEARTBEAT_RESPONSE"
	case InternalPreSleepNotification:
		return "I_PRE_SLEEP_NOTIFICATION"
	case InternalPostSleepNotify:
		return "I_POST_SLEEP_NOTIFICATION"
	}
	return fmt.Sprintf("internal(%d)", uint8(i))
}
