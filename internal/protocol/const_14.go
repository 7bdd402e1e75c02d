package protocol

// const14 builds the constant table for protocol version 1.4, the
// baseline every later version extends.
func const14() *Const {
	return &Const{
		Version: "1.4",
		Validators: map[SetReq]Validator{
			SetReqTemp:          numeric,
			SetReqHum:           numeric,
			SetReqStatus:        binary,
			SetReqPercentage:    percent,
			SetReqPressure:      numeric,
			SetReqForecast:      text,
			SetReqRain:          numeric,
			SetReqRainRate:      numeric,
			SetReqWind:          numeric,
			SetReqGust:          numeric,
			SetReqDirection:     numeric,
			SetReqUV:            numeric,
			SetReqWeight:        numeric,
			SetReqDistance:      numeric,
			SetReqImpedance:     numeric,
			SetReqArmed:         binary,
			SetReqTripped:       binary,
			SetReqWatt:          numeric,
			SetReqKWH:           numeric,
			SetReqSceneOn:       text,
			SetReqSceneOff:      text,
			SetReqHVACFlowState: text, // V_HEATER in 1.4: free-form mode string
			SetReqHVACSpeed:     text, // V_HEATER_SW in 1.4
			SetReqLightLevel:    numeric,
			SetReqVar1:          text,
			SetReqVar2:          text,
			SetReqVar3:          text,
			SetReqVar4:          text,
			SetReqVar5:          text,
			SetReqUp:            text,
			SetReqDown:          text,
			SetReqStop:          text,
			SetReqIRSend:        text,
			SetReqIRReceive:     text,
			SetReqFlow:          numeric,
			SetReqVolume:        numeric,
			SetReqLockStatus:    binary,
			SetReqLevel:         numeric,
			SetReqVoltage:       numeric,
			SetReqCurrent:       numeric,
		},
		ValidTypes: map[Presentation][]SetReq{
			PresentationDoor:                {SetReqTripped, SetReqArmed},
			PresentationMotion:              {SetReqTripped, SetReqArmed},
			PresentationSmoke:               {SetReqTripped, SetReqArmed},
			PresentationBinary:              {SetReqStatus, SetReqWatt},
			PresentationDimmer:              {SetReqStatus, SetReqPercentage, SetReqWatt},
			PresentationCover:               {SetReqUp, SetReqDown, SetReqStop, SetReqPercentage, SetReqStatus},
			PresentationTemp:                {SetReqTemp},
			PresentationHum:                 {SetReqHum},
			PresentationBaro:                {SetReqPressure, SetReqForecast},
			PresentationWind:                {SetReqWind, SetReqGust, SetReqDirection},
			PresentationRain:                {SetReqRain, SetReqRainRate},
			PresentationUV:                  {SetReqUV},
			PresentationWeight:              {SetReqWeight, SetReqImpedance},
			PresentationPower:               {SetReqWatt, SetReqKWH},
			PresentationHeater:              {SetReqHVACFlowState, SetReqHVACSpeed, SetReqTemp},
			PresentationDistance:            {SetReqDistance},
			PresentationLightLevel:          {SetReqLightLevel},
			PresentationArduinoNode:         {},
			PresentationArduinoRepeaterNode: {},
			PresentationLock:                {SetReqLockStatus},
			PresentationIR:                  {SetReqIRSend, SetReqIRReceive},
			PresentationWater:               {SetReqFlow, SetReqVolume},
			PresentationAirQuality:          {SetReqLevel},
			PresentationCustom:              {SetReqVar1, SetReqVar2, SetReqVar3, SetReqVar4, SetReqVar5},
			PresentationDust:                {SetReqLevel},
			PresentationSceneController:     {SetReqSceneOn, SetReqSceneOff},
		},
	}
}
