package protocol

// const15 builds the constant table for protocol version 1.5 by
// extending 1.4 with colour, HVAC, multimeter and moisture support.
func const15(base *Const) *Const {
	c := extend(base, "1.5")

	c.Validators[SetReqRGB] = hexColor(6)
	c.Validators[SetReqRGBW] = hexColor(8)
	c.Validators[SetReqID] = text
	c.Validators[SetReqUnitPrefix] = text
	c.Validators[SetReqHVACSetPointCool] = numeric
	c.Validators[SetReqHVACSetPointHeat] = numeric
	c.Validators[SetReqHVACFlowMode] = oneOf("Auto", "ContinuousOn", "PeriodicOn")

	// 1.5 turns the free-form heater payloads into enumerated HVAC modes.
	c.Validators[SetReqHVACFlowState] = oneOf("Off", "HeatOn", "CoolOn", "AutoChangeOver")
	c.Validators[SetReqHVACSpeed] = oneOf("Min", "Normal", "Max", "Auto")

	c.ValidTypes[PresentationTemp] = append(c.ValidTypes[PresentationTemp], SetReqID)
	c.ValidTypes[PresentationDistance] = append(c.ValidTypes[PresentationDistance], SetReqUnitPrefix)
	c.ValidTypes[PresentationWater] = append(c.ValidTypes[PresentationWater], SetReqUnitPrefix)
	c.ValidTypes[PresentationAirQuality] = append(c.ValidTypes[PresentationAirQuality], SetReqUnitPrefix)
	c.ValidTypes[PresentationDust] = append(c.ValidTypes[PresentationDust], SetReqUnitPrefix)
	c.ValidTypes[PresentationLightLevel] = append(c.ValidTypes[PresentationLightLevel], SetReqLevel)
	c.ValidTypes[PresentationHeater] = append(c.ValidTypes[PresentationHeater], SetReqHVACSetPointHeat, SetReqStatus)

	c.ValidTypes[PresentationRGBLight] = []SetReq{SetReqRGB, SetReqStatus, SetReqPercentage, SetReqWatt}
	c.ValidTypes[PresentationRGBWLight] = []SetReq{SetReqRGBW, SetReqStatus, SetReqPercentage, SetReqWatt}
	c.ValidTypes[PresentationColorSensor] = []SetReq{SetReqRGB}
	c.ValidTypes[PresentationHVAC] = []SetReq{
		SetReqStatus, SetReqTemp, SetReqHVACSetPointHeat, SetReqHVACSetPointCool,
		SetReqHVACFlowState, SetReqHVACFlowMode, SetReqHVACSpeed,
	}
	c.ValidTypes[PresentationMultimeter] = []SetReq{SetReqVoltage, SetReqCurrent, SetReqImpedance}
	c.ValidTypes[PresentationSprinkler] = []SetReq{SetReqStatus, SetReqTripped}
	c.ValidTypes[PresentationWaterLeak] = []SetReq{SetReqTripped, SetReqArmed}
	c.ValidTypes[PresentationSound] = []SetReq{SetReqTripped, SetReqArmed, SetReqLevel}
	c.ValidTypes[PresentationVibration] = []SetReq{SetReqTripped, SetReqArmed, SetReqLevel}
	c.ValidTypes[PresentationMoisture] = []SetReq{SetReqTripped, SetReqArmed, SetReqLevel}

	return c
}
