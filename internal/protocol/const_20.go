package protocol

// const20 builds the constant table shared by protocol versions 2.0,
// 2.1 and 2.2, extending 1.5 with text, GPS and water-quality support.
// The 2.x patch revisions add no constants of their own.
func const20(base *Const) *Const {
	c := extend(base, "2.0")

	c.Validators[SetReqText] = text
	c.Validators[SetReqCustom] = text
	c.Validators[SetReqPosition] = position
	c.Validators[SetReqIRRecord] = text
	c.Validators[SetReqPH] = numeric
	c.Validators[SetReqORP] = numeric
	c.Validators[SetReqEC] = numeric
	c.Validators[SetReqVAR] = numeric
	c.Validators[SetReqVA] = numeric
	c.Validators[SetReqPowerFactor] = numeric

	c.ValidTypes[PresentationPower] = append(c.ValidTypes[PresentationPower],
		SetReqVAR, SetReqVA, SetReqPowerFactor)
	c.ValidTypes[PresentationIR] = append(c.ValidTypes[PresentationIR], SetReqIRRecord)
	c.ValidTypes[PresentationCustom] = append(c.ValidTypes[PresentationCustom], SetReqCustom)

	c.ValidTypes[PresentationInfo] = []SetReq{SetReqText}
	c.ValidTypes[PresentationGas] = []SetReq{SetReqFlow, SetReqVolume}
	c.ValidTypes[PresentationGPS] = []SetReq{SetReqPosition}
	c.ValidTypes[PresentationWaterQuality] = []SetReq{
		SetReqTemp, SetReqPH, SetReqORP, SetReqEC, SetReqStatus,
	}

	return c
}
