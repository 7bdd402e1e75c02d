package protocol

import (
	"errors"
	"testing"
)

func TestGetConst(t *testing.T) {
	t.Run("known versions resolve", func(t *testing.T) {
		for _, v := range []string{"1.4", "1.5", "2.0", "2.1", "2.2"} {
			if _, err := GetConst(v); err != nil {
				t.Errorf("GetConst(%q) error = %v, want nil", v, err)
			}
		}
	})

	t.Run("patch revisions share the 2.0 tables", func(t *testing.T) {
		c20, _ := GetConst("2.0")
		c21, _ := GetConst("2.1")
		c22, _ := GetConst("2.2")
		if c21 != c20 || c22 != c20 {
			t.Error("2.1 and 2.2 should alias the 2.0 table")
		}
	})

	t.Run("unknown versions are a hard failure", func(t *testing.T) {
		for _, v := range []string{"", "1.3", "9.9", "2", "latest"} {
			if _, err := GetConst(v); !errors.Is(err, ErrUnknownVersion) {
				t.Errorf("GetConst(%q) error = %v, want ErrUnknownVersion", v, err)
			}
		}
	})
}

func TestConst_VersionDifferences(t *testing.T) {
	c14, _ := GetConst("1.4")
	c15, _ := GetConst("1.5")
	c20, _ := GetConst("2.0")

	t.Run("value types appear in their version", func(t *testing.T) {
		if c14.HasSetReq(SetReqRGB) {
			t.Error("1.4 should not know V_RGB")
		}
		if !c15.HasSetReq(SetReqRGB) {
			t.Error("1.5 should know V_RGB")
		}
		if c15.HasSetReq(SetReqText) {
			t.Error("1.5 should not know V_TEXT")
		}
		if !c20.HasSetReq(SetReqText) {
			t.Error("2.0 should know V_TEXT")
		}
	})

	t.Run("presentation types appear in their version", func(t *testing.T) {
		if c14.HasPresentation(PresentationRGBLight) {
			t.Error("1.4 should not know S_RGB_LIGHT")
		}
		if !c15.HasPresentation(PresentationRGBLight) {
			t.Error("1.5 should know S_RGB_LIGHT")
		}
		if !c20.HasPresentation(PresentationWaterQuality) {
			t.Error("2.0 should know S_WATER_QUALITY")
		}
	})

	t.Run("validators tighten across versions", func(t *testing.T) {
		// 1.4 treats the HVAC flow state as free text; 1.5 restricts it
		// to the documented modes.
		if err := c14.ValidatePayload(SetReqHVACFlowState, "toasty"); err != nil {
			t.Errorf("1.4 ValidatePayload() error = %v, want nil", err)
		}
		if err := c15.ValidatePayload(SetReqHVACFlowState, "toasty"); err == nil {
			t.Error("1.5 ValidatePayload() error = nil, want rejection")
		}
		if err := c15.ValidatePayload(SetReqHVACFlowState, "HeatOn"); err != nil {
			t.Errorf("1.5 ValidatePayload(HeatOn) error = %v, want nil", err)
		}
	})

	t.Run("later versions do not leak into 1.4", func(t *testing.T) {
		// extend() copies the tables, so registering 1.5 entries must not
		// have mutated the base.
		if err := c14.ValidatePayload(SetReqTripped, "1"); err != nil {
			t.Errorf("ValidatePayload() error = %v, want nil", err)
		}
		if c14.HasSetReq(SetReqText) {
			t.Error("2.0 additions leaked into the 1.4 table")
		}
	})
}

func TestConst_ValidatePayload(t *testing.T) {
	c14, _ := GetConst("1.4")

	t.Run("unknown value type", func(t *testing.T) {
		err := c14.ValidatePayload(SetReqText, "hi")
		if !errors.Is(err, ErrUnknownValueType) {
			t.Errorf("ValidatePayload() error = %v, want ErrUnknownValueType", err)
		}
	})

	t.Run("validator failure is wrapped", func(t *testing.T) {
		err := c14.ValidatePayload(SetReqStatus, "yes")
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ValidatePayload() error = %v, want ErrInvalidValue", err)
		}
	})
}
