package protocol

import (
	"strings"
	"testing"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		value     string
		wantErr   bool
	}{
		{"text accepts short payload", text, "hello", false},
		{"text accepts empty payload", text, "", false},
		{"text rejects oversize payload", text, strings.Repeat("x", 26), true},

		{"numeric accepts integer", numeric, "42", false},
		{"numeric accepts decimal", numeric, "21.5", false},
		{"numeric accepts negative", numeric, "-3.2", false},
		{"numeric rejects words", numeric, "warm", true},
		{"numeric rejects empty", numeric, "", true},

		{"binary accepts 0", binary, "0", false},
		{"binary accepts 1", binary, "1", false},
		{"binary rejects 2", binary, "2", true},
		{"binary rejects true", binary, "true", true},

		{"percent accepts bounds", percent, "100", false},
		{"percent accepts zero", percent, "0", false},
		{"percent rejects over", percent, "101", true},
		{"percent rejects negative", percent, "-1", true},
		{"percent rejects decimal", percent, "50.5", true},

		{"rgb accepts six digits", hexColor(6), "ff00aa", false},
		{"rgb rejects short", hexColor(6), "fff", true},
		{"rgb rejects non-hex", hexColor(6), "gg00aa", true},
		{"rgbw accepts eight digits", hexColor(8), "ff00aa80", false},

		{"oneOf accepts listed", oneOf("Off", "HeatOn"), "HeatOn", false},
		{"oneOf rejects unlisted", oneOf("Off", "HeatOn"), "heaton", true},

		{"position accepts triple", position, "55.7,13.3,101", false},
		{"position rejects pair", position, "55.7,13.3", true},
		{"position rejects words", position, "a,b,c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("validator(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
