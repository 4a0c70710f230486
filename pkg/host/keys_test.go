package host

import "testing"

// TestParseKey 测试按键名称解析
func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{"Tab", "Tab", KeyTab, false},
		{"小写", "tab", KeyTab, false},
		{"Ctrl 别名", "Ctrl", KeyControl, false},
		{"带空格", " Shift ", KeyShift, false},
		{"未知按键", "F13", KeyUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestGameStateString 测试状态名称
func TestGameStateString(t *testing.T) {
	if GameStateLoggedIn.String() != "LOGGED_IN" {
		t.Errorf("GameStateLoggedIn.String() = %q", GameStateLoggedIn.String())
	}
	if GameState(99).String() != "UNKNOWN" {
		t.Errorf("GameState(99).String() = %q", GameState(99).String())
	}
}
