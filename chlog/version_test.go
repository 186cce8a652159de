package chlog

import "testing"

func TestParseVersionUpstream(t *testing.T) {
	tests := []struct {
		in         string
		wantUpOK   bool
		wantRevUse bool
	}{
		{"3.3.4-1", true, true},
		{"2:3.3.4-1", true, true},
		{"1.0", true, false},
		{"not-a-version-at-all", false, false},
	}
	for _, tt := range tests {
		v := ParseVersion(tt.in)
		if v.Raw != tt.in {
			t.Errorf("ParseVersion(%q).Raw = %q", tt.in, v.Raw)
		}
		if (v.Upstream != nil) != tt.wantUpOK {
			t.Errorf("ParseVersion(%q).Upstream present = %v, want %v", tt.in, v.Upstream != nil, tt.wantUpOK)
		}
	}
}

func TestVersionCompare(t *testing.T) {
	older := ParseVersion("3.3.3-1")
	newer := ParseVersion("3.3.4-1")
	if !older.Less(newer) {
		t.Errorf("%v should be less than %v", older, newer)
	}
	if !newer.Greater(older) {
		t.Errorf("%v should be greater than %v", newer, older)
	}
	same := ParseVersion("3.3.4-1")
	if !newer.Equal(same) {
		t.Errorf("%v should equal %v", newer, same)
	}
}

func TestVersionEpochDominates(t *testing.T) {
	epoch0 := ParseVersion("9.9.9-1")
	epoch1 := ParseVersion("1:0.0.1-1")
	if !epoch0.Less(epoch1) {
		t.Errorf("epoch 0 version should be less than epoch 1 version regardless of upstream text")
	}
}

func TestVersionRoundTripJSON(t *testing.T) {
	v := ParseVersion("2:3.3.4-1")
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"2:3.3.4-1"` {
		t.Fatalf("MarshalJSON = %s", data)
	}
	var got Version
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Raw != v.Raw || !got.Equal(v) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, v)
	}
}

func TestVersionValidateEmpty(t *testing.T) {
	var v Version
	if err := v.Validate(); err == nil {
		t.Error("empty Version.Validate() expected an error, got nil")
	}
	if !v.IsZero() {
		t.Error("empty Version.IsZero() = false, want true")
	}
}
