package models

import (
	"encoding/json"
	"errors"
	"image/color"
	"testing"
)

func TestRGB(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    string
		wantErr bool
	}{
		{"black", 0, 0, 0, "0,0,0", false},
		{"green", 0, 255, 0, "0,255,0", false},
		{"mixed", 12, 34, 56, "12,34,56", false},
		{"red too large", 256, 0, 0, "", true},
		{"blue negative", 0, 0, -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := RGB(tt.r, tt.g, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("Expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RGB failed: %v", err)
			}
			if c.String() != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, c.String())
			}
		})
	}
}

func TestRGBA(t *testing.T) {
	c, err := RGBA(1, 2, 3, 4)
	if err != nil {
		t.Fatalf("RGBA failed: %v", err)
	}
	if c.String() != "1,2,3,4" {
		t.Errorf("Expected '1,2,3,4', got '%s'", c.String())
	}

	_, err = RGBA(0, 0, 0, 300)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "Alpha value" {
		t.Errorf("Expected alpha validation error, got %v", err)
	}
	if verr != nil && verr.Error() != "Color: Alpha value may not be less than 0 or larger than 255" {
		t.Errorf("Unexpected message: %s", verr.Error())
	}
}

func TestColorFromString(t *testing.T) {
	c, err := ColorFromString("#000000")
	if err != nil || c.String() != "#000000" {
		t.Errorf("Expected '#000000', got '%s' (err %v)", c.String(), err)
	}
	if _, err := ColorFromString(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for empty string, got %v", err)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  string
	}{
		{"opaque", color.RGBA{R: 255, G: 128, B: 0, A: 255}, "255,128,0"},
		{"nrgba translucent", color.NRGBA{R: 255, G: 0, B: 0, A: 128}, "255,0,0,128"},
		{"transparent", color.RGBA{}, "0,0,0,0"},
		{"gray", color.Gray{Y: 10}, "10,10,10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.input).String(); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustRGB to panic")
		}
	}()
	MustRGB(-1, 0, 0)
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(MustRGB(0, 255, 0))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"0,255,0"` {
		t.Errorf("Expected JSON string, got %s", data)
	}

	var c Color
	if err := json.Unmarshal([]byte(`"red"`), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.String() != "red" {
		t.Errorf("Expected 'red', got '%s'", c.String())
	}

	var zero Color
	data, _ = json.Marshal(zero)
	if string(data) != "null" {
		t.Errorf("Expected null for zero color, got %s", data)
	}
}
