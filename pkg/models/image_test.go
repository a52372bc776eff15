package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDrawableJSON(t *testing.T) {
	tests := []struct {
		name     string
		drawable Drawable
		want     string
	}{
		{
			"rectangle",
			NewRectangle().WithWidth(1920).WithHeight(1080).WithColor(MustRGB(0, 255, 0)),
			`{"type":"bitmap","x":0,"y":0,"width":1920,"height":1080,"color":"0,255,0","skip":false,"round":0}`,
		},
		{
			"url image without background",
			NewURLImage("https://host/a.png").WithWidth(64).WithHeight(64).WithCaching(true).WithRound(32),
			`{"type":"url","x":0,"y":0,"width":64,"height":64,"skip":false,"url":"https://host/a.png","cache":true,"round":32}`,
		},
		{
			"url image with background",
			NewURLImage("https://host/a.png").WithColor(MustColor("red")).WithX(5),
			`{"type":"url","x":5,"y":0,"width":1,"height":1,"color":"red","skip":false,"url":"https://host/a.png","cache":false,"round":0}`,
		},
		{
			"circle",
			NewCircle().WithColor(MustRGB(255, 255, 0)).WithRadius(100).WithX(10).WithY(10),
			`{"type":"circle","x":10,"y":10,"width":1,"height":1,"color":"255,255,0","skip":false,"radius":100}`,
		},
		{
			"triangle",
			NewTriangle().WithWidth(30).WithHeight(40).WithCut(CutBottomRight).WithSkip(true),
			`{"type":"triangle","x":0,"y":0,"width":30,"height":40,"color":"0,255,255","skip":true,"cut":"BottomRight"}`,
		},
		{
			"svg",
			NewSvg("M0 0L10 10").WithSize(24),
			`{"type":"svg","x":0,"y":0,"width":1,"height":1,"color":"0,255,255","skip":false,"path":"M0 0L10 10","size":24}`,
		},
		{
			"icon",
			NewIcon("mdi:account").WithSize(32).WithColor(MustColor("#ffffff")),
			`{"type":"icon","x":0,"y":0,"width":1,"height":1,"color":"#ffffff","skip":false,"icon":"mdi:account","size":32}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.drawable)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Unexpected JSON:\n got: %s\nwant: %s", data, tt.want)
			}
		})
	}
}

func TestSetWidthOnCircle(t *testing.T) {
	err := SetWidth(NewCircle(), 10)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Expected ErrUnsupported, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "width") || !strings.Contains(msg, "Circle") {
		t.Errorf("Expected message naming width and Circle, got '%s'", msg)
	}
	if !strings.Contains(msg, "WithRadius") {
		t.Errorf("Expected hint to use WithRadius, got '%s'", msg)
	}
}

func TestSizeUnsupportedVariants(t *testing.T) {
	for _, d := range []Drawable{NewCircle(), NewSvg("M0 0"), NewIcon("mdi:a")} {
		if err := SetWidth(d, 10); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected width to be unsupported, got %v", d.Type(), err)
		}
		if err := SetHeight(d, 10); !errors.Is(err, ErrUnsupported) || !strings.Contains(err.Error(), "height") {
			t.Errorf("%s: expected height to be unsupported, got %v", d.Type(), err)
		}
	}

	svgErr := SetHeight(NewSvg("M0 0"), 1)
	if !strings.Contains(svgErr.Error(), "Svg") || !strings.Contains(svgErr.Error(), "WithSize") {
		t.Errorf("Unexpected Svg message: %s", svgErr.Error())
	}
}

func TestSetWidthOnResizable(t *testing.T) {
	r := NewRectangle()
	if err := SetWidth(r, 100); err != nil {
		t.Fatalf("SetWidth failed: %v", err)
	}
	if err := SetHeight(r, 50); err != nil {
		t.Fatalf("SetHeight failed: %v", err)
	}
	if r.width != 100 || r.height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", r.width, r.height)
	}
	if err := SetWidth(r, 3001); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument above 3000, got %v", err)
	}
	if r.width != 100 {
		t.Errorf("Failed SetWidth must keep the previous value, got %d", r.width)
	}

	tri := NewTriangle()
	if err := SetWidth(tri, 0); err != nil {
		t.Errorf("Triangle accepts zero width: %v", err)
	}
	if err := SetHeight(NewURLImage("u"), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero height, got %v", err)
	}
}

func TestDrawableStickyErrors(t *testing.T) {
	tests := []struct {
		name     string
		drawable Drawable
		field    string
	}{
		{"rectangle width", NewRectangle().WithWidth(0), "Width"},
		{"rectangle height", NewRectangle().WithHeight(3001), "Height"},
		{"rectangle zero color", NewRectangle().WithColor(Color{}), "Color"},
		{"rectangle round", NewRectangle().WithRound(-1), "Round"},
		{"url empty", NewURLImage(""), "URL"},
		{"circle radius", NewCircle().WithRadius(0), "Radius"},
		{"triangle cut", NewTriangle().WithCut("Middle"), "Cut"},
		{"triangle width", NewTriangle().WithWidth(-1), "Width"},
		{"svg path", NewSvg(""), "Path"},
		{"svg size", NewSvg("M0 0").WithSize(0), "Size"},
		{"icon name", NewIcon("account"), "Icon"},
		{"icon empty", NewIcon(""), "Icon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.drawable.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, verr.Field)
			}
			if _, err := json.Marshal(tt.drawable); err == nil {
				t.Error("Expected Marshal to fail for an invalid drawable")
			}
		})
	}
}

func TestFirstErrorIsKept(t *testing.T) {
	r := NewRectangle().WithWidth(0).WithHeight(0)
	var verr *ValidationError
	if !errors.As(r.Err(), &verr) || verr.Field != "Width" {
		t.Errorf("Expected first error on Width, got %v", r.Err())
	}
}

func TestURLImageZeroColorAllowed(t *testing.T) {
	u := NewURLImage("https://host/a.png").WithColor(MustColor("red")).WithColor(Color{})
	if err := u.Validate(); err != nil {
		t.Errorf("Expected no error clearing the background, got %v", err)
	}
	data, _ := json.Marshal(u)
	if strings.Contains(string(data), `"color"`) {
		t.Errorf("Expected color to be omitted, got %s", data)
	}
}

func TestRadiusAndSizeVariantsSendFixedSize(t *testing.T) {
	for _, d := range []Drawable{NewCircle(), NewSvg("M0 0"), NewIcon("mdi:a")} {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("%s: Marshal failed: %v", d.Type(), err)
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("%s: Unmarshal failed: %v", d.Type(), err)
		}
		if decoded["width"] != float64(1) || decoded["height"] != float64(1) {
			t.Errorf("%s: expected width and height 1, got %v/%v", d.Type(), decoded["width"], decoded["height"])
		}
	}
}
