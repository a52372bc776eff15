package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func minimalBase() *Rectangle {
	return NewRectangle().WithWidth(1920).WithHeight(1080).WithColor(MustRGB(0, 255, 0))
}

func TestCustomImageMinimal(t *testing.T) {
	img, err := CreateBase(minimalBase()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := json.Marshal(img)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"base":{"type":"bitmap","x":0,"y":0,"width":1920,"height":1080,"color":"0,255,0","skip":false,"round":0},"images":[],"texts":[]}`
	if string(data) != want {
		t.Errorf("Unexpected JSON:\n got: %s\nwant: %s", data, want)
	}
}

func TestCustomImageLayered(t *testing.T) {
	img, err := CreateBase(minimalBase()).
		AddImage(NewCircle().WithColor(MustRGB(255, 255, 0)).WithRadius(100).WithX(10).WithY(10)).
		AddText(NewSingleLine("Test").WithColor(MustRGB(0, 0, 0)).WithSize(20).AsBold(true).WithX(10).WithY(20)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := json.Marshal(img)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("Expected exactly base, images and texts, got %d keys", len(decoded))
	}

	var images []map[string]interface{}
	var texts []map[string]interface{}
	json.Unmarshal(decoded["images"], &images)
	json.Unmarshal(decoded["texts"], &texts)

	if len(images) != 1 || images[0]["type"] != "circle" {
		t.Errorf("Expected one circle, got %v", images)
	}
	if len(texts) != 1 || texts[0]["align"] != "l" || texts[0]["text"] != "Test" {
		t.Errorf("Expected one left-aligned text, got %v", texts)
	}
}

func TestCustomImageOrdering(t *testing.T) {
	img, err := CreateBase(minimalBase()).
		AddImage(NewCircle().WithX(1)).
		AddImage(NewTriangle().WithX(2)).
		AddImage(NewIcon("mdi:star").WithX(3)).
		AddText(NewSingleLine("one")).
		AddText(NewMultiLine("two", "three")).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	images := img.Images()
	if len(images) != 3 || images[0].Type() != TypeCircle || images[1].Type() != TypeTriangle || images[2].Type() != TypeIcon {
		t.Errorf("Images out of order: %v", images)
	}

	data, _ := json.Marshal(img)
	s := string(data)
	if strings.Index(s, `"text":"one"`) > strings.Index(s, `"texts":["two","three"]`) {
		t.Errorf("Texts out of order: %s", s)
	}

	// Accessors return copies
	images[0] = nil
	if img.Images()[0] == nil {
		t.Error("Images() must return a copy")
	}
	if img.Base().Type() != TypeRectangle || len(img.Texts()) != 2 {
		t.Error("Unexpected base or texts")
	}
}

func TestCustomImageBuildErrors(t *testing.T) {
	_, err := CreateBase(nil).Build()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for nil base, got %v", err)
	}

	_, err = CreateBase(minimalBase()).AddImage(nil).AddText(nil).Build()
	if len(multierr.Errors(err)) != 2 {
		t.Errorf("Expected two errors for nil image and text, got %v", err)
	}

	_, err = CreateBase(minimalBase()).
		AddImage(NewCircle().WithRadius(0)).
		AddText(NewSingleLine("")).
		Build()
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("Expected every invalid layer to be reported, got %v", err)
	}
	if !strings.HasPrefix(errs[0].Error(), "images[0]: ") || !strings.HasPrefix(errs[1].Error(), "texts[0]: ") {
		t.Errorf("Expected layer positions in errors, got %v", errs)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("Expected aggregated error to match ErrInvalidArgument")
	}
}

func TestCustomImageGlobalOptions(t *testing.T) {
	img, err := CreateBase(minimalBase()).
		WithGlobalOptions(NewGlobalOptions().WithTextFont(Ptr("Roboto"))).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	data, _ := json.Marshal(img)
	if !strings.HasSuffix(string(data), `"options":{"textFont":"Roboto"}}`) {
		t.Errorf("Expected options key, got %s", data)
	}

	img, _ = CreateBase(minimalBase()).WithGlobalOptions(NewGlobalOptions()).Build()
	data, _ = json.Marshal(img)
	if strings.Contains(string(data), "options") {
		t.Errorf("Empty options must be omitted, got %s", data)
	}

	_, err = CreateBase(minimalBase()).WithGlobalOptions(NewGlobalOptions().WithTextSize(Ptr(0))).Build()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected invalid options to fail Build, got %v", err)
	}
}
