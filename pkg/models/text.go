package models

import (
	"encoding/json"
	"math"
)

// TextAlignment is serialized as a single letter
type TextAlignment string

const (
	AlignLeft   TextAlignment = "l"
	AlignMiddle TextAlignment = "m"
	AlignRight  TextAlignment = "r"
)

func (a TextAlignment) valid() bool {
	return a == AlignLeft || a == AlignMiddle || a == AlignRight
}

const defaultFont = "Sans Serif"

// Text is a text layer. SingleLine and MultiLine are the only implementations.
type Text interface {
	json.Marshaler
	Validate() error
	isText()
}

// textStyle holds the attributes shared by both text variants
type textStyle struct {
	sticky
	x, y                int
	align               TextAlignment
	size                int
	font                string
	color               Color
	background          Color
	bold                bool
	italic              bool
	underline           bool
	weight              int
	maxWidth, maxHeight int
	outline             bool
	outlineWidth        int
	outlineColor        Color
	outlineBlur         int
}

func newTextStyle() textStyle {
	return textStyle{
		align:        AlignLeft,
		size:         1,
		font:         defaultFont,
		color:        Color{value: "0,0,0"},
		background:   Color{value: "0,0,0,0"},
		weight:       500,
		outlineWidth: 5,
		outlineColor: Color{value: "white"},
		outlineBlur:  1,
	}
}

func (s *textStyle) setX(variant string, x int) {
	if s.record(checkMin(variant, "PosX", x, 0)) {
		s.x = x
	}
}

func (s *textStyle) setY(variant string, y int) {
	if s.record(checkMin(variant, "PosY", y, 0)) {
		s.y = y
	}
}

func (s *textStyle) setAlign(variant string, a TextAlignment) {
	if !a.valid() {
		s.record(invalid(variant, "TextAlignment", "TextAlignment %q is not one of l, m, r", string(a)))
		return
	}
	s.align = a
}

func (s *textStyle) setSize(variant string, size int) {
	if s.record(checkMin(variant, "Size", size, 1)) {
		s.size = size
	}
}

func (s *textStyle) setFont(variant, font string) {
	if s.record(checkNotEmpty(variant, "Font", font)) {
		s.font = font
	}
}

func (s *textStyle) setColor(variant, field string, c Color, dst *Color) {
	if s.record(checkColor(variant, field, c)) {
		*dst = c
	}
}

func (s *textStyle) setNonNegative(variant, field string, value int, dst *int) {
	if s.record(checkMin(variant, field, value, 0)) {
		*dst = value
	}
}

func (s *textStyle) validate(variant string) error {
	if s.err != nil {
		return s.err
	}
	checks := []error{
		checkMin(variant, "PosX", s.x, 0),
		checkMin(variant, "PosY", s.y, 0),
		checkMin(variant, "Size", s.size, 1),
		checkNotEmpty(variant, "Font", s.font),
		checkColor(variant, "Color", s.color),
		checkColor(variant, "BackgroundColor", s.background),
		checkMin(variant, "Weight", s.weight, 0),
		checkMin(variant, "MaxWidth", s.maxWidth, 0),
		checkMin(variant, "MaxHeight", s.maxHeight, 0),
		checkMin(variant, "OutlineWidth", s.outlineWidth, 0),
		checkColor(variant, "OutlineColor", s.outlineColor),
		checkMin(variant, "OutlineBlur", s.outlineBlur, 0),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if !s.align.valid() {
		return invalid(variant, "TextAlignment", "TextAlignment may not be empty")
	}
	return nil
}

// wireText is the shared part of the text JSON layout
type wireText struct {
	X            int           `json:"x"`
	Y            int           `json:"y"`
	Align        TextAlignment `json:"align"`
	Size         int           `json:"size"`
	Font         string        `json:"font"`
	Color        Color         `json:"color"`
	Back         Color         `json:"back"`
	Bold         bool          `json:"bold"`
	Italic       bool          `json:"italic"`
	Underline    bool          `json:"underline"`
	Weight       int           `json:"weight"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Outline      bool          `json:"outline"`
	OutlineWidth int           `json:"outlinewidth"`
	OutlineColor Color         `json:"outlinecolor"`
	OutlineBlur  int           `json:"outlineblur"`
}

func (s *textStyle) wire() wireText {
	return wireText{
		X:            s.x,
		Y:            s.y,
		Align:        s.align,
		Size:         s.size,
		Font:         s.font,
		Color:        s.color,
		Back:         s.background,
		Bold:         s.bold,
		Italic:       s.italic,
		Underline:    s.underline,
		Weight:       s.weight,
		Width:        s.maxWidth,
		Height:       s.maxHeight,
		Outline:      s.outline,
		OutlineWidth: s.outlineWidth,
		OutlineColor: s.outlineColor,
		OutlineBlur:  s.outlineBlur,
	}
}

// SingleLine is a text layer with one line of text
type SingleLine struct {
	textStyle
	text string
}

// NewSingleLine creates a text layer for a non-empty line
func NewSingleLine(text string) *SingleLine {
	t := &SingleLine{textStyle: newTextStyle()}
	if t.record(checkNotEmpty("SingleLine", "Text", text)) {
		t.text = text
	}
	return t
}

func (*SingleLine) isText() {}

func (t *SingleLine) WithX(x int) *SingleLine {
	t.setX("SingleLine", x)
	return t
}

func (t *SingleLine) WithY(y int) *SingleLine {
	t.setY("SingleLine", y)
	return t
}

func (t *SingleLine) WithTextAlignment(a TextAlignment) *SingleLine {
	t.setAlign("SingleLine", a)
	return t
}

func (t *SingleLine) WithSize(size int) *SingleLine {
	t.setSize("SingleLine", size)
	return t
}

func (t *SingleLine) WithFont(font string) *SingleLine {
	t.setFont("SingleLine", font)
	return t
}

func (t *SingleLine) WithColor(c Color) *SingleLine {
	t.setColor("SingleLine", "Color", c, &t.color)
	return t
}

func (t *SingleLine) WithBackgroundColor(c Color) *SingleLine {
	t.setColor("SingleLine", "BackgroundColor", c, &t.background)
	return t
}

func (t *SingleLine) AsBold(bold bool) *SingleLine {
	t.bold = bold
	return t
}

func (t *SingleLine) AsItalic(italic bool) *SingleLine {
	t.italic = italic
	return t
}

func (t *SingleLine) AsUnderline(underline bool) *SingleLine {
	t.underline = underline
	return t
}

func (t *SingleLine) WithWeight(weight int) *SingleLine {
	t.setNonNegative("SingleLine", "Weight", weight, &t.weight)
	return t
}

// WithMaxWidth limits the rendered width. 0 means unbounded.
func (t *SingleLine) WithMaxWidth(maxWidth int) *SingleLine {
	t.setNonNegative("SingleLine", "MaxWidth", maxWidth, &t.maxWidth)
	return t
}

// WithMaxHeight limits the rendered height. 0 means unbounded.
func (t *SingleLine) WithMaxHeight(maxHeight int) *SingleLine {
	t.setNonNegative("SingleLine", "MaxHeight", maxHeight, &t.maxHeight)
	return t
}

// WithOutline toggles the outline. The outline attributes are kept either way.
func (t *SingleLine) WithOutline(outline bool) *SingleLine {
	t.outline = outline
	return t
}

func (t *SingleLine) WithOutlineWidth(width int) *SingleLine {
	t.setNonNegative("SingleLine", "OutlineWidth", width, &t.outlineWidth)
	return t
}

func (t *SingleLine) WithOutlineColor(c Color) *SingleLine {
	t.setColor("SingleLine", "OutlineColor", c, &t.outlineColor)
	return t
}

func (t *SingleLine) WithOutlineBlur(blur int) *SingleLine {
	t.setNonNegative("SingleLine", "OutlineBlur", blur, &t.outlineBlur)
	return t
}

func (t *SingleLine) Validate() error {
	if err := t.validate("SingleLine"); err != nil {
		return err
	}
	return checkNotEmpty("SingleLine", "Text", t.text)
}

func (t *SingleLine) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		wireText
		Text string `json:"text"`
	}{t.wire(), t.text})
}

// MultiLine is a text layer with several lines and a line spacing factor
type MultiLine struct {
	textStyle
	lines       []string
	lineSpacing float64
}

// NewMultiLine creates a text layer from one or more non-empty lines
func NewMultiLine(lines ...string) *MultiLine {
	t := &MultiLine{textStyle: newTextStyle(), lineSpacing: 1}
	if t.record(checkLines(lines)) {
		t.lines = append([]string(nil), lines...)
	}
	return t
}

func checkLines(lines []string) error {
	if lines == nil {
		return invalid("MultiLine", "Lines", "Lines may not be null")
	}
	if len(lines) == 0 {
		return invalid("MultiLine", "Lines", "Lines may not be empty")
	}
	for i, line := range lines {
		if line == "" {
			return invalid("MultiLine", "Lines", "Line %d may not be empty", i)
		}
	}
	return nil
}

func (*MultiLine) isText() {}

func (t *MultiLine) WithX(x int) *MultiLine {
	t.setX("MultiLine", x)
	return t
}

func (t *MultiLine) WithY(y int) *MultiLine {
	t.setY("MultiLine", y)
	return t
}

func (t *MultiLine) WithTextAlignment(a TextAlignment) *MultiLine {
	t.setAlign("MultiLine", a)
	return t
}

func (t *MultiLine) WithSize(size int) *MultiLine {
	t.setSize("MultiLine", size)
	return t
}

func (t *MultiLine) WithFont(font string) *MultiLine {
	t.setFont("MultiLine", font)
	return t
}

func (t *MultiLine) WithColor(c Color) *MultiLine {
	t.setColor("MultiLine", "Color", c, &t.color)
	return t
}

func (t *MultiLine) WithBackgroundColor(c Color) *MultiLine {
	t.setColor("MultiLine", "BackgroundColor", c, &t.background)
	return t
}

func (t *MultiLine) AsBold(bold bool) *MultiLine {
	t.bold = bold
	return t
}

func (t *MultiLine) AsItalic(italic bool) *MultiLine {
	t.italic = italic
	return t
}

func (t *MultiLine) AsUnderline(underline bool) *MultiLine {
	t.underline = underline
	return t
}

func (t *MultiLine) WithWeight(weight int) *MultiLine {
	t.setNonNegative("MultiLine", "Weight", weight, &t.weight)
	return t
}

func (t *MultiLine) WithMaxWidth(maxWidth int) *MultiLine {
	t.setNonNegative("MultiLine", "MaxWidth", maxWidth, &t.maxWidth)
	return t
}

func (t *MultiLine) WithMaxHeight(maxHeight int) *MultiLine {
	t.setNonNegative("MultiLine", "MaxHeight", maxHeight, &t.maxHeight)
	return t
}

func (t *MultiLine) WithOutline(outline bool) *MultiLine {
	t.outline = outline
	return t
}

func (t *MultiLine) WithOutlineWidth(width int) *MultiLine {
	t.setNonNegative("MultiLine", "OutlineWidth", width, &t.outlineWidth)
	return t
}

func (t *MultiLine) WithOutlineColor(c Color) *MultiLine {
	t.setColor("MultiLine", "OutlineColor", c, &t.outlineColor)
	return t
}

func (t *MultiLine) WithOutlineBlur(blur int) *MultiLine {
	t.setNonNegative("MultiLine", "OutlineBlur", blur, &t.outlineBlur)
	return t
}

// WithLineSpacing sets the spacing factor between lines, at least 1
func (t *MultiLine) WithLineSpacing(spacing float64) *MultiLine {
	if err := checkLineSpacing(spacing); err != nil {
		t.record(err)
		return t
	}
	t.lineSpacing = spacing
	return t
}

func (t *MultiLine) Validate() error {
	if err := t.validate("MultiLine"); err != nil {
		return err
	}
	if err := checkLines(t.lines); err != nil {
		return err
	}
	return checkLineSpacing(t.lineSpacing)
}

func checkLineSpacing(spacing float64) error {
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return invalid("MultiLine", "LineSpacing", "LineSpacing must be a finite number")
	}
	if spacing < 1 {
		return invalid("MultiLine", "LineSpacing", "LineSpacing may not be less than 1")
	}
	return nil
}

func (t *MultiLine) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		wireText
		Texts []string `json:"texts"`
		Line  float64  `json:"line"`
	}{t.wire(), t.lines, t.lineSpacing})
}
