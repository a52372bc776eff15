package models

import "encoding/json"

// GlobalOptions are fallback values for text layers that omit their own.
// Unset options are left out of the serialized object.
type GlobalOptions struct {
	sticky
	textSize     *int
	textColor    *Color
	textFont     *string
	outlineWidth *int
	outlineColor *Color
	outlineBlur  *int
	textAlign    *TextAlignment
	textX        *int
}

func NewGlobalOptions() *GlobalOptions {
	return &GlobalOptions{}
}

// WithTextSize sets the default text size. nil clears it.
func (o *GlobalOptions) WithTextSize(size *int) *GlobalOptions {
	if size != nil && !o.record(checkMin("GlobalOptions", "TextSize", *size, 1)) {
		return o
	}
	o.textSize = copyPtr(size)
	return o
}

func (o *GlobalOptions) WithTextColor(c *Color) *GlobalOptions {
	o.textColor = nonZeroColor(c)
	return o
}

func (o *GlobalOptions) WithTextFont(font *string) *GlobalOptions {
	if font != nil && !o.record(checkNotEmpty("GlobalOptions", "TextFont", *font)) {
		return o
	}
	o.textFont = copyPtr(font)
	return o
}

func (o *GlobalOptions) WithOutlineWidth(width *int) *GlobalOptions {
	if width != nil && !o.record(checkMin("GlobalOptions", "Outline Width", *width, 0)) {
		return o
	}
	o.outlineWidth = copyPtr(width)
	return o
}

func (o *GlobalOptions) WithOutlineColor(c *Color) *GlobalOptions {
	o.outlineColor = nonZeroColor(c)
	return o
}

func (o *GlobalOptions) WithOutlineBlur(blur *int) *GlobalOptions {
	if blur != nil && !o.record(checkMin("GlobalOptions", "Outline Blur", *blur, 0)) {
		return o
	}
	o.outlineBlur = copyPtr(blur)
	return o
}

func (o *GlobalOptions) WithTextAlignment(a *TextAlignment) *GlobalOptions {
	if a != nil && !a.valid() {
		o.record(invalid("GlobalOptions", "TextAlignment", "TextAlignment %q is not one of l, m, r", string(*a)))
		return o
	}
	o.textAlign = copyPtr(a)
	return o
}

// WithTextX sets the default horizontal text position
func (o *GlobalOptions) WithTextX(x *int) *GlobalOptions {
	o.textX = copyPtr(x)
	return o
}

// IsEmpty reports whether no option is set
func (o *GlobalOptions) IsEmpty() bool {
	return o.textSize == nil && o.textColor == nil && o.textFont == nil &&
		o.outlineWidth == nil && o.outlineColor == nil && o.outlineBlur == nil &&
		o.textAlign == nil && o.textX == nil
}

func (o *GlobalOptions) Validate() error {
	return o.err
}

func (o *GlobalOptions) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		TextSize     *int           `json:"textSize,omitempty"`
		TextColor    *Color         `json:"textColor,omitempty"`
		TextFont     *string        `json:"textFont,omitempty"`
		OutlineWidth *int           `json:"textOutlineWidth,omitempty"`
		OutlineColor *Color         `json:"textOutlineColor,omitempty"`
		OutlineBlur  *int           `json:"textOutlineBlur,omitempty"`
		TextAlign    *TextAlignment `json:"textAlign,omitempty"`
		TextX        *int           `json:"textX,omitempty"`
	}{o.textSize, o.textColor, o.textFont, o.outlineWidth, o.outlineColor, o.outlineBlur, o.textAlign, o.textX})
}

// Ptr returns a pointer to v, for use with the GlobalOptions setters
func Ptr[T any](v T) *T {
	return &v
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func nonZeroColor(c *Color) *Color {
	if c == nil || c.IsZero() {
		return nil
	}
	return copyPtr(c)
}
