package models

import (
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
)

// CustomImage is a composite image: a base layer that sets the canvas size,
// then images and texts drawn in insertion order.
type CustomImage struct {
	base    Drawable
	images  []Drawable
	texts   []Text
	options *GlobalOptions
}

// Base returns the layer that determines the canvas dimensions
func (c *CustomImage) Base() Drawable { return c.base }

// Images returns a copy of the overlay drawables in render order
func (c *CustomImage) Images() []Drawable { return append([]Drawable(nil), c.images...) }

// Texts returns a copy of the text layers in render order
func (c *CustomImage) Texts() []Text { return append([]Text(nil), c.texts...) }

// Validate checks every layer and reports all failures
func (c *CustomImage) Validate() error {
	if c.base == nil {
		return invalid("CustomImage", "Base", "Base may not be null")
	}
	err := c.base.Validate()
	for i, img := range c.images {
		if verr := img.Validate(); verr != nil {
			err = multierr.Append(err, fmt.Errorf("images[%d]: %w", i, verr))
		}
	}
	for i, t := range c.texts {
		if verr := t.Validate(); verr != nil {
			err = multierr.Append(err, fmt.Errorf("texts[%d]: %w", i, verr))
		}
	}
	if c.options != nil {
		err = multierr.Append(err, c.options.Validate())
	}
	return err
}

// MarshalJSON emits {"base": ..., "images": [...], "texts": [...]} and
// "options" only when global text options were set.
func (c *CustomImage) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	images := c.images
	if images == nil {
		images = []Drawable{}
	}
	texts := c.texts
	if texts == nil {
		texts = []Text{}
	}
	var options *GlobalOptions
	if c.options != nil && !c.options.IsEmpty() {
		options = c.options
	}
	return json.Marshal(struct {
		Base    Drawable       `json:"base"`
		Images  []Drawable     `json:"images"`
		Texts   []Text         `json:"texts"`
		Options *GlobalOptions `json:"options,omitempty"`
	}{c.base, images, texts, options})
}

// CustomImageBuilder assembles a CustomImage
type CustomImageBuilder struct {
	base    Drawable
	images  []Drawable
	texts   []Text
	options *GlobalOptions
	err     error
}

// CreateBase starts a builder with the mandatory base layer
func CreateBase(base Drawable) *CustomImageBuilder {
	b := &CustomImageBuilder{base: base}
	if base == nil {
		b.err = invalid("CustomImage", "Base", "Base may not be null")
	}
	return b
}

// AddImage appends a drawable above the previously added ones
func (b *CustomImageBuilder) AddImage(image Drawable) *CustomImageBuilder {
	if image == nil {
		b.err = multierr.Append(b.err, invalid("CustomImage", "Image", "Image may not be null"))
		return b
	}
	b.images = append(b.images, image)
	return b
}

// AddText appends a text layer above the previously added ones
func (b *CustomImageBuilder) AddText(text Text) *CustomImageBuilder {
	if text == nil {
		b.err = multierr.Append(b.err, invalid("CustomImage", "Text", "Text may not be null"))
		return b
	}
	b.texts = append(b.texts, text)
	return b
}

// WithGlobalOptions attaches default text options
func (b *CustomImageBuilder) WithGlobalOptions(options *GlobalOptions) *CustomImageBuilder {
	b.options = options
	return b
}

// Build returns the descriptor or every validation failure found
func (b *CustomImageBuilder) Build() (*CustomImage, error) {
	if b.err != nil {
		return nil, b.err
	}
	img := &CustomImage{
		base:    b.base,
		images:  append([]Drawable(nil), b.images...),
		texts:   append([]Text(nil), b.texts...),
		options: b.options,
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}
