package models

import (
	"encoding/json"
	"strings"
)

// DrawableType is the wire discriminator of a drawable layer
type DrawableType string

const (
	TypeRectangle DrawableType = "bitmap"
	TypeURLImage  DrawableType = "url"
	TypeCircle    DrawableType = "circle"
	TypeTriangle  DrawableType = "triangle"
	TypeSvg       DrawableType = "svg"
	TypeIcon      DrawableType = "icon"
)

// maxImageSize bounds width and height of rectangles and URL images
const maxImageSize = 3000

// fixedSize is the width and height sent for variants sized by radius or size
const fixedSize = 1

var defaultLayerColor = Color{value: "0,255,255"}

// Drawable is a single layer placed on the canvas
type Drawable interface {
	json.Marshaler
	Type() DrawableType
	Validate() error
}

// resizable is implemented by variants that accept width and height
type resizable interface {
	Drawable
	setWidth(width int) error
	setHeight(height int) error
}

// SetWidth sets the width of a drawable known only through the Drawable interface.
// Circle, Svg and Icon have no width and fail with ErrUnsupported.
func SetWidth(d Drawable, width int) error {
	if r, ok := d.(resizable); ok {
		return r.setWidth(width)
	}
	return unsupported(variantName(d), "width", sizeHint(d))
}

// SetHeight is the height counterpart of SetWidth
func SetHeight(d Drawable, height int) error {
	if r, ok := d.(resizable); ok {
		return r.setHeight(height)
	}
	return unsupported(variantName(d), "height", sizeHint(d))
}

func variantName(d Drawable) string {
	if d == nil {
		return "Drawable"
	}
	switch d.Type() {
	case TypeRectangle:
		return "Rectangle"
	case TypeURLImage:
		return "UrlImage"
	case TypeCircle:
		return "Circle"
	case TypeTriangle:
		return "Triangle"
	case TypeSvg:
		return "Svg"
	case TypeIcon:
		return "Icon"
	}
	return string(d.Type())
}

func sizeHint(d Drawable) string {
	if d != nil && d.Type() == TypeCircle {
		return "WithRadius"
	}
	return "WithSize"
}

// layer holds the attributes shared by every drawable
type layer struct {
	sticky
	x, y  int
	color Color
	skip  bool
}

func (l *layer) validateColor(variant string) error {
	if l.err != nil {
		return l.err
	}
	return checkColor(variant, "Color", l.color)
}

// Rectangle is a filled, optionally rounded rectangle
type Rectangle struct {
	layer
	width, height int
	round         int
}

// NewRectangle creates a 1x1 rectangle at the origin
func NewRectangle() *Rectangle {
	return &Rectangle{layer: layer{color: defaultLayerColor}, width: 1, height: 1}
}

func (r *Rectangle) Type() DrawableType { return TypeRectangle }

func (r *Rectangle) WithX(x int) *Rectangle {
	r.x = x
	return r
}

func (r *Rectangle) WithY(y int) *Rectangle {
	r.y = y
	return r
}

func (r *Rectangle) WithWidth(width int) *Rectangle {
	r.record(r.setWidth(width))
	return r
}

func (r *Rectangle) WithHeight(height int) *Rectangle {
	r.record(r.setHeight(height))
	return r
}

func (r *Rectangle) WithColor(c Color) *Rectangle {
	if r.record(checkColor("Rectangle", "Color", c)) {
		r.color = c
	}
	return r
}

// WithRound sets the corner radius
func (r *Rectangle) WithRound(round int) *Rectangle {
	if r.record(checkMin("Rectangle", "Round", round, 0)) {
		r.round = round
	}
	return r
}

func (r *Rectangle) WithSkip(skip bool) *Rectangle {
	r.skip = skip
	return r
}

func (r *Rectangle) setWidth(width int) error {
	if err := checkRange("Rectangle", "Width", width, 1, maxImageSize); err != nil {
		return err
	}
	r.width = width
	return nil
}

func (r *Rectangle) setHeight(height int) error {
	if err := checkRange("Rectangle", "Height", height, 1, maxImageSize); err != nil {
		return err
	}
	r.height = height
	return nil
}

// Validate reports the first invalid attribute
func (r *Rectangle) Validate() error {
	if err := r.validateColor("Rectangle"); err != nil {
		return err
	}
	if err := checkRange("Rectangle", "Width", r.width, 1, maxImageSize); err != nil {
		return err
	}
	if err := checkRange("Rectangle", "Height", r.height, 1, maxImageSize); err != nil {
		return err
	}
	return checkMin("Rectangle", "Round", r.round, 0)
}

func (r *Rectangle) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  Color        `json:"color"`
		Skip   bool         `json:"skip"`
		Round  int          `json:"round"`
	}{TypeRectangle, r.x, r.y, r.width, r.height, r.color, r.skip, r.round})
}

// URLImage draws a remote bitmap, optionally over a background color
type URLImage struct {
	layer
	width, height int
	url           string
	cache         bool
	round         int
}

// NewURLImage creates a 1x1 image layer for the given URL
func NewURLImage(url string) *URLImage {
	u := &URLImage{width: 1, height: 1}
	if u.record(checkNotEmpty("UrlImage", "URL", url)) {
		u.url = url
	}
	return u
}

func (u *URLImage) Type() DrawableType { return TypeURLImage }

func (u *URLImage) WithX(x int) *URLImage {
	u.x = x
	return u
}

func (u *URLImage) WithY(y int) *URLImage {
	u.y = y
	return u
}

func (u *URLImage) WithWidth(width int) *URLImage {
	u.record(u.setWidth(width))
	return u
}

func (u *URLImage) WithHeight(height int) *URLImage {
	u.record(u.setHeight(height))
	return u
}

// WithColor sets the background fill. The zero Color removes it.
func (u *URLImage) WithColor(c Color) *URLImage {
	u.color = c
	return u
}

func (u *URLImage) WithURL(url string) *URLImage {
	if u.record(checkNotEmpty("UrlImage", "URL", url)) {
		u.url = url
	}
	return u
}

// WithCaching asks the service to cache the downloaded bitmap
func (u *URLImage) WithCaching(cache bool) *URLImage {
	u.cache = cache
	return u
}

func (u *URLImage) WithRound(round int) *URLImage {
	if u.record(checkMin("UrlImage", "Round", round, 0)) {
		u.round = round
	}
	return u
}

func (u *URLImage) WithSkip(skip bool) *URLImage {
	u.skip = skip
	return u
}

func (u *URLImage) setWidth(width int) error {
	if err := checkRange("UrlImage", "Width", width, 1, maxImageSize); err != nil {
		return err
	}
	u.width = width
	return nil
}

func (u *URLImage) setHeight(height int) error {
	if err := checkRange("UrlImage", "Height", height, 1, maxImageSize); err != nil {
		return err
	}
	u.height = height
	return nil
}

func (u *URLImage) Validate() error {
	if u.err != nil {
		return u.err
	}
	if err := checkNotEmpty("UrlImage", "URL", u.url); err != nil {
		return err
	}
	if err := checkRange("UrlImage", "Width", u.width, 1, maxImageSize); err != nil {
		return err
	}
	if err := checkRange("UrlImage", "Height", u.height, 1, maxImageSize); err != nil {
		return err
	}
	return checkMin("UrlImage", "Round", u.round, 0)
}

func (u *URLImage) MarshalJSON() ([]byte, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var background *Color
	if !u.color.IsZero() {
		background = &u.color
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  *Color       `json:"color,omitempty"`
		Skip   bool         `json:"skip"`
		URL    string       `json:"url"`
		Cache  bool         `json:"cache"`
		Round  int          `json:"round"`
	}{TypeURLImage, u.x, u.y, u.width, u.height, background, u.skip, u.url, u.cache, u.round})
}

// Circle is a filled circle whose size is given by its radius
type Circle struct {
	layer
	radius int
}

func NewCircle() *Circle {
	return &Circle{layer: layer{color: defaultLayerColor}, radius: 1}
}

func (c *Circle) Type() DrawableType { return TypeCircle }

func (c *Circle) WithX(x int) *Circle {
	c.x = x
	return c
}

func (c *Circle) WithY(y int) *Circle {
	c.y = y
	return c
}

func (c *Circle) WithColor(color Color) *Circle {
	if c.record(checkColor("Circle", "Color", color)) {
		c.color = color
	}
	return c
}

func (c *Circle) WithRadius(radius int) *Circle {
	if c.record(checkMin("Circle", "Radius", radius, 1)) {
		c.radius = radius
	}
	return c
}

func (c *Circle) WithSkip(skip bool) *Circle {
	c.skip = skip
	return c
}

func (c *Circle) Validate() error {
	if err := c.validateColor("Circle"); err != nil {
		return err
	}
	return checkMin("Circle", "Radius", c.radius, 1)
}

func (c *Circle) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  Color        `json:"color"`
		Skip   bool         `json:"skip"`
		Radius int          `json:"radius"`
	}{TypeCircle, c.x, c.y, fixedSize, fixedSize, c.color, c.skip, c.radius})
}

// Cut selects which corner of the bounding box a triangle fills
type Cut string

const (
	CutTopLeft     Cut = "TopLeft"
	CutTopRight    Cut = "TopRight"
	CutBottomLeft  Cut = "BottomLeft"
	CutBottomRight Cut = "BottomRight"
)

func (c Cut) valid() bool {
	switch c {
	case CutTopLeft, CutTopRight, CutBottomLeft, CutBottomRight:
		return true
	}
	return false
}

// Triangle is a right triangle filling half of its bounding box
type Triangle struct {
	layer
	width, height int
	cut           Cut
}

func NewTriangle() *Triangle {
	return &Triangle{layer: layer{color: defaultLayerColor}, width: 1, height: 1, cut: CutTopLeft}
}

func (t *Triangle) Type() DrawableType { return TypeTriangle }

func (t *Triangle) WithX(x int) *Triangle {
	t.x = x
	return t
}

func (t *Triangle) WithY(y int) *Triangle {
	t.y = y
	return t
}

func (t *Triangle) WithWidth(width int) *Triangle {
	t.record(t.setWidth(width))
	return t
}

func (t *Triangle) WithHeight(height int) *Triangle {
	t.record(t.setHeight(height))
	return t
}

func (t *Triangle) WithColor(c Color) *Triangle {
	if t.record(checkColor("Triangle", "Color", c)) {
		t.color = c
	}
	return t
}

func (t *Triangle) WithCut(cut Cut) *Triangle {
	if !cut.valid() {
		t.record(invalid("Triangle", "Cut", "Cut %q is not one of TopLeft, TopRight, BottomLeft, BottomRight", string(cut)))
		return t
	}
	t.cut = cut
	return t
}

func (t *Triangle) WithSkip(skip bool) *Triangle {
	t.skip = skip
	return t
}

func (t *Triangle) setWidth(width int) error {
	if err := checkMin("Triangle", "Width", width, 0); err != nil {
		return err
	}
	t.width = width
	return nil
}

func (t *Triangle) setHeight(height int) error {
	if err := checkMin("Triangle", "Height", height, 0); err != nil {
		return err
	}
	t.height = height
	return nil
}

func (t *Triangle) Validate() error {
	if err := t.validateColor("Triangle"); err != nil {
		return err
	}
	if err := checkMin("Triangle", "Width", t.width, 0); err != nil {
		return err
	}
	if err := checkMin("Triangle", "Height", t.height, 0); err != nil {
		return err
	}
	if !t.cut.valid() {
		return invalid("Triangle", "Cut", "Cut may not be empty")
	}
	return nil
}

func (t *Triangle) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  Color        `json:"color"`
		Skip   bool         `json:"skip"`
		Cut    Cut          `json:"cut"`
	}{TypeTriangle, t.x, t.y, t.width, t.height, t.color, t.skip, t.cut})
}

// Svg draws an SVG path scaled to size
type Svg struct {
	layer
	path string
	size int
}

// NewSvg creates an SVG layer from path data
func NewSvg(path string) *Svg {
	s := &Svg{layer: layer{color: defaultLayerColor}, size: 1}
	return s.WithPath(path)
}

func (s *Svg) Type() DrawableType { return TypeSvg }

func (s *Svg) WithX(x int) *Svg {
	s.x = x
	return s
}

func (s *Svg) WithY(y int) *Svg {
	s.y = y
	return s
}

func (s *Svg) WithColor(c Color) *Svg {
	if s.record(checkColor("Svg", "Color", c)) {
		s.color = c
	}
	return s
}

func (s *Svg) WithPath(path string) *Svg {
	if s.record(checkNotEmpty("Svg", "Path", path)) {
		s.path = path
	}
	return s
}

func (s *Svg) WithSize(size int) *Svg {
	if s.record(checkMin("Svg", "Size", size, 1)) {
		s.size = size
	}
	return s
}

func (s *Svg) WithSkip(skip bool) *Svg {
	s.skip = skip
	return s
}

func (s *Svg) Validate() error {
	if err := s.validateColor("Svg"); err != nil {
		return err
	}
	if err := checkNotEmpty("Svg", "Path", s.path); err != nil {
		return err
	}
	return checkMin("Svg", "Size", s.size, 1)
}

func (s *Svg) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  Color        `json:"color"`
		Skip   bool         `json:"skip"`
		Path   string       `json:"path"`
		Size   int          `json:"size"`
	}{TypeSvg, s.x, s.y, fixedSize, fixedSize, s.color, s.skip, s.path, s.size})
}

// Icon draws a named icon from an icon set, e.g. "mdi:account"
type Icon struct {
	layer
	icon string
	size int
}

func NewIcon(icon string) *Icon {
	i := &Icon{layer: layer{color: defaultLayerColor}, size: 1}
	return i.WithIcon(icon)
}

func (i *Icon) Type() DrawableType { return TypeIcon }

func (i *Icon) WithX(x int) *Icon {
	i.x = x
	return i
}

func (i *Icon) WithY(y int) *Icon {
	i.y = y
	return i
}

func (i *Icon) WithColor(c Color) *Icon {
	if i.record(checkColor("Icon", "Color", c)) {
		i.color = c
	}
	return i
}

func (i *Icon) WithIcon(icon string) *Icon {
	if i.record(checkIconName(icon)) {
		i.icon = icon
	}
	return i
}

func (i *Icon) WithSize(size int) *Icon {
	if i.record(checkMin("Icon", "Size", size, 1)) {
		i.size = size
	}
	return i
}

func (i *Icon) WithSkip(skip bool) *Icon {
	i.skip = skip
	return i
}

func (i *Icon) Validate() error {
	if err := i.validateColor("Icon"); err != nil {
		return err
	}
	if err := checkIconName(i.icon); err != nil {
		return err
	}
	return checkMin("Icon", "Size", i.size, 1)
}

func (i *Icon) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type   DrawableType `json:"type"`
		X      int          `json:"x"`
		Y      int          `json:"y"`
		Width  int          `json:"width"`
		Height int          `json:"height"`
		Color  Color        `json:"color"`
		Skip   bool         `json:"skip"`
		Icon   string       `json:"icon"`
		Size   int          `json:"size"`
	}{TypeIcon, i.x, i.y, fixedSize, fixedSize, i.color, i.skip, i.icon, i.size})
}

func checkIconName(icon string) error {
	if err := checkNotEmpty("Icon", "Icon", icon); err != nil {
		return err
	}
	set, name, ok := strings.Cut(icon, ":")
	if !ok || set == "" || name == "" {
		return invalid("Icon", "Icon", "Icon %q must have the form set:name", icon)
	}
	return nil
}
