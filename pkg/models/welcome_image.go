package models

import (
	"encoding/json"
	"errors"

	"go.uber.org/multierr"
)

// WelcomeImage is the fixed-layout welcome card
type WelcomeImage struct {
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Background    Color  `json:"background"`
	Members       string `json:"members,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Banner        string `json:"banner,omitempty"`
	WelcomeColor  *Color `json:"color_welcome,omitempty"`
	UsernameColor *Color `json:"color_username,omitempty"`
	MembersColor  *Color `json:"color_members,omitempty"`
}

// Validate checks all required fields and reports every missing one
func (w *WelcomeImage) Validate() error {
	var err error
	if w.Username == "" {
		err = multierr.Append(err, invalid("WelcomeImage", "Username", "Username may not be null nor empty"))
	}
	if w.Avatar == "" {
		err = multierr.Append(err, invalid("WelcomeImage", "Avatar", "Avatar may not be null nor empty"))
	}
	if w.Background.IsZero() {
		err = multierr.Append(err, invalid("WelcomeImage", "BackgroundColor", "BackgroundColor may not be null"))
	}
	return err
}

func (w *WelcomeImage) MarshalJSON() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	type wire WelcomeImage
	return json.Marshal((*wire)(w))
}

// WelcomeImageBuilder assembles a WelcomeImage
type WelcomeImageBuilder struct {
	sticky
	image WelcomeImage
}

func NewWelcomeImageBuilder() *WelcomeImageBuilder {
	return &WelcomeImageBuilder{}
}

func (b *WelcomeImageBuilder) WithUsername(username string) *WelcomeImageBuilder {
	if b.record(checkNotEmpty("WelcomeImage", "Username", username)) {
		b.image.Username = username
	}
	return b
}

// WithAvatar sets the avatar URL
func (b *WelcomeImageBuilder) WithAvatar(avatar string) *WelcomeImageBuilder {
	if b.record(checkNotEmpty("WelcomeImage", "Avatar", avatar)) {
		b.image.Avatar = avatar
	}
	return b
}

func (b *WelcomeImageBuilder) WithBackgroundColor(c Color) *WelcomeImageBuilder {
	if b.record(checkColor("WelcomeImage", "BackgroundColor", c)) {
		b.image.Background = c
	}
	return b
}

func (b *WelcomeImageBuilder) WithMembersText(members string) *WelcomeImageBuilder {
	b.image.Members = members
	return b
}

// WithIcon sets the icon by name or URL
func (b *WelcomeImageBuilder) WithIcon(icon string) *WelcomeImageBuilder {
	b.image.Icon = icon
	return b
}

// WithBanner sets the banner by name or URL
func (b *WelcomeImageBuilder) WithBanner(banner string) *WelcomeImageBuilder {
	b.image.Banner = banner
	return b
}

func (b *WelcomeImageBuilder) WithWelcomeColor(c Color) *WelcomeImageBuilder {
	b.image.WelcomeColor = nonZeroColor(&c)
	return b
}

func (b *WelcomeImageBuilder) WithUsernameColor(c Color) *WelcomeImageBuilder {
	b.image.UsernameColor = nonZeroColor(&c)
	return b
}

func (b *WelcomeImageBuilder) WithMembersColor(c Color) *WelcomeImageBuilder {
	b.image.MembersColor = nonZeroColor(&c)
	return b
}

// Build returns the descriptor, failing with every missing required field
func (b *WelcomeImageBuilder) Build() (*WelcomeImage, error) {
	img := b.image
	err := b.err
	for _, verr := range multierr.Errors(img.Validate()) {
		if !sameField(b.err, verr) {
			err = multierr.Append(err, verr)
		}
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// sameField reports whether both errors reject the same field
func sameField(a, b error) bool {
	var va, vb *ValidationError
	return errors.As(a, &va) && errors.As(b, &vb) && va.Field == vb.Field
}
