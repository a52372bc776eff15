package models

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// TransportFailureCode is the code of a FailedResponse that never reached the server
const TransportFailureCode = -1

// APIResponse is the outcome of a remote call. The concrete type is one of
// *GeneratedImage, *FailedResponse, *McServer, *McPlayer or *McSkin.
type APIResponse interface {
	// StatusCode is the HTTP status, or -1 for transport failures
	StatusCode() int
	// StatusMessage is the server's message, usually empty on success
	StatusMessage() string
	apiResponse()
}

// GeneratedImage is the rendered image returned by the /gen endpoints.
// It owns the response body: read it once and Close it.
type GeneratedImage struct {
	body io.ReadCloser
}

// NewGeneratedImage wraps a successful response body
func NewGeneratedImage(body io.ReadCloser) *GeneratedImage {
	return &GeneratedImage{body: body}
}

func (*GeneratedImage) apiResponse() {}
func (*GeneratedImage) StatusCode() int { return 200 }
func (*GeneratedImage) StatusMessage() string { return "" }
func (g *GeneratedImage) Read(p []byte) (int, error) { return g.body.Read(p) }
func (g *GeneratedImage) Close() error { return g.body.Close() }

// Bytes drains and closes the stream
func (g *GeneratedImage) Bytes() ([]byte, error) {
	defer g.body.Close()
	data, err := io.ReadAll(g.body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated image: %w", err)
	}
	return data, nil
}

// Decode drains and closes the stream and decodes it as PNG, JPEG, GIF or WebP
func (g *GeneratedImage) Decode() (image.Image, error) {
	defer g.body.Close()
	img, err := imaging.Decode(g.body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}
	return img, nil
}

// FailedResponse is any unsuccessful outcome: a transport failure (code -1),
// a non-2xx status, or an unreadable success body.
type FailedResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewFailedResponse creates a failure for a request that never got a usable response
func NewFailedResponse(message string) *FailedResponse {
	return &FailedResponse{Code: TransportFailureCode, Message: message}
}

func (*FailedResponse) apiResponse() {}
func (f *FailedResponse) StatusCode() int { return f.Code }
func (f *FailedResponse) StatusMessage() string { return f.Message }

func (f *FailedResponse) Error() string {
	return fmt.Sprintf("fluxpoint: request failed with code %d: %s", f.Code, f.Message)
}

// StatusSetter is implemented by JSON responses whose code comes from the HTTP status
type StatusSetter interface {
	APIResponse
	SetStatusCode(code int)
}

// McServer is the result of a server ping
type McServer struct {
	Code          int      `json:"code"`
	Message       string   `json:"message"`
	Online        bool     `json:"online"`
	Icon          string   `json:"icon"`
	Motd          string   `json:"motd"`
	PlayersOnline int      `json:"playersOnline"`
	PlayersMax    int      `json:"playersMax"`
	Version       string   `json:"version"`
	FullQuery     bool     `json:"fullQuery"`
	Players       []string `json:"players"`
	Status        string   `json:"status"`
	RawIcon       string   `json:"rawIcon"`
}

func (*McServer) apiResponse() {}
func (s *McServer) StatusCode() int { return s.Code }
func (s *McServer) StatusMessage() string { return s.Message }

// SetStatusCode fills the code unless the body already carried one
func (s *McServer) SetStatusCode(code int) {
	if s.Code == 0 {
		s.Code = code
	}
}

// McPlayer is the result of a player UUID lookup
type McPlayer struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	AccountFound bool   `json:"accountFound"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
}

func (*McPlayer) apiResponse() {}
func (p *McPlayer) StatusCode() int { return p.Code }
func (p *McPlayer) StatusMessage() string { return p.Message }

func (p *McPlayer) SetStatusCode(code int) {
	if p.Code == 0 {
		p.Code = code
	}
}

// ParsedUUID parses the UUID in either dashed or undashed form
func (p *McPlayer) ParsedUUID() (uuid.UUID, error) {
	return parsePlayerUUID(p.AccountFound, p.UUID)
}

// McSkin is the result of a skin lookup
type McSkin struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	AccountFound bool   `json:"accountFound"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	HeadURL      string `json:"headUrl"`
	CubeURL      string `json:"cubeUrl"`
	BodyURL      string `json:"bodyUrl"`
	FullURL      string `json:"fullUrl"`
}

func (*McSkin) apiResponse() {}
func (s *McSkin) StatusCode() int { return s.Code }
func (s *McSkin) StatusMessage() string { return s.Message }

func (s *McSkin) SetStatusCode(code int) {
	if s.Code == 0 {
		s.Code = code
	}
}

func (s *McSkin) ParsedUUID() (uuid.UUID, error) {
	return parsePlayerUUID(s.AccountFound, s.UUID)
}

func parsePlayerUUID(found bool, raw string) (uuid.UUID, error) {
	if !found {
		return uuid.Nil, fmt.Errorf("account not found")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse player uuid %q: %w", raw, err)
	}
	return id, nil
}
