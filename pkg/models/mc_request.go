package models

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is one key/value pair of a request query. Order is preserved.
type QueryParam struct {
	Key   string
	Value string
}

// EncodeQuery renders params as "k=v&k=v" in the given order
func EncodeQuery(params []QueryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// McRequest is a Minecraft endpoint descriptor
type McRequest interface {
	// Path is the endpoint path relative to the base URL
	Path() string
	// Params returns the query parameters or a validation error
	Params() ([]QueryParam, error)
}

// Player looks up a player's UUID by name
type Player struct {
	name string
}

func NewPlayer(name string) *Player {
	return &Player{name: name}
}

func (p *Player) Path() string { return "/mc/uuid" }

func (p *Player) Params() ([]QueryParam, error) {
	if err := checkNotEmpty("Player", "Player Name", p.name); err != nil {
		return nil, err
	}
	return []QueryParam{{"player", p.name}}, nil
}

// SkinType selects which skin renders are returned
type SkinType string

const (
	SkinBody SkinType = "body"
	SkinCube SkinType = "cube"
	SkinHead SkinType = "head"
	SkinFull SkinType = "full"
	SkinAll  SkinType = "all"
)

// PlayerSkin requests skin renders for a player
type PlayerSkin struct {
	name     string
	skinType SkinType
}

func NewPlayerSkin(name string) *PlayerSkin {
	return &PlayerSkin{name: name, skinType: SkinFull}
}

func (s *PlayerSkin) WithType(t SkinType) *PlayerSkin {
	s.skinType = t
	return s
}

func (s *PlayerSkin) Path() string { return "/mc/skin" }

func (s *PlayerSkin) Params() ([]QueryParam, error) {
	if err := checkNotEmpty("PlayerSkin", "Player Name", s.name); err != nil {
		return nil, err
	}
	switch s.skinType {
	case SkinBody, SkinCube, SkinHead, SkinFull, SkinAll:
	default:
		return nil, invalid("PlayerSkin", "Type", "Type %q is not one of body, cube, head, full, all", string(s.skinType))
	}
	return []QueryParam{{"player", s.name}, {"type", string(s.skinType)}}, nil
}

// DefaultServerPort is the standard Minecraft server port
const DefaultServerPort = 25565

// Server pings a Minecraft server
type Server struct {
	host string
	port int
	icon bool
}

func NewServer(host string) *Server {
	return &Server{host: host, port: DefaultServerPort}
}

func (s *Server) WithPort(port int) *Server {
	s.port = port
	return s
}

// IncludeIcon asks the service to return the server icon
func (s *Server) IncludeIcon(icon bool) *Server {
	s.icon = icon
	return s
}

func (s *Server) Path() string { return "/mc/ping" }

func (s *Server) Params() ([]QueryParam, error) {
	if err := checkNotEmpty("Server", "Host", s.host); err != nil {
		return nil, err
	}
	if err := checkRange("Server", "Port", s.port, 0, 65535); err != nil {
		return nil, err
	}
	return []QueryParam{
		{"host", s.host},
		{"port", strconv.Itoa(s.port)},
		{"icon", strconv.FormatBool(s.icon)},
	}, nil
}
