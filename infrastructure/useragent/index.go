package useragent

import "github.com/mileusna/useragent"

// Client is the caller description attached to each request log line.
type Client struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	OS        string `json:"os"`
	OSVersion string `json:"osVersion"`
	Device    string `json:"device"`
	Bot       bool   `json:"bot"`
}

// ParseUserAgent returns nil for an empty header.
func ParseUserAgent(header string) *Client {
	if header == "" {
		return nil
	}
	parsed := useragent.Parse(header)
	return &Client{
		Name:      parsed.Name,
		Version:   parsed.VersionNoFull(),
		OS:        parsed.OS,
		OSVersion: parsed.OSVersion,
		Device:    parsed.Device,
		Bot:       parsed.Bot,
	}
}
