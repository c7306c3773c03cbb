package site

import (
	"fmt"
	"net/url"
	"strings"
)

// Links builds the URLs pages point at. The server and the static build lay
// out the same pages under different paths.
type Links interface {
	Home() string
	Book() string
	Article(id string) string
	Chapter(sectionID string, index int) string
	Viz(typeKey string) string
	Asset(name string) string
	// Socket is the overlay websocket path, empty when there is none.
	Socket() string
	// SearchIndex is the search index path, empty when there is none.
	SearchIndex() string
}

// ServerLinks addresses the routes of the HTTP server.
type ServerLinks struct{}

func (ServerLinks) Home() string             { return "/" }
func (ServerLinks) Book() string             { return "/book" }
func (ServerLinks) Article(id string) string { return "/articles/" + url.PathEscape(id) }
func (ServerLinks) Viz(typeKey string) string {
	return "/viz/" + url.PathEscape(typeKey) + "?fullscreen=1"
}
func (ServerLinks) Asset(name string) string { return "/assets/" + name }
func (ServerLinks) Socket() string           { return "/ws/overlay" }
func (ServerLinks) SearchIndex() string      { return "" }

func (ServerLinks) Chapter(sectionID string, index int) string {
	return fmt.Sprintf("/sections/%s?chapter=%d", url.PathEscape(sectionID), index)
}

// StaticLinks addresses files of the static build, relative to a page
// Depth directories below the output root.
type StaticLinks struct {
	Depth int
}

func (l StaticLinks) base() string { return strings.Repeat("../", l.Depth) }

func (l StaticLinks) Home() string              { return l.base() + "index.html" }
func (l StaticLinks) Book() string              { return l.base() + "book.html" }
func (l StaticLinks) Article(id string) string  { return l.base() + "articles/" + id + ".html" }
func (l StaticLinks) Viz(typeKey string) string { return l.base() + "viz/" + typeKey + ".html" }
func (l StaticLinks) Asset(name string) string  { return l.base() + "assets/" + name }
func (StaticLinks) Socket() string              { return "" }
func (l StaticLinks) SearchIndex() string       { return l.base() + "search-index.json" }

func (l StaticLinks) Chapter(sectionID string, index int) string {
	return fmt.Sprintf("%ssections/%s/%d.html", l.base(), sectionID, index)
}
