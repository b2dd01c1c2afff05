// Package route maps dashboard paths to view states.
//
//	/               Overview
//	/hosts/{id}     HostDetail (trailing segments are ignored)
//	anything else   NotFound
package route

import (
	"net/url"
	"strings"
)

// Route is one of Overview, HostDetail or NotFound. The unexported method
// keeps the set closed so a type switch over the three is exhaustive.
type Route interface {
	Path() string
	route()
}

// Overview is the fleet list.
type Overview struct{}

// HostDetail is the graphs page for one host.
type HostDetail struct {
	HostID string
}

// NotFound carries the path that matched nothing.
type NotFound struct {
	Raw string
}

func (Overview) route()   {}
func (HostDetail) route() {}
func (NotFound) route()   {}

// Path returns "/".
func (Overview) Path() string { return "/" }

// Path returns "/hosts/{id}" with the id escaped.
func (r HostDetail) Path() string { return "/hosts/" + url.PathEscape(r.HostID) }

// Path returns the unmatched path as given.
func (r NotFound) Path() string { return r.Raw }

const hostsPrefix = "/hosts/"

// Parse resolves a path. A missing leading slash is tolerated; query strings
// and fragments are dropped.
func Parse(path string) Route {
	p := strings.TrimSpace(path)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	if p == "" || p == "/" {
		return Overview{}
	}

	if strings.HasPrefix(p, hostsPrefix) {
		rest := p[len(hostsPrefix):]
		seg := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			seg = rest[:i]
		}
		if seg != "" {
			id, err := url.PathUnescape(seg)
			if err != nil {
				return NotFound{Raw: path}
			}
			return HostDetail{HostID: id}
		}
	}

	return NotFound{Raw: path}
}

// Name is a short label for the route kind, used in the header and logs.
func Name(r Route) string {
	switch r.(type) {
	case Overview:
		return "overview"
	case HostDetail:
		return "host"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}
