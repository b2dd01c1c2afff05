package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"", Overview{}},
		{"/", Overview{}},
		{"  /  ", Overview{}},
		{"/?tab=1", Overview{}},
		{"/hosts/abc", HostDetail{HostID: "abc"}},
		{"hosts/abc", HostDetail{HostID: "abc"}},
		{"/hosts/abc/", HostDetail{HostID: "abc"}},
		{"/hosts/abc/graphs", HostDetail{HostID: "abc"}},
		{"/hosts/web%201", HostDetail{HostID: "web 1"}},
		{"/hosts/unknown-id", HostDetail{HostID: "unknown-id"}},
		{"/hosts/abc#top", HostDetail{HostID: "abc"}},
		{"/hosts", NotFound{Raw: "/hosts"}},
		{"/hosts/", NotFound{Raw: "/hosts/"}},
		{"/hosts//x", NotFound{Raw: "/hosts//x"}},
		{"/hostsabc", NotFound{Raw: "/hostsabc"}},
		{"/settings", NotFound{Raw: "/settings"}},
		{"/hosts/%zz", NotFound{Raw: "/hosts/%zz"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.path))
		})
	}
}

func TestPath_RoundTrip(t *testing.T) {
	for _, r := range []Route{Overview{}, HostDetail{HostID: "a b/c"}, HostDetail{HostID: "42"}} {
		assert.Equal(t, r, Parse(r.Path()))
	}
	assert.Equal(t, "/nope", NotFound{Raw: "/nope"}.Path())
}

func TestRouteComparison(t *testing.T) {
	var a Route = HostDetail{HostID: "A"}
	var b Route = HostDetail{HostID: "B"}

	assert.True(t, a == Route(HostDetail{HostID: "A"}))
	assert.False(t, a == b)
	assert.False(t, Route(Overview{}) == Route(NotFound{Raw: "/"}))
}

func TestName(t *testing.T) {
	assert.Equal(t, "overview", Name(Overview{}))
	assert.Equal(t, "host", Name(HostDetail{HostID: "x"}))
	assert.Equal(t, "not-found", Name(NotFound{Raw: "/x"}))
	assert.Equal(t, "unknown", Name(nil))
}
