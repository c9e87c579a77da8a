package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

func TestPhotoObjectName(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		fileName    string
		fallbackExt string
		expect      string
	}{
		{
			name:     "extension from file name is lower-cased",
			username: "Alice Smith",
			fileName: "Holiday.JPG",
			expect:   `^profiles/alice-smith--` + uuidPattern + `\.jpg$`,
		},
		{
			name:        "fallback extension",
			username:    "bob",
			fileName:    "blob",
			fallbackExt: ".png",
			expect:      `^profiles/bob--` + uuidPattern + `\.png$`,
		},
		{
			name:        "unsluggable username",
			username:    "!!!",
			fileName:    "a.gif",
			fallbackExt: ".png",
			expect:      `^profiles/profile--` + uuidPattern + `\.gif$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhotoObjectName(tt.username, tt.fileName, tt.fallbackExt)

			assert.Regexp(t, regexp.MustCompile(tt.expect), got)
		})
	}
}

func TestPhotoObjectName_Unique(t *testing.T) {
	first := PhotoObjectName("alice", "a.png", "")
	second := PhotoObjectName("alice", "a.png", "")

	assert.NotEqual(t, first, second)
}

func TestObjectNameFromURL(t *testing.T) {
	url := PublicURL("http://localhost:9000/", "media", "profiles/alice--1.png")
	assert.Equal(t, "http://localhost:9000/media/profiles/alice--1.png", url)

	tests := []struct {
		name     string
		url      string
		expect   string
		expectOK bool
	}{
		{name: "own url", url: url, expect: "profiles/alice--1.png", expectOK: true},
		{name: "empty", url: "", expectOK: false},
		{name: "foreign host", url: "https://cdn.example.com/media/x.png", expectOK: false},
		{name: "bucket root", url: "http://localhost:9000/media/", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := ObjectNameFromURL("http://localhost:9000", "media", tt.url)

			assert.Equal(t, tt.expectOK, ok)
			assert.Equal(t, tt.expect, name)
		})
	}
}
