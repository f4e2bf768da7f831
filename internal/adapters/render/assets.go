package render

import (
	"embed"
	"io/fs"
	"net/http"
)

// AssetsPath is where Assets is mounted.
const AssetsPath = "/assets/"

// DefaultSpeakerImage is the placeholder shown for speakers added without a photo.
const DefaultSpeakerImage = AssetsPath + "default-speaker.svg"

//go:embed assets/*
var assetFS embed.FS

// Assets serves the files shipped inside the binary. Mount it at AssetsPath.
func Assets() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(AssetsPath, http.FileServerFS(sub))
}
